package id

import "github.com/google/uuid"

// New returns an opaque unique record ID.
func New() string {
	return uuid.NewString()
}
