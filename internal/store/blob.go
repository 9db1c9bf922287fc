package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Blob is the persistence boundary: a key-value byte store. The card
// collection is saved as one value under a fixed key.
type Blob interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// FileBlob stores each key as a JSON file under a data directory.
type FileBlob struct {
	dir string
}

// NewFileBlob creates a FileBlob rooted at dir.
func NewFileBlob(dir string) *FileBlob {
	return &FileBlob{dir: dir}
}

// Get reads the value for key. Absent keys return ok=false, not an error.
func (b *FileBlob) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the value for key, creating the data directory if needed.
func (b *FileBlob) Set(key string, value []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(b.path(key), value, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (b *FileBlob) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// MemBlob is an in-memory Blob for tests.
type MemBlob struct {
	values map[string][]byte
}

// NewMemBlob creates an empty MemBlob.
func NewMemBlob() *MemBlob {
	return &MemBlob{values: make(map[string][]byte)}
}

// Get returns the stored value for key.
func (b *MemBlob) Get(key string) ([]byte, bool, error) {
	v, ok := b.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (b *MemBlob) Set(key string, value []byte) error {
	b.values[key] = value
	return nil
}
