// Package store owns the persisted card collection. Every mutation is
// a synchronous read-modify-write of the whole collection under one
// key; there is exactly one logical writer, so the last write wins.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/billfold-dev/billfold/internal/id"
	"github.com/billfold-dev/billfold/internal/model"
)

// Key is the fixed blob key for the card collection.
const Key = "credit-cards"

// Store is the single source of truth for card records.
type Store struct {
	blob  Blob
	log   *logrus.Logger
	cards []model.Card
	byID  map[string]int
}

// Open loads the card collection from the blob, migrating older record
// shapes. A missing or corrupt blob yields an empty store, never an
// error: the application must start regardless.
func Open(blob Blob, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{blob: blob, log: log}

	data, ok, err := blob.Get(Key)
	if err != nil {
		log.WithError(err).Warn("failed to read card store, starting empty")
		s.reindex()
		return s
	}
	if !ok {
		s.reindex()
		return s
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		log.WithError(err).Warn("corrupt card store, starting empty")
		s.reindex()
		return s
	}

	for i, raw := range raws {
		card, err := migrateRecord(raw)
		if err != nil {
			log.WithError(err).Warnf("skipping unreadable card record %d", i)
			continue
		}
		s.cards = append(s.cards, card)
	}
	s.reindex()
	return s
}

// All returns a copy of the card collection.
func (s *Store) All() []model.Card {
	out := make([]model.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Get returns a card by ID.
func (s *Store) Get(cardID string) (model.Card, bool) {
	i, ok := s.byID[cardID]
	if !ok {
		return model.Card{}, false
	}
	return s.cards[i], true
}

// Add assigns a fresh ID and empty payment list, appends the card and
// persists the collection.
func (s *Store) Add(card model.Card) (model.Card, error) {
	card.ID = id.New()
	card.Payments = []model.Payment{}
	s.cards = append(s.cards, card)
	s.reindex()
	if err := s.save(); err != nil {
		return model.Card{}, err
	}
	return card, nil
}

// BulkAdd appends imported candidates in one write. Each candidate
// gets its ID and empty payment list here.
func (s *Store) BulkAdd(cards []model.Card) ([]model.Card, error) {
	added := make([]model.Card, len(cards))
	for i, card := range cards {
		card.ID = id.New()
		card.Payments = []model.Payment{}
		added[i] = card
	}
	s.cards = append(s.cards, added...)
	s.reindex()
	if err := s.save(); err != nil {
		return nil, err
	}
	return added, nil
}

// Update replaces the stored record with the same ID wholesale.
func (s *Store) Update(card model.Card) error {
	i, ok := s.byID[card.ID]
	if !ok {
		return fmt.Errorf("unknown card %s", card.ID)
	}
	if card.Payments == nil {
		card.Payments = []model.Payment{}
	}
	s.cards[i] = card
	return s.save()
}

// Delete removes a card and, with it, all its payments.
func (s *Store) Delete(cardID string) error {
	i, ok := s.byID[cardID]
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	s.reindex()
	return s.save()
}

// Len returns the number of stored cards.
func (s *Store) Len() int {
	return len(s.cards)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cards: %w", err)
	}
	if err := s.blob.Set(Key, data); err != nil {
		return fmt.Errorf("saving cards: %w", err)
	}
	return nil
}

func (s *Store) reindex() {
	s.byID = make(map[string]int, len(s.cards))
	for i, c := range s.cards {
		s.byID[c.ID] = i
	}
}
