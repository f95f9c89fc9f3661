// Package localstore persists the guest ledger as one JSON document on disk.
//
// Every mutation is read-modify-write over the whole collection: load the
// file, mutate the slice, write the file back atomically (tmp file then
// rename). Two processes writing at the same time therefore race with
// last-write-wins semantics; that limitation is accepted for a single-user
// guest ledger and intentionally not papered over here.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hanwool/gagyebu/internal/model"
)

// The whole collection lives under a single namespaced key so the file
// stays self-describing.
type document struct {
	GuestTransactions []model.Transaction `json:"guest_transactions"`
}

// Store is the guest-scope transaction store. All records it writes carry
// model.ScopeGuest; it never sees an authenticated user id.
type Store struct {
	path string
}

// New returns a store backed by the given file path. The file is created
// lazily on the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Append validates the record, stamps it as a guest record with a
// client-generated id, and persists it at the end of the collection.
func (s *Store) Append(t model.Transaction) (model.Transaction, error) {
	t.OwnerScope = model.ScopeGuest
	t.GenerateID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if err := t.Validate(); err != nil {
		return model.Transaction{}, err
	}

	records, err := s.load()
	if err != nil {
		return model.Transaction{}, err
	}
	for _, existing := range records {
		if existing.ID == t.ID {
			return model.Transaction{}, fmt.Errorf("%w: duplicate id %s", model.ErrValidation, t.ID)
		}
	}
	records = append(records, t)
	if err := s.save(records); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// List returns all guest records in insertion order. The order reflects when
// records were appended, not their OccurredAt dates.
func (s *Store) List() ([]model.Transaction, error) {
	return s.load()
}

// Update applies a patch to the record with the given id.
func (s *Store) Update(id string, patch model.Patch) (model.Transaction, error) {
	records, err := s.load()
	if err != nil {
		return model.Transaction{}, err
	}
	for i, t := range records {
		if t.ID != id {
			continue
		}
		patched, err := patch.Apply(t)
		if err != nil {
			return model.Transaction{}, err
		}
		records[i] = patched
		if err := s.save(records); err != nil {
			return model.Transaction{}, err
		}
		return patched, nil
	}
	return model.Transaction{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
}

// Remove deletes the record with the given id.
func (s *Store) Remove(id string) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	for i, t := range records {
		if t.ID != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		return s.save(records)
	}
	return fmt.Errorf("%w: %s", model.ErrNotFound, id)
}

// Clear removes every guest record. Reserved for the migration protocol;
// ordinary deletion flows go through Remove.
func (s *Store) Clear() error {
	return s.save(nil)
}

func (s *Store) load() ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open guest store: %w", err)
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode guest store: %w", err)
	}
	return doc.GuestTransactions, nil
}

// save writes the whole collection back atomically: encode into a tmp file
// next to the target, then rename over it, so a crash mid-write never leaves
// a corrupt store behind.
func (s *Store) save(records []model.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create guest store dir: %w", err)
	}

	if records == nil {
		records = []model.Transaction{}
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create guest store tmp file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{GuestTransactions: records}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode guest store: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
