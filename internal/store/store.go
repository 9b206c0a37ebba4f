// Package store persists the local working copy of the state between runs.
package store

import (
	"fmt"
	"os"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
)

// Store reads and rewrites the single JSON file that seeds the client
// before the first remote pull completes. It keeps the same serialized form
// the sync engine pushes, so a freshly loaded state compares equal to what
// was last synced.
type Store struct {
	path string
}

// New creates a store around the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted copy and sanitizes it. A missing or corrupt file
// degrades to the default state; Load never fails on content.
func (s *Store) Load(now time.Time) (model.AppState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Sanitize(model.AppState{}, now), nil
		}
		return model.AppState{}, fmt.Errorf("failed to read state file: %w", err)
	}
	return model.Decode(data, now), nil
}

// Save rewrites the persisted copy with the canonical serialized form.
func (s *Store) Save(st model.AppState) error {
	data, err := model.Encode(st)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// SaveBytes rewrites the persisted copy from an already serialized form.
func (s *Store) SaveBytes(data []byte) error {
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
