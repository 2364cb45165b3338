package assignment

import (
	"context"
	"sync"
)

// memoryStore keeps the serialized snapshot in memory only; it is used
// for tests and for running the dashboard against sample data without
// a data file
type memoryStore struct {
	payload []byte

	sync.RWMutex
}

// NewMemoryStore returns an initialized assignment store
// that stores everything in memory
func NewMemoryStore() (Store, error) {
	return &memoryStore{}, nil
}

// Load returns the last saved record set
func (s *memoryStore) Load(ctx context.Context) ([]Assignment, error) {
	s.RLock()
	payload := s.payload
	s.RUnlock()

	return decodeSnapshot(payload)
}

// Save replaces the stored record set
func (s *memoryStore) Save(ctx context.Context, assignments []Assignment) error {
	payload, err := encodeSnapshot(assignments)
	if err != nil {
		return err
	}

	s.Lock()
	s.payload = payload
	s.Unlock()

	return nil
}
