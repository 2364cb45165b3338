package override

import (
	"context"
	"sync"
)

// memoryStore keeps the serialized snapshot in memory only
type memoryStore struct {
	payload []byte

	sync.RWMutex
}

// NewMemoryStore returns an initialized override store
// that stores everything in memory
func NewMemoryStore() (Store, error) {
	return &memoryStore{}, nil
}

// Load returns the last saved record set
func (s *memoryStore) Load(ctx context.Context) ([]Override, error) {
	s.RLock()
	payload := s.payload
	s.RUnlock()

	return decodeSnapshot(payload)
}

// Save replaces the stored record set
func (s *memoryStore) Save(ctx context.Context, overrides []Override) error {
	payload, err := encodeSnapshot(overrides)
	if err != nil {
		return err
	}

	s.Lock()
	s.payload = payload
	s.Unlock()

	return nil
}
