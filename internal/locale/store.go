package locale

import (
	"errors"
	"sync"
)

// Store is durable key-value storage for the language preference.
// Load returns an empty string when nothing has been saved yet.
type Store interface {
	Load() (string, error)
	Save(value string) error
}

// MemoryStore keeps the preference in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{value: initial}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

func (s *MemoryStore) Save(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	return nil
}

// ChainStore reads from the first store holding a value and writes to all of them.
type ChainStore []Store

func (c ChainStore) Load() (string, error) {
	var errs []error
	for _, store := range c {
		if store == nil {
			continue
		}
		value, err := store.Load()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if value != "" {
			return value, nil
		}
	}
	return "", errors.Join(errs...)
}

func (c ChainStore) Save(value string) error {
	var errs []error
	for _, store := range c {
		if store == nil {
			continue
		}
		if err := store.Save(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
