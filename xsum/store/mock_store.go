package store

import "sync"

// MemoryStore is an in-memory Store used for testing the action engine
// without touching a real filesystem. It honors the same sentinel errors
// as XattrStore and can simulate per-operation failures.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// FailWith, when non-nil, is returned by every operation. Used to
	// exercise the soft-failure paths.
	FailWith error
}

// NewMemoryStore creates an empty in-memory attribute store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return "", s.FailWith
	}
	value, ok := s.values[path]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(path, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.values[path] = value
	return nil
}

func (s *MemoryStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, ok := s.values[path]; !ok {
		return ErrNotFound
	}
	delete(s.values, path)
	return nil
}

// Len reports how many paths currently carry a value.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
