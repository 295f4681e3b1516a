package store

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store, used in tests and as the default
// when no persistence is configured
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]T
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: make(map[string]T)}
}

// List returns all record ids in sorted order
func (s *MemoryStore[T]) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns the record for an id
func (s *MemoryStore[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Put stores a record under an id, replacing any existing one
func (s *MemoryStore[T]) Put(id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = value
	return nil
}

// Delete removes a record; deleting a missing id is a no-op
func (s *MemoryStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
