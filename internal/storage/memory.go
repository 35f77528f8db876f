// Package storage implements the flat key-value persistence adapter:
// an in-memory store for tests and a JSON-file store for real runs,
// plus typed accessors with failure containment.
package storage

import (
	"sync"

	"github.com/hammamikhairi/tomatick/internal/domain"
)

// Compile-time interface check.
var _ domain.Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory store. Safe for concurrent access.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value. Overwrites if the key already exists.
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Clear wipes every key.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}
