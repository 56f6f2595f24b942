package store

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryStore implements Store with an in-process map. Used in tests and
// single-instance local deployments.
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	slog.Info("Initialized in-memory store")
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key, if any.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set writes value under key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close releases store resources.
func (s *MemoryStore) Close() error {
	return nil
}
