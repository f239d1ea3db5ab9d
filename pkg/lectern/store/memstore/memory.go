package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/lectern/pkg/lectern/store"
)

// Store is an in-memory implementation of store.Cache for tests.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	hits    int
	misses  int
}

type entry struct {
	key   store.Key
	pages []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Close implements store.Cache.
func (s *Store) Close() error { return nil }

// GetPages implements store.Cache.
func (s *Store) GetPages(ctx context.Context, key store.Key) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key.Path]
	if !ok || !e.key.Matches(key) {
		s.misses++
		return nil, false, nil
	}
	s.hits++
	return copyPages(e.pages), true, nil
}

// PutPages implements store.Cache.
func (s *Store) PutPages(ctx context.Context, key store.Key, pages []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key.Path] = entry{key: key, pages: copyPages(pages)}
	return nil
}

// Delete implements store.Cache.
func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, path)
	return nil
}

// Len implements store.Cache.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Stats returns hit and miss counters.
func (s *Store) Stats() (hits, misses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses
}

func copyPages(pages []string) []string {
	if pages == nil {
		return nil
	}
	out := make([]string, len(pages))
	copy(out, pages)
	return out
}
