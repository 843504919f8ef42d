// Package memory provides an in-memory ports.Storage, used for tests and
// single-process deployments where state loss on restart is acceptable.
package memory

import (
	"context"
	"sync"

	"github.com/cascadebot/cascade/pkg/domain"
)

// Store implements ports.Storage in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Write commits the document in memory.
func (s *Store) Write(ctx context.Context, key string, document map[string]any) error {
	// Copy so the caller can't mutate committed state through the map.
	copied := make(map[string]any, len(document))
	for k, v := range document {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Read retrieves the committed document.
func (s *Store) Read(ctx context.Context, key string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[key]
	if !ok {
		return nil, domain.ErrScopeNotFound
	}

	ret := make(map[string]any, len(doc))
	for k, v := range doc {
		ret[k] = v
	}
	return ret, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns committed scope keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
