package memory

import (
	"context"
	"sync"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// Store implements ports.WorldStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.WorldState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.WorldState),
	}
}

// Save persists the world in memory. The stored copy is isolated from the
// caller's value.
func (s *Store) Save(ctx context.Context, worldID string, w *domain.WorldState) error {
	copied := w.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[worldID] = copied
	return nil
}

// Load retrieves the world from memory.
func (s *Store) Load(ctx context.Context, worldID string) (*domain.WorldState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.data[worldID]
	if !ok {
		return nil, domain.ErrWorldNotFound
	}

	// Copy on read so the caller can't mutate store state by pointer.
	return w.Clone(), nil
}

// Delete removes the world.
func (s *Store) Delete(ctx context.Context, worldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, worldID)
	return nil
}

// List returns the stored world IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	worlds := make([]string, 0, len(s.data))
	for id := range s.data {
		worlds = append(worlds, id)
	}
	return worlds, nil
}
