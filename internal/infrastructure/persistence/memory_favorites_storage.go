package persistence

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/domain/favorites"
)

// InMemoryFavoritesStorage keeps favorites snapshots in process memory.
type InMemoryFavoritesStorage struct {
	mu    sync.RWMutex
	lists map[string]favorites.List
}

// NewInMemoryFavoritesStorage creates empty in-memory favorites storage.
func NewInMemoryFavoritesStorage() *InMemoryFavoritesStorage {
	return &InMemoryFavoritesStorage{lists: make(map[string]favorites.List)}
}

// Load implements favorites.Storage
func (s *InMemoryFavoritesStorage) Load(_ context.Context, ownerID string) (favorites.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.lists[ownerID]; ok {
		return l.Copy(), nil
	}
	return favorites.Empty(), nil
}

// Save implements favorites.Storage
func (s *InMemoryFavoritesStorage) Save(_ context.Context, ownerID string, l favorites.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[ownerID] = l.Copy()
	return nil
}

var _ favorites.Storage = (*InMemoryFavoritesStorage)(nil)
