package persistence

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/domain/cart"
)

// InMemoryCartStorage keeps cart snapshots in process memory. Suitable for
// single-instance deployments and testing.
type InMemoryCartStorage struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

// NewInMemoryCartStorage creates empty in-memory cart storage.
func NewInMemoryCartStorage() *InMemoryCartStorage {
	return &InMemoryCartStorage{carts: make(map[string]cart.Cart)}
}

// Load implements cart.Storage
func (s *InMemoryCartStorage) Load(_ context.Context, ownerID string) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[ownerID]; ok {
		return c.Copy(), nil
	}
	return cart.Empty(), nil
}

// Save implements cart.Storage
func (s *InMemoryCartStorage) Save(_ context.Context, ownerID string, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[ownerID] = c.Copy()
	return nil
}

var _ cart.Storage = (*InMemoryCartStorage)(nil)
