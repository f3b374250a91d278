package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

// ChangeListener is notified after every successful cart mutation so any
// cart-displaying surface can re-read. Reads never notify.
type ChangeListener func(ownerID string)

// Service owns the persisted cart collection for all owners. Every mutation
// is a full read-modify-write against the storage snapshot followed by one
// change notification. Mutations are serialized within this process; across
// processes the snapshot is last-writer-wins (a documented limitation, not
// something this service tries to fix).
type Service struct {
	storage cart.Storage
	logger  *zap.Logger

	mu        sync.Mutex
	listeners map[int]ChangeListener
	nextSub   int
}

// NewService creates a cart service backed by the given storage.
func NewService(storage cart.Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage:   storage,
		logger:    logger,
		listeners: make(map[int]ChangeListener),
	}
}

// OnChange registers a listener for cart-changed notifications and returns
// an unsubscribe function.
func (s *Service) OnChange(fn ChangeListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Add merges a candidate line into the owner's cart. An empty product id is
// rejected without touching storage; the current collection is returned
// unchanged alongside the validation error.
func (s *Service) Add(ctx context.Context, ownerID string, candidate cart.LineItem) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return cart.Empty(), err
	}

	if err := current.Add(candidate); err != nil {
		return current.Copy(), err
	}

	if err := s.storage.Save(ctx, ownerID, current); err != nil {
		return cart.Empty(), err
	}
	s.notifyLocked(ownerID)

	return current.Copy(), nil
}

// Remove deletes the line with the exact id; removing an absent line is a
// no-op that neither persists nor notifies.
func (s *Service) Remove(ctx context.Context, ownerID, lineID string) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return cart.Empty(), err
	}

	if !current.Remove(lineID) {
		return current.Copy(), nil
	}

	if err := s.storage.Save(ctx, ownerID, current); err != nil {
		return cart.Empty(), err
	}
	s.notifyLocked(ownerID)

	return current.Copy(), nil
}

// UpdateQuantity applies a signed delta to a line's quantity, dropping the
// line when it reaches zero or below. A zero delta or an unknown line id is
// a no-op: no write, no notification.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, lineID string, delta int) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return cart.Empty(), err
	}

	if !current.UpdateQuantity(lineID, delta) {
		return current.Copy(), nil
	}

	if err := s.storage.Save(ctx, ownerID, current); err != nil {
		return cart.Empty(), err
	}
	s.notifyLocked(ownerID)

	return current.Copy(), nil
}

// Clear empties the owner's cart.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := cart.Empty()
	if err := s.storage.Save(ctx, ownerID, empty); err != nil {
		return err
	}
	s.notifyLocked(ownerID)
	return nil
}

// Items returns a defensive copy of the owner's persisted collection.
// Malformed stored state surfaces here as an empty cart, never an error.
func (s *Service) Items(ctx context.Context, ownerID string) (cart.Cart, error) {
	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return cart.Empty(), err
	}
	return current.Copy(), nil
}

// notifyLocked fires listeners while holding the service mutex; listeners
// are expected to be fast and re-read asynchronously if they need to.
func (s *Service) notifyLocked(ownerID string) {
	for _, fn := range s.listeners {
		fn(ownerID)
	}
}
