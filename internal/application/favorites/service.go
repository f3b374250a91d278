package favorites

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/favorites"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service manages per-owner favorites lists on top of snapshot storage.
type Service struct {
	storage favorites.Storage
	logger  *zap.Logger
}

// NewService creates a favorites service.
func NewService(storage favorites.Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{storage: storage, logger: logger}
}

// Toggle flips the favorited state of a product and persists the new
// snapshot. It returns whether the product is favorited afterwards.
func (s *Service) Toggle(ctx context.Context, ownerID string, item favorites.Item) (bool, error) {
	if item.ProductID == "" {
		return false, shared.NewDomainError("INVALID_PRODUCT", "Product id is required")
	}

	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return false, err
	}

	favorited := current.Toggle(item)
	if err := s.storage.Save(ctx, ownerID, current); err != nil {
		return false, err
	}

	s.logger.Debug("favorites toggled",
		zap.String("owner_id", ownerID),
		zap.String("product_id", item.ProductID),
		zap.Bool("favorited", favorited),
	)
	return favorited, nil
}

// List returns the owner's favorites.
func (s *Service) List(ctx context.Context, ownerID string) (favorites.List, error) {
	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return favorites.Empty(), err
	}
	return current.Copy(), nil
}

// IsFavorite reports whether the owner has favorited the product.
func (s *Service) IsFavorite(ctx context.Context, ownerID, productID string) (bool, error) {
	current, err := s.storage.Load(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return current.Contains(productID), nil
}
