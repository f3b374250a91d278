package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/application/delivery"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormShopLookup implements delivery.ShopLookup against the shops
// read-model. Shops are matched by id or slug; cart lines carry whichever
// the catalog handed out.
type GormShopLookup struct {
	db *gorm.DB
}

// NewGormShopLookup creates a shop lookup on the given connection.
func NewGormShopLookup(db *gorm.DB) *GormShopLookup {
	return &GormShopLookup{db: db}
}

// Find implements delivery.ShopLookup. A missing shop returns (nil, nil);
// only transport-level failures surface as errors.
func (l *GormShopLookup) Find(ctx context.Context, shopID string) (*delivery.Shop, error) {
	var model models.ShopModel
	err := l.db.WithContext(ctx).
		Where("id = ? OR slug = ?", shopID, shopID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shop %s: %w", shopID, err)
	}
	return model.ToDomain(), nil
}

var _ delivery.ShopLookup = (*GormShopLookup)(nil)
