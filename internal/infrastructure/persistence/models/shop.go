package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/application/delivery"
)

// ShopModel is the merchant configuration read-model. DeliveryFee is a
// nullable column: NULL means the merchant has not configured a fee, which
// the resolver reports as "unknown" rather than zero.
type ShopModel struct {
	ID          string           `gorm:"size:64;primary_key"`
	Slug        string           `gorm:"size:120;uniqueIndex;not null"`
	Name        string           `gorm:"size:255;not null"`
	DeliveryFee *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the read-model row into the resolver's shop view.
func (m *ShopModel) ToDomain() *delivery.Shop {
	shop := &delivery.Shop{
		ID:   m.ID,
		Slug: m.Slug,
		Name: m.Name,
	}
	if m.DeliveryFee != nil {
		fee := *m.DeliveryFee
		shop.DeliveryFee = &fee
	}
	return shop
}
