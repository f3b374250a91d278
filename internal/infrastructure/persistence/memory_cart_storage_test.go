package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storefront/backend/internal/domain/cart"
)

func TestInMemoryCartStorage_MissingOwnerLoadsEmpty(t *testing.T) {
	s := NewInMemoryCartStorage()

	c, err := s.Load(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestInMemoryCartStorage_RoundTrip(t *testing.T) {
	s := NewInMemoryCartStorage()
	ctx := context.Background()

	c := cart.Empty()
	assert.NoError(t, c.Add(cart.LineItem{
		ProductID: "p1",
		ShopID:    "s1",
		Name:      "Mug",
		Quantity:  2,
		Price:     decimal.NewFromInt(12),
	}))
	assert.NoError(t, s.Save(ctx, "o1", c))

	loaded, err := s.Load(ctx, "o1")

	assert.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
}

func TestInMemoryCartStorage_StoresCopies(t *testing.T) {
	s := NewInMemoryCartStorage()
	ctx := context.Background()

	c := cart.Empty()
	assert.NoError(t, c.Add(cart.LineItem{ProductID: "p1", ShopID: "s1", Quantity: 1, Price: decimal.NewFromInt(5)}))
	assert.NoError(t, s.Save(ctx, "o1", c))

	// Mutating the caller's cart must not leak into the stored snapshot.
	c.Items[0].Quantity = 99

	loaded, err := s.Load(ctx, "o1")
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.Items[0].Quantity)
}

func TestInMemoryCartStorage_OwnerIsolation(t *testing.T) {
	s := NewInMemoryCartStorage()
	ctx := context.Background()

	c := cart.Empty()
	assert.NoError(t, c.Add(cart.LineItem{ProductID: "p1", ShopID: "s1", Quantity: 1, Price: decimal.NewFromInt(5)}))
	assert.NoError(t, s.Save(ctx, "o1", c))

	other, err := s.Load(ctx, "o2")
	assert.NoError(t, err)
	assert.True(t, other.IsEmpty())
}
