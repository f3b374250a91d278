package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storefront/backend/internal/domain/cart"
)

func groupLine(shopID, productID string, qty int, price float64) cart.LineItem {
	return cart.LineItem{
		ID:        cart.Signature(shopID, productID, nil, nil),
		ProductID: productID,
		ShopID:    shopID,
		ShopName:  "Shop " + shopID,
		Quantity:  qty,
		Price:     decimal.NewFromFloat(price),
	}
}

func TestGroupByShop_Completeness(t *testing.T) {
	items := []cart.LineItem{
		groupLine("s1", "p1", 2, 50),
		groupLine("s2", "p2", 1, 30),
		groupLine("s1", "p3", 1, 20),
		groupLine("s3", "p4", 4, 5),
	}

	groups := GroupByShop(items)

	assert.Len(t, groups, 3)
	for _, g := range groups {
		for _, item := range g.Items {
			assert.Equal(t, g.ShopID, item.ShopID)
		}
	}

	// Sum of group subtotals equals the cart's total goods price.
	goods := decimal.Zero
	for _, item := range items {
		goods = goods.Add(item.LineTotal())
	}
	assert.True(t, GoodsTotal(groups).Equal(goods))
	assert.True(t, groups[0].Subtotal.Equal(decimal.NewFromInt(120)))
}

func TestGroupByShop_FirstSeenOrder(t *testing.T) {
	items := []cart.LineItem{
		groupLine("s2", "p1", 1, 10),
		groupLine("s1", "p2", 1, 10),
		groupLine("s2", "p3", 1, 10),
	}

	groups := GroupByShop(items)

	assert.Equal(t, "s2", groups[0].ShopID)
	assert.Equal(t, "s1", groups[1].ShopID)
}

func TestGroupByShop_Empty(t *testing.T) {
	assert.Empty(t, GroupByShop(nil))
}

func TestDeliveryTotal_UnknownFeeContributesNothing(t *testing.T) {
	fee := decimal.NewFromInt(10)
	groups := []ShopGroup{
		{ShopID: "s1", Fee: &fee},
		{ShopID: "s2", Fee: nil},
	}

	assert.True(t, DeliveryTotal(groups).Equal(decimal.NewFromInt(10)))
	assert.True(t, groups[0].FeeKnown())
	assert.False(t, groups[1].FeeKnown())
}

func TestDeliveryLocation_OrderNotes(t *testing.T) {
	loc := DeliveryLocation{
		Coords:  &Coordinates{Lat: 30.05, Lng: 31.23},
		Address: "12 Tahrir Sq",
		Note:    "3rd floor",
	}

	notes, err := loc.OrderNotes()

	assert.NoError(t, err)
	assert.Contains(t, notes, `"tag":"COD_LOCATION"`)
	assert.Contains(t, notes, `"lat":30.05`)
	assert.Contains(t, notes, `"address":"12 Tahrir Sq"`)
	assert.Contains(t, notes, `"note":"3rd floor"`)
}

func TestNewOrderRequest(t *testing.T) {
	items := []cart.LineItem{groupLine("s1", "p1", 2, 50)}
	groups := GroupByShop(items)
	loc := DeliveryLocation{Address: "manual address"}

	req, err := NewOrderRequest(groups[0], loc)

	assert.NoError(t, err)
	assert.Equal(t, "s1", req.ShopID)
	assert.Equal(t, PaymentMethodCOD, req.PaymentMethod)
	assert.True(t, req.Total.Equal(decimal.NewFromInt(100)))
	assert.Contains(t, req.Notes, "COD_LOCATION")
}
