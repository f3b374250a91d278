package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// ShopGroup is the runtime grouping of cart lines by owning merchant, used
// only at checkout time. Fee is the shop's resolved delivery fee; nil means
// "fee unknown", which is a distinct state from a fee of zero.
type ShopGroup struct {
	ShopID   string           `json:"shop_id"`
	ShopName string           `json:"shop_name"`
	Items    []cart.LineItem  `json:"items"`
	Subtotal decimal.Decimal  `json:"subtotal"`
	Fee      *decimal.Decimal `json:"fee"`
}

// FeeKnown reports whether the group's delivery fee has been resolved to a
// valid non-negative number.
func (g ShopGroup) FeeKnown() bool {
	return g.Fee != nil
}

// GroupByShop splits cart lines into one group per distinct shop id, in
// first-seen order. Each group's subtotal is the sum of price * quantity
// over its lines; fees are attached separately by the caller.
func GroupByShop(items []cart.LineItem) []ShopGroup {
	index := make(map[string]int, len(items))
	groups := make([]ShopGroup, 0, len(items))

	for _, item := range items {
		idx, ok := index[item.ShopID]
		if !ok {
			idx = len(groups)
			index[item.ShopID] = idx
			groups = append(groups, ShopGroup{
				ShopID:   item.ShopID,
				ShopName: item.ShopName,
				Subtotal: decimal.Zero,
			})
		}
		groups[idx].Items = append(groups[idx].Items, item)
		groups[idx].Subtotal = groups[idx].Subtotal.Add(item.LineTotal())
		if groups[idx].ShopName == "" {
			groups[idx].ShopName = item.ShopName
		}
	}

	return groups
}

// DeliveryTotal sums the known fees across groups. Unknown fees contribute
// nothing to the computed total; the presentation layer must still label
// those groups as "fee unknown" rather than implying zero.
func DeliveryTotal(groups []ShopGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		if g.Fee != nil {
			total = total.Add(*g.Fee)
		}
	}
	return total
}

// GoodsTotal sums the group subtotals.
func GoodsTotal(groups []ShopGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Subtotal)
	}
	return total
}
