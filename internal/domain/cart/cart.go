package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is the full line-item collection for one owner. Mutations operate on
// the whole collection; callers persist the result as a single snapshot.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Empty returns a cart with no items.
func Empty() Cart {
	return Cart{Items: []LineItem{}}
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Add merges a candidate line into the cart. If a line with the same
// canonical signature exists, its quantity is increased by the candidate's
// quantity and its snapshot fields (price, name, add-ons) are refreshed to
// the candidate's. Otherwise the candidate becomes a new line with its
// quantity floored at 1. An empty product id is rejected.
func (c *Cart) Add(candidate LineItem) error {
	if candidate.ProductID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	candidate.normalize()
	candidate.ID = Signature(candidate.ShopID, candidate.ProductID, candidate.Variant, candidate.Addons)

	for idx := range c.Items {
		if c.Items[idx].ID == candidate.ID {
			candidate.Quantity += c.Items[idx].Quantity
			c.Items[idx] = candidate
			return nil
		}
	}

	c.Items = append(c.Items, candidate)
	return nil
}

// Remove deletes the line with the exact id. It reports whether a line was
// actually removed.
func (c *Cart) Remove(lineID string) bool {
	for idx, item := range c.Items {
		if item.ID == lineID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity adds a signed delta to a line's quantity. A line reaching
// zero or below is dropped from the collection; a quantity of zero or less
// is never kept. It reports whether the collection changed; a zero delta or
// an unknown line id changes nothing.
func (c *Cart) UpdateQuantity(lineID string, delta int) bool {
	if delta == 0 {
		return false
	}
	for idx := range c.Items {
		if c.Items[idx].ID != lineID {
			continue
		}
		next := c.Items[idx].Quantity + delta
		if next <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		} else {
			c.Items[idx].Quantity = next
		}
		return true
	}
	return false
}

// Clear empties the collection.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// Get returns the line with the given id, or nil.
func (c Cart) Get(lineID string) *LineItem {
	for idx := range c.Items {
		if c.Items[idx].ID == lineID {
			return &c.Items[idx]
		}
	}
	return nil
}

// GoodsTotal returns the sum of price * quantity over all lines.
func (c Cart) GoodsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ShopIDs returns the distinct shop ids across all lines, in first-seen order.
func (c Cart) ShopIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.ShopID]; ok {
			continue
		}
		seen[item.ShopID] = struct{}{}
		ids = append(ids, item.ShopID)
	}
	return ids
}

// Copy returns a deep copy of the cart so callers cannot mutate the
// persisted collection through the returned value.
func (c Cart) Copy() Cart {
	out := Cart{Items: make([]LineItem, len(c.Items))}
	copy(out.Items, c.Items)
	for idx := range out.Items {
		if out.Items[idx].Variant != nil {
			v := *out.Items[idx].Variant
			out.Items[idx].Variant = &v
		}
		if out.Items[idx].Addons != nil {
			addons := make([]Addon, len(out.Items[idx].Addons))
			copy(addons, out.Items[idx].Addons)
			out.Items[idx].Addons = addons
		}
	}
	return out
}
