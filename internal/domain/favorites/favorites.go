package favorites

import (
	"github.com/shopspring/decimal"
)

// Item is one favorited product. The product's display fields are captured
// at favoriting time, the same snapshot approach the cart takes.
type Item struct {
	ProductID string          `json:"product_id"`
	ShopID    string          `json:"shop_id"`
	Name      string          `json:"name"`
	ShopName  string          `json:"shop_name"`
	Price     decimal.Decimal `json:"price"`
}

// List is an owner's full set of favorites, persisted as one snapshot.
type List struct {
	Items []Item `json:"items"`
}

// Empty returns a list with no favorites.
func Empty() List {
	return List{Items: []Item{}}
}

// Contains reports whether the product is already favorited.
func (l List) Contains(productID string) bool {
	return l.indexOf(productID) >= 0
}

// Toggle adds the item when absent and removes it when present, returning
// whether it is favorited afterwards.
func (l *List) Toggle(item Item) bool {
	if idx := l.indexOf(item.ProductID); idx >= 0 {
		l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
		return false
	}
	l.Items = append(l.Items, item)
	return true
}

// Copy returns a deep copy so callers cannot mutate stored state.
func (l List) Copy() List {
	out := List{Items: make([]Item, len(l.Items))}
	copy(out.Items, l.Items)
	return out
}

func (l List) indexOf(productID string) int {
	for i, item := range l.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
