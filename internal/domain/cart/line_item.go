package cart

import (
	"github.com/shopspring/decimal"
)

// UnknownShopID is the sentinel shop identifier used when an add-to-cart
// request does not name its owning merchant.
const UnknownShopID = "unknown"

// VariantSelection identifies a specific SKU-level choice for a product,
// e.g. a menu type + size pair or a fashion color + size pair. Both fields
// must be set for the selection to count; a half-filled selection is
// treated as no selection at all.
type VariantSelection struct {
	TypeID string `json:"type_id"`
	SizeID string `json:"size_id"`
}

// IsComplete reports whether both parts of the selection are present.
func (v VariantSelection) IsComplete() bool {
	return v.TypeID != "" && v.SizeID != ""
}

// Addon is an optional extra selection attached to a line item. Its price
// contributes to the unit price captured on the line.
type Addon struct {
	OptionID     string          `json:"option_id"`
	VariantID    string          `json:"variant_id"`
	OptionName   string          `json:"option_name"`
	VariantLabel string          `json:"variant_label"`
	Price        decimal.Decimal `json:"price"`
}

// LineItem is one merged purchasable unit within a cart.
//
// ID is the canonical signature derived from shop, product, variant and
// add-on selection; it is computed once when the line is created and never
// changes afterwards. Price, Name and ShopName are snapshots captured at
// add time and are not re-derived from the catalog.
type LineItem struct {
	ID        string            `json:"id"`
	ProductID string            `json:"product_id"`
	ShopID    string            `json:"shop_id"`
	Name      string            `json:"name"`
	ShopName  string            `json:"shop_name"`
	Quantity  int               `json:"quantity"`
	Price     decimal.Decimal   `json:"price"`
	Variant   *VariantSelection `json:"variant,omitempty"`
	Addons    []Addon           `json:"addons,omitempty"`
}

// LineTotal returns Price * Quantity for this line.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// normalize fills defaults the merge rules rely on: the sentinel shop id
// and a quantity floor of 1.
func (l *LineItem) normalize() {
	if l.ShopID == "" {
		l.ShopID = UnknownShopID
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
}
