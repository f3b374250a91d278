package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// PaymentMethodCOD is the only payment method modeled: cash on delivery.
const PaymentMethodCOD = "COD"

// ErrUnauthenticated is returned when the order collaborator rejects a
// submission with an authentication failure. It is handled differently from
// generic submission failures: the cart is preserved and the user is sent
// to re-authenticate instead of the session entering the error step.
var ErrUnauthenticated = errors.New("order submission rejected: not authenticated")

// OrderRequest is the payload submitted to the order-placement collaborator
// for one shop group.
type OrderRequest struct {
	ShopID        string          `json:"shop_id"`
	Items         []cart.LineItem `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// NewOrderRequest builds the COD submission payload for one shop group.
func NewOrderRequest(group ShopGroup, location DeliveryLocation) (OrderRequest, error) {
	notes, err := location.OrderNotes()
	if err != nil {
		return OrderRequest{}, err
	}
	return OrderRequest{
		ShopID:        group.ShopID,
		Items:         group.Items,
		Total:         group.Subtotal,
		PaymentMethod: PaymentMethodCOD,
		Notes:         notes,
	}, nil
}

// SubmissionError wraps a per-shop submission failure with the HTTP-ish
// status code the collaborator reported, when it reported one.
type SubmissionError struct {
	ShopID     string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("order submission for shop %s failed with status %d: %v", e.ShopID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("order submission for shop %s failed: %v", e.ShopID, e.Err)
}

// Unwrap exposes the underlying cause
func (e *SubmissionError) Unwrap() error {
	return e.Err
}
