package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
)

// CartAccess is the slice of the cart service the composer needs: reading
// the persisted collection and clearing it after a fully successful
// submission.
type CartAccess interface {
	Items(ctx context.Context, ownerID string) (cart.Cart, error)
	Clear(ctx context.Context, ownerID string) error
}

// FeeResolver resolves per-shop delivery fees; nil means "fee unknown".
type FeeResolver interface {
	Resolve(ctx context.Context, shopIDs []string) map[string]*decimal.Decimal
}

// OrderPlacer submits one order to the order-placement collaborator. An
// authentication failure must be reported as checkout.ErrUnauthenticated
// (possibly wrapped); other failures should carry the collaborator's status
// code via checkout.SubmissionError when one is known.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req checkout.OrderRequest) error
}

// LocationProvider acquires a device-reported geographic position. Acquire
// honors the context deadline; a failed or timed-out acquisition is
// recoverable and leaves the manual address as the fallback.
type LocationProvider interface {
	Acquire(ctx context.Context) (checkout.Coordinates, error)
}
