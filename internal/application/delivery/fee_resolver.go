package delivery

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Shop is the slice of merchant configuration the resolver cares about.
// DeliveryFee is nil when the merchant has not configured one.
type Shop struct {
	ID          string
	Slug        string
	Name        string
	DeliveryFee *decimal.Decimal
}

// ShopLookup fetches merchant configuration by shop id or slug.
type ShopLookup interface {
	Find(ctx context.Context, shopID string) (*Shop, error)
}

// FeeCache caches resolved fees per shop. Get returns false when the shop's
// fee has not been cached; cache errors are the implementation's problem
// and must not surface here.
type FeeCache interface {
	Get(ctx context.Context, shopID string) (decimal.Decimal, bool)
	Set(ctx context.Context, shopID string, fee decimal.Decimal)
}

// FeeResolver resolves per-shop delivery fees. Each shop is fetched
// independently: one shop's lookup failure resolves that shop to "unknown"
// (nil) and never blocks another's resolution.
type FeeResolver struct {
	shops  ShopLookup
	cache  FeeCache
	logger *zap.Logger
}

// NewFeeResolver creates a FeeResolver. The cache may be nil, in which case
// every resolution hits the lookup.
func NewFeeResolver(shops ShopLookup, cache FeeCache, logger *zap.Logger) *FeeResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeResolver{shops: shops, cache: cache, logger: logger}
}

// Resolve returns a fee per shop id. A missing shop, a missing or negative
// configured value, or a fetch failure all resolve to nil ("fee unknown"),
// never to zero. Only valid non-negative fees are cached.
func (r *FeeResolver) Resolve(ctx context.Context, shopIDs []string) map[string]*decimal.Decimal {
	fees := make(map[string]*decimal.Decimal, len(shopIDs))

	for _, shopID := range shopIDs {
		if _, done := fees[shopID]; done {
			continue
		}
		fees[shopID] = r.resolveOne(ctx, shopID)
	}

	return fees
}

func (r *FeeResolver) resolveOne(ctx context.Context, shopID string) *decimal.Decimal {
	if r.cache != nil {
		if fee, ok := r.cache.Get(ctx, shopID); ok {
			return &fee
		}
	}

	shop, err := r.shops.Find(ctx, shopID)
	if err != nil {
		r.logger.Warn("delivery fee lookup failed, fee resolves to unknown",
			zap.String("shop_id", shopID),
			zap.Error(err),
		)
		return nil
	}
	if shop == nil || shop.DeliveryFee == nil || shop.DeliveryFee.IsNegative() {
		return nil
	}

	fee := *shop.DeliveryFee
	if r.cache != nil {
		r.cache.Set(ctx, shopID, fee)
	}
	return &fee
}
