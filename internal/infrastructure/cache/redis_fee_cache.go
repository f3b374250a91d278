package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/delivery"
)

const feeKeyPrefix = "shop:fee:"

// RedisFeeCache caches resolved delivery fees in Redis so repeated checkout
// summaries do not hammer the shops read-model. Suitable for distributed
// deployments where instances share cache state.
type RedisFeeCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisFeeCache creates a fee cache on an existing Redis client. Cache
// errors are logged and treated as misses; the resolver falls back to the
// lookup.
func NewRedisFeeCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisFeeCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisFeeCache{
		client:    client,
		keyPrefix: feeKeyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// Get implements delivery.FeeCache
func (c *RedisFeeCache) Get(ctx context.Context, shopID string) (decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, c.keyPrefix+shopID).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("fee cache read failed",
				zap.String("shop_id", shopID),
				zap.Error(err),
			)
		}
		return decimal.Zero, false
	}

	fee, err := decimal.NewFromString(raw)
	if err != nil {
		// A corrupt entry is a miss; the resolver will overwrite it.
		c.logger.Warn("fee cache entry corrupt, discarding",
			zap.String("shop_id", shopID),
			zap.String("raw", raw),
		)
		return decimal.Zero, false
	}
	return fee, true
}

// Set implements delivery.FeeCache
func (c *RedisFeeCache) Set(ctx context.Context, shopID string, fee decimal.Decimal) {
	if err := c.client.Set(ctx, c.keyPrefix+shopID, fee.String(), c.ttl).Err(); err != nil {
		c.logger.Warn("fee cache write failed",
			zap.String("shop_id", shopID),
			zap.Error(err),
		)
	}
}

var _ delivery.FeeCache = (*RedisFeeCache)(nil)
