package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/application/delivery"
)

type feeEntry struct {
	fee       decimal.Decimal
	expiresAt time.Time
}

// InMemoryFeeCache caches resolved delivery fees in process memory.
// Suitable for single-instance deployments and testing.
type InMemoryFeeCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]feeEntry
}

// NewInMemoryFeeCache creates an in-memory fee cache. Expired entries are
// dropped lazily on read; the working set is one entry per shop, so no
// cleanup goroutine is needed.
func NewInMemoryFeeCache(ttl time.Duration) *InMemoryFeeCache {
	return &InMemoryFeeCache{
		ttl:     ttl,
		entries: make(map[string]feeEntry),
	}
}

// Get implements delivery.FeeCache
func (c *InMemoryFeeCache) Get(_ context.Context, shopID string) (decimal.Decimal, bool) {
	c.mu.RLock()
	e, ok := c.entries[shopID]
	c.mu.RUnlock()

	if !ok {
		return decimal.Zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, shopID)
		c.mu.Unlock()
		return decimal.Zero, false
	}
	return e.fee, true
}

// Set implements delivery.FeeCache
func (c *InMemoryFeeCache) Set(_ context.Context, shopID string, fee decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[shopID] = feeEntry{
		fee:       fee,
		expiresAt: time.Now().Add(c.ttl),
	}
}

var _ delivery.FeeCache = (*InMemoryFeeCache)(nil)
