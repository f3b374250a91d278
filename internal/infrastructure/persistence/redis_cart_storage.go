package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

const cartKeyPrefix = "cart:slot:"

// RedisCartStorage persists cart snapshots in Redis, one key per owner.
// Every save writes the full snapshot; a missing or undecodable snapshot
// loads as an empty cart so a corrupt slot can never wedge the storefront.
type RedisCartStorage struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisCartStorage creates cart storage on an existing Redis client.
func NewRedisCartStorage(client *redis.Client, logger *zap.Logger) *RedisCartStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCartStorage{
		client:    client,
		keyPrefix: cartKeyPrefix,
		logger:    logger,
	}
}

// Load implements cart.Storage
func (s *RedisCartStorage) Load(ctx context.Context, ownerID string) (cart.Cart, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+ownerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return cart.Empty(), nil
		}
		return cart.Empty(), fmt.Errorf("failed to load cart for %s: %w", ownerID, err)
	}

	return s.decodeSnapshot(ownerID, raw), nil
}

// decodeSnapshot turns a stored payload into a cart. An undecodable
// payload yields an empty cart, never an error.
func (s *RedisCartStorage) decodeSnapshot(ownerID string, raw []byte) cart.Cart {
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		s.logger.Warn("cart snapshot undecodable, starting empty",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return cart.Empty()
	}
	if c.Items == nil {
		c.Items = []cart.LineItem{}
	}
	return c
}

// Save implements cart.Storage
func (s *RedisCartStorage) Save(ctx context.Context, ownerID string, c cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart for %s: %w", ownerID, err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+ownerID, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart for %s: %w", ownerID, err)
	}
	return nil
}

var _ cart.Storage = (*RedisCartStorage)(nil)
