package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/favorites"
)

const favoritesKeyPrefix = "favorites:slot:"

// RedisFavoritesStorage persists favorites snapshots in Redis, the same
// slot layout as carts: one key per owner, full snapshot per write,
// malformed snapshots load as empty.
type RedisFavoritesStorage struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisFavoritesStorage creates favorites storage on an existing Redis client.
func NewRedisFavoritesStorage(client *redis.Client, logger *zap.Logger) *RedisFavoritesStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisFavoritesStorage{
		client:    client,
		keyPrefix: favoritesKeyPrefix,
		logger:    logger,
	}
}

// Load implements favorites.Storage
func (s *RedisFavoritesStorage) Load(ctx context.Context, ownerID string) (favorites.List, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+ownerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return favorites.Empty(), nil
		}
		return favorites.Empty(), fmt.Errorf("failed to load favorites for %s: %w", ownerID, err)
	}

	return s.decodeSnapshot(ownerID, raw), nil
}

// decodeSnapshot turns a stored payload into a favorites list. An
// undecodable payload yields an empty list, never an error.
func (s *RedisFavoritesStorage) decodeSnapshot(ownerID string, raw []byte) favorites.List {
	var l favorites.List
	if err := json.Unmarshal(raw, &l); err != nil {
		s.logger.Warn("favorites snapshot undecodable, starting empty",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return favorites.Empty()
	}
	if l.Items == nil {
		l.Items = []favorites.Item{}
	}
	return l
}

// Save implements favorites.Storage
func (s *RedisFavoritesStorage) Save(ctx context.Context, ownerID string, l favorites.List) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode favorites for %s: %w", ownerID, err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+ownerID, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save favorites for %s: %w", ownerID, err)
	}
	return nil
}

var _ favorites.Storage = (*RedisFavoritesStorage)(nil)
