package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

// CacheRepository stores JSON payloads in Redis. A nil client turns
// every operation into a no-op so a missing Redis never blocks reads.
type CacheRepository struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs the repository.
func NewCacheRepository(rdb *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{rdb: rdb, logger: logger}
}

func (c *CacheRepository) ready() bool {
	return c != nil && c.rdb != nil
}

// Get unmarshals the cached payload into dest. A missing key surfaces
// as ErrCacheMiss.
func (c *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.ready() {
		return appErrors.ErrCacheMiss
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return appErrors.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or corrupted payload: drop it and report a miss.
		c.rdb.Del(ctx, key)
		return appErrors.ErrCacheMiss
	}
	return nil
}

// Set writes the payload under the key with the given TTL.
func (c *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// DeleteByPattern drops every key matching the glob pattern.
func (c *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if !c.ready() {
		return nil
	}
	var keys []string
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %q: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", pattern, err)
	}
	c.logger.Debug("cache entries invalidated", zap.String("pattern", pattern), zap.Int("keys", len(keys)))
	return nil
}

// Close releases the Redis connection.
func (c *CacheRepository) Close() error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Close()
}
