package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProjectionCache holds ranked projections as JSON blobs with a short
// TTL. Entries are never invalidated on ingest; staleness is bounded by the
// TTL alone.
type RedisProjectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProjectionCache creates a cache over the given client.
func NewRedisProjectionCache(client *redis.Client, ttl time.Duration) *RedisProjectionCache {
	return &RedisProjectionCache{client: client, ttl: ttl}
}

// Get loads and decodes a cached projection. A missing key is a miss, not an
// error.
func (c *RedisProjectionCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores a projection under the configured TTL.
func (c *RedisProjectionCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}
