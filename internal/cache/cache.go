// Package cache implements the read cache (§6): string-keyed values with a
// TTL, invalidated by idempotent deletes from the Persistence Layer. The
// Redis client setup is grounded on the h3-spatial-cache example's
// redisstore package; value serialization uses msgpack so the HTTP API
// layer (pure JSON) never has to know the cache's wire format.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jimmysun0815/snow-api/internal/metrics"
)

// Default TTLs per §6.
const (
	TTLSummary = 600 * time.Second
	TTLDefault = 300 * time.Second
	TTLTrails  = 3600 * time.Second
)

// Cache is the narrow interface the Persistence Layer and Read API share.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache is the production Cache, backed by go-redis.
type RedisCache struct {
	client *redis.Client
}

// New builds a RedisCache from a redis:// URL (§6's REDIS_URL).
func New(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// NewFromClient wraps an existing *redis.Client — used by tests against
// miniredis, where there's no real URL to parse.
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	prefix := keyPrefix(key)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.CacheMissesTotal.WithLabelValues(prefix).Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := msgpack.Unmarshal(data, dest); err != nil {
		return false, err
	}
	metrics.CacheHitsTotal.WithLabelValues(prefix).Inc()
	return true, nil
}

func keyPrefix(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes the given keys; a missing key is not an error — deletes
// are idempotent by design (§5: "writes are idempotent deletes; no lock
// needed").
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
