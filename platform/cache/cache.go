// Package cache provides the shared response cache for outbound place-search
// calls. Entries are JSON blobs keyed by a digest of the exact request
// parameters and expire after a fixed TTL; there is no invalidation path and
// no in-flight deduplication. Place data changes rarely, so serving a stale
// entry for up to the TTL is the accepted tradeoff.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"machikado_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when no entry exists for the key.
var ErrMiss = errors.New("cache: miss")

// ResponseCache stores raw upstream response bodies in Redis.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a response cache from the application config.
// Returns nil when no Redis URL is configured; callers treat a nil cache
// as permanently missing.
func New(cfg config.CacheConfig) (*ResponseCache, error) {
	if !cfg.IsCacheEnabled() {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	return &ResponseCache{
		client: redis.NewClient(opt),
		ttl:    cfg.GetPlacesCacheTTL(),
	}, nil
}

// NewWithClient creates a response cache around an existing Redis client.
func NewWithClient(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

// Key derives a deterministic cache key from an operation name and the
// serialized request parameters.
func Key(operation string, params []byte) string {
	sum := sha256.Sum256(params)
	return "places:" + operation + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached body for key, or ErrMiss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, ErrMiss
	}

	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Set stores body under key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, body, c.ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
