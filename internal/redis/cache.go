package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// A nil *ViewCache is valid and behaves as a cache that never hits, which is
// how the service runs when Redis is not configured.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
// Pass ttl 0 for keys that should not expire.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	if client == nil {
		return nil
	}
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get returns (nil, false) on any miss, transport error or decode error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			slog.WarnContext(ctx, "view cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.WarnContext(ctx, "view cache decode failed", "key", key, "error", err)
		return nil, false
	}
	return &v, true
}

// Set stores value under key. Failures are logged, a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "view cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "view cache write failed", "key", key, "error", err)
	}
}
