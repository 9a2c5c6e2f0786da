package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps sanitized account profiles in Redis for the whoami
// endpoint. It fails safe: an unreachable Redis behaves like a cache miss and
// never fails the request.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps an existing redis client; a nil client disables the
// cache entirely.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func key(accountID string) string {
	return "account:profile:" + accountID
}

// Get returns the cached profile JSON, or nil on miss or redis failure.
func (c *ProfileCache) Get(ctx context.Context, accountID string) []byte {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil
	}
	res, err := c.client.Get(ctx, key(accountID)).Bytes()
	if err != nil {
		return nil
	}
	return res
}

// Set stores the profile JSON with the configured TTL, ignoring redis errors.
func (c *ProfileCache) Set(ctx context.Context, accountID string, profile []byte) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	_ = c.client.Set(ctx, key(accountID), profile, c.ttl).Err()
}

// Invalidate removes a cached profile, ignoring redis errors.
func (c *ProfileCache) Invalidate(ctx context.Context, accountID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key(accountID)).Err()
}
