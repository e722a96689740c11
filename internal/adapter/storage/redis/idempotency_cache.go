package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyCache implements ports.IdempotencyCache using Redis. Each entry
// is the JSON of an allocation already handed out under an
// event:user:key idempotency key. The first allocation stored for a key
// stays authoritative until it expires.
type IdempotencyCache struct {
	client *goredis.Client
	prefix string
}

func NewIdempotencyCache(client *goredis.Client) *IdempotencyCache {
	return &IdempotencyCache{client: client, prefix: "qr:idem:"}
}

// Get returns the cached allocation, or nil, nil when none is stored.
func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("redis get allocation %q: %w", key, err)
	}
	return val, nil
}

// Set stores the allocation for key unless one is already stored. A second
// concurrent first request does not replace the record later replays see.
func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.SetNX(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis store allocation %q: %w", key, err)
	}
	return nil
}
