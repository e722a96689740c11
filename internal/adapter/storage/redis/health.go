package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck probes Redis. It is critical only when Redis also holds the
// slot counters; as a cache and rate-limit backend its loss only degrades.
type HealthCheck struct {
	client    *goredis.Client
	slotStore bool
}

func NewHealthCheck(client *goredis.Client, slotStore bool) *HealthCheck {
	return &HealthCheck{client: client, slotStore: slotStore}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *HealthCheck) Name() string {
	if h.slotStore {
		return "slot_registry_redis"
	}
	return "redis_cache"
}

func (h *HealthCheck) Critical() bool { return h.slotStore }
