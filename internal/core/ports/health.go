package ports

import "context"

// HealthChecker probes one storage dependency of the allocator.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
	// Critical reports whether allocations stop when the dependency is down.
	// A lost idempotency cache or rate limiter only degrades the service.
	Critical() bool
}
