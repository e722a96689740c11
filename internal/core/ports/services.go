package ports

import (
	"context"
	"time"

	"qr-slot-allocator/internal/core/domain"
)

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// RoleAdmin is the role allowed to manage slots.
const RoleAdmin = "admin"

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the claims carry the admin role.
func (c *TokenClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// IdempotencyCache remembers allocation results for retried requests.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	// Set keeps an existing entry for key; the first stored allocation wins.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AuditService records audited actions without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// SlotRegistry is the authoritative store of slots for every event.
// GetSlots applies any pending daily reset and expired disables before
// returning, so callers always see counters for today.
type SlotRegistry interface {
	GetSlots(ctx context.Context, eventID string) ([]domain.QRSlot, error)
	IncrementSlot(ctx context.Context, eventID, slotID string) (int, error)
	RegisterSlot(ctx context.Context, req RegisterSlotRequest) (*domain.QRSlot, error)
	DisableSlot(ctx context.Context, eventID, slotID string, until *time.Time) error
	EnableSlot(ctx context.Context, eventID, slotID string) error
	ResetSlot(ctx context.Context, eventID, slotID string) error
	ResetAll(ctx context.Context, eventID string) (int64, error)
}

// RegisterSlotRequest creates or reconfigures a slot.
// MaxDailyCount of zero means the pool default.
type RegisterSlotRequest struct {
	EventID       string
	SlotID        string
	PayeeHandle   string
	MaxDailyCount int
}

// AllocatorService assigns users to slots.
type AllocatorService interface {
	Allocate(ctx context.Context, req AllocateRequest) (*domain.AllocationRecord, error)
}

// AllocateRequest holds validated input for one allocation.
type AllocateRequest struct {
	EventID        string
	UserID         string
	IdempotencyKey string // optional
	ClientIP       string
}

// SchedulerService applies daily resets and disable expiry across events.
type SchedulerService interface {
	Start(ctx context.Context)
	RunMaintenance(ctx context.Context) (*MaintenanceReport, error)
	NextReset(eventID string) time.Time
}

// MaintenanceReport summarises one maintenance pass.
type MaintenanceReport struct {
	Events           int       `json:"events"`
	SlotsReset       int64     `json:"slots_reset"`
	SlotsReactivated int64     `json:"slots_reactivated"`
	FailedEvents     []string  `json:"failed_events,omitempty"`
	RanAt            time.Time `json:"ran_at"`
}

// InsightsService exposes read-only pool analytics.
type InsightsService interface {
	GetInsights(ctx context.Context, eventID string) (*domain.PoolInsights, error)
}
