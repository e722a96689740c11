package ports

import (
	"context"
	"errors"
	"time"

	"qr-slot-allocator/internal/core/domain"
)

// Sentinel errors returned by SlotRepository.Increment.
var (
	// ErrSlotUnavailable means the conditional increment matched no row:
	// the slot is full, disabled, or its counter belongs to an earlier day.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrSlotNotFound means no slot exists for the given event and slot ID.
	ErrSlotNotFound = errors.New("slot not found")
)

// SlotRepository persists QR slots and their daily counters.
// Increment is the only operation that must be atomic with respect to
// concurrent callers; it is the capacity check and the write in one step.
type SlotRepository interface {
	ListEvents(ctx context.Context) ([]string, error)
	// ListByEvent returns the slots of an event ordered by slot ID.
	ListByEvent(ctx context.Context, eventID string) ([]domain.QRSlot, error)
	// Get returns nil, nil when the slot does not exist.
	Get(ctx context.Context, eventID, slotID string) (*domain.QRSlot, error)
	// Upsert creates a slot or updates its payee and cap. An existing counter
	// is clamped to the new cap; disable state and reset date are kept.
	Upsert(ctx context.Context, slot *domain.QRSlot) error
	// Increment bumps the counter when the slot is enabled at now, not full,
	// and already reset for today. It returns the new count.
	Increment(ctx context.Context, eventID, slotID string, today, now time.Time) (int, error)
	SetDisabled(ctx context.Context, eventID, slotID string, disabled bool, until *time.Time) (bool, error)
	Reset(ctx context.Context, eventID, slotID string, today time.Time) (bool, error)
	ResetAll(ctx context.Context, eventID string, today time.Time) (int64, error)
	// ResetStale resets only slots whose last reset date is before today.
	ResetStale(ctx context.Context, eventID string, today time.Time) (int64, error)
	// ReactivateExpired re-enables slots whose bounded disable has run out.
	ReactivateExpired(ctx context.Context, eventID string, now time.Time) (int64, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
