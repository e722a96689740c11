package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionAllocate    AuditAction = "ALLOCATE"
	AuditActionUpsertSlot  AuditAction = "UPSERT_SLOT"
	AuditActionDisableSlot AuditAction = "DISABLE_SLOT"
	AuditActionEnableSlot  AuditAction = "ENABLE_SLOT"
	AuditActionResetSlot   AuditAction = "RESET_SLOT"
	AuditActionResetAll    AuditAction = "RESET_ALL"
	AuditActionMaintenance AuditAction = "MAINTENANCE"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      string      `json:"actor_id,omitempty"`
	EventID      string      `json:"event_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
