package domain

import (
	"time"

	"github.com/google/uuid"
)

// AllocationRecord is the immutable result of one successful allocation.
// SequenceNumber is the slot's daily count right after the increment, 1-based.
type AllocationRecord struct {
	ID             uuid.UUID `json:"id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	SlotID         string    `json:"slot_id"`
	PayeeHandle    string    `json:"payee_handle"`
	SequenceNumber int       `json:"sequence_number"`
	AllocatedAt    time.Time `json:"allocated_at"`
}

// SelectSlot picks the eligible slot with the lowest daily count, breaking
// ties by ascending slot ID. It returns false when no slot is eligible.
func SelectSlot(slots []QRSlot, now time.Time) (QRSlot, bool) {
	var best QRSlot
	found := false

	for _, s := range slots {
		if !s.IsEligible(now) {
			continue
		}
		if !found ||
			s.DailyCount < best.DailyCount ||
			(s.DailyCount == best.DailyCount && s.SlotID < best.SlotID) {
			best = s
			found = true
		}
	}
	return best, found
}

// BuildIdempotencyKey scopes a caller-supplied key to an event and user.
func BuildIdempotencyKey(eventID, userID, key string) string {
	return eventID + ":" + userID + ":" + key
}
