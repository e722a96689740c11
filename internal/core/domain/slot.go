package domain

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMaxDailyCount is the per-slot daily cap used when none is configured.
const DefaultMaxDailyCount = 20

// QRSlot is one payment-acceptance channel of an event with a fixed daily cap.
// DailyCount is only meaningful for LastResetDate; a read on a later day
// implies a reset that has not been applied yet.
type QRSlot struct {
	EventID                  string     `json:"event_id"`
	SlotID                   string     `json:"slot_id"`
	PayeeHandle              string     `json:"payee_handle"`
	DailyCount               int        `json:"daily_count"`
	MaxDailyCount            int        `json:"max_daily_count"`
	IsTemporarilyDisabled    bool       `json:"is_temporarily_disabled"`
	TemporarilyDisabledUntil *time.Time `json:"temporarily_disabled_until,omitempty"`
	LastResetDate            time.Time  `json:"last_reset_date"` // calendar date, 00:00 UTC
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// IsDisabledAt reports whether the slot is out of rotation at now.
// A disable with an Until in the past no longer counts.
func (s *QRSlot) IsDisabledAt(now time.Time) bool {
	if !s.IsTemporarilyDisabled {
		return false
	}
	return s.TemporarilyDisabledUntil == nil || now.Before(*s.TemporarilyDisabledUntil)
}

// IsFull reports whether the daily cap has been reached.
func (s *QRSlot) IsFull() bool {
	return s.DailyCount >= s.MaxDailyCount
}

// IsEligible reports whether the slot can take another allocation at now.
func (s *QRSlot) IsEligible(now time.Time) bool {
	return !s.IsDisabledAt(now) && !s.IsFull()
}

// Remaining returns the capacity left today.
func (s *QRSlot) Remaining() int {
	if s.IsFull() {
		return 0
	}
	return s.MaxDailyCount - s.DailyCount
}

// IsStale reports whether the counter belongs to a day other than today.
// A reset date ahead of today happens when the event timezone moves west.
func (s *QRSlot) IsStale(today time.Time) bool {
	return !s.LastResetDate.Equal(today)
}

// HasExpiredDisable reports whether a bounded disable has run out.
func (s *QRSlot) HasExpiredDisable(now time.Time) bool {
	return s.IsTemporarilyDisabled &&
		s.TemporarilyDisabledUntil != nil &&
		!now.Before(*s.TemporarilyDisabledUntil)
}

// Reset zeroes the counter for today and puts the slot back into rotation.
func (s *QRSlot) Reset(today time.Time) {
	s.DailyCount = 0
	s.IsTemporarilyDisabled = false
	s.TemporarilyDisabledUntil = nil
	s.LastResetDate = today
}

// Disable takes the slot out of rotation, optionally until a point in time.
func (s *QRSlot) Disable(until *time.Time) {
	s.IsTemporarilyDisabled = true
	s.TemporarilyDisabledUntil = until
}

// Enable clears the disabled flag without touching the counter.
func (s *QRSlot) Enable() {
	s.IsTemporarilyDisabled = false
	s.TemporarilyDisabledUntil = nil
}

var (
	errEmptyEventID = errors.New("event_id must not be empty")
	errEmptySlotID  = errors.New("slot_id must not be empty")
)

// Validate checks the slot configuration and counter invariants.
func (s *QRSlot) Validate() error {
	if s.EventID == "" {
		return errEmptyEventID
	}
	if s.SlotID == "" {
		return errEmptySlotID
	}
	if s.MaxDailyCount <= 0 {
		return fmt.Errorf("slot %s: max_daily_count must be positive, got %d", s.SlotID, s.MaxDailyCount)
	}
	if s.DailyCount < 0 || s.DailyCount > s.MaxDailyCount {
		return fmt.Errorf("slot %s: daily_count %d outside [0, %d]", s.SlotID, s.DailyCount, s.MaxDailyCount)
	}
	return nil
}
