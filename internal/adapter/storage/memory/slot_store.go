// Package memory holds a process-local slot store for single-instance
// deployments and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
)

type slotKey struct {
	eventID string
	slotID  string
}

// SlotStore implements ports.SlotRepository in memory.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[slotKey]*domain.QRSlot
	now   func() time.Time
}

// NewSlotStore creates an empty in-memory slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[slotKey]*domain.QRSlot), now: time.Now}
}

func (s *SlotStore) ListEvents(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var events []string
	for k := range s.slots {
		if _, ok := seen[k.eventID]; ok {
			continue
		}
		seen[k.eventID] = struct{}{}
		events = append(events, k.eventID)
	}
	sort.Strings(events)
	return events, nil
}

func (s *SlotStore) ListByEvent(ctx context.Context, eventID string) ([]domain.QRSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.QRSlot
	for k, slot := range s.slots {
		if k.eventID == eventID {
			out = append(out, copySlot(slot))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotID < out[j].SlotID })
	return out, nil
}

func (s *SlotStore) Get(ctx context.Context, eventID, slotID string) (*domain.QRSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[slotKey{eventID, slotID}]
	if !ok {
		return nil, nil
	}
	cp := copySlot(slot)
	return &cp, nil
}

func (s *SlotStore) Upsert(ctx context.Context, slot *domain.QRSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := slotKey{slot.EventID, slot.SlotID}
	existing, ok := s.slots[k]
	if !ok {
		cp := copySlot(slot)
		s.slots[k] = &cp
		return nil
	}

	existing.PayeeHandle = slot.PayeeHandle
	existing.MaxDailyCount = slot.MaxDailyCount
	if existing.DailyCount > existing.MaxDailyCount {
		existing.DailyCount = existing.MaxDailyCount
	}
	existing.UpdatedAt = slot.UpdatedAt
	*slot = copySlot(existing)
	return nil
}

// Increment checks and bumps the counter under the store lock.
func (s *SlotStore) Increment(ctx context.Context, eventID, slotID string, today, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotKey{eventID, slotID}]
	if !ok {
		return 0, ports.ErrSlotNotFound
	}
	if !slot.LastResetDate.Equal(today) || !slot.IsEligible(now) {
		return 0, ports.ErrSlotUnavailable
	}
	slot.DailyCount++
	slot.UpdatedAt = now
	return slot.DailyCount, nil
}

func (s *SlotStore) SetDisabled(ctx context.Context, eventID, slotID string, disabled bool, until *time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotKey{eventID, slotID}]
	if !ok {
		return false, nil
	}
	if disabled {
		slot.Disable(copyTime(until))
	} else {
		slot.Enable()
	}
	slot.UpdatedAt = s.now()
	return true, nil
}

func (s *SlotStore) Reset(ctx context.Context, eventID, slotID string, today time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotKey{eventID, slotID}]
	if !ok {
		return false, nil
	}
	slot.Reset(today)
	slot.UpdatedAt = s.now()
	return true, nil
}

func (s *SlotStore) ResetAll(ctx context.Context, eventID string, today time.Time) (int64, error) {
	return s.resetWhere(eventID, today, func(*domain.QRSlot) bool { return true }), nil
}

func (s *SlotStore) ResetStale(ctx context.Context, eventID string, today time.Time) (int64, error) {
	return s.resetWhere(eventID, today, func(slot *domain.QRSlot) bool { return slot.IsStale(today) }), nil
}

func (s *SlotStore) resetWhere(eventID string, today time.Time, match func(*domain.QRSlot) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, slot := range s.slots {
		if k.eventID != eventID || !match(slot) {
			continue
		}
		slot.Reset(today)
		slot.UpdatedAt = s.now()
		n++
	}
	return n
}

func (s *SlotStore) ReactivateExpired(ctx context.Context, eventID string, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, slot := range s.slots {
		if k.eventID != eventID || !slot.HasExpiredDisable(now) {
			continue
		}
		slot.Enable()
		slot.UpdatedAt = now
		n++
	}
	return n, nil
}

func copySlot(s *domain.QRSlot) domain.QRSlot {
	cp := *s
	cp.TemporarilyDisabledUntil = copyTime(s.TemporarilyDisabledUntil)
	return cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
