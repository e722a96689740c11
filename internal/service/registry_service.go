package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
	"qr-slot-allocator/pkg/apperror"

	"github.com/rs/zerolog"
)

// RegistryService implements ports.SlotRegistry.
type RegistryService struct {
	repo       ports.SlotRepository
	cal        *domain.Calendar
	defaultMax int
	log        zerolog.Logger
}

// NewRegistryService creates a registry over repo. defaultMax is the cap
// given to slots registered without one.
func NewRegistryService(repo ports.SlotRepository, cal *domain.Calendar, defaultMax int, log zerolog.Logger) *RegistryService {
	if defaultMax <= 0 {
		defaultMax = domain.DefaultMaxDailyCount
	}
	return &RegistryService{
		repo:       repo,
		cal:        cal,
		defaultMax: defaultMax,
		log:        log,
	}
}

func unavailable(op string, err error) error {
	return apperror.ErrRegistryUnavailable(fmt.Errorf("%s: %w", op, err))
}

// GetSlots applies pending daily resets and expired disables, then returns
// the event's slots sorted by slot ID.
func (s *RegistryService) GetSlots(ctx context.Context, eventID string) ([]domain.QRSlot, error) {
	today := s.cal.Today(eventID)
	now := s.cal.Now()

	reset, err := s.repo.ResetStale(ctx, eventID, today)
	if err != nil {
		return nil, unavailable("reset stale slots", err)
	}
	reactivated, err := s.repo.ReactivateExpired(ctx, eventID, now)
	if err != nil {
		return nil, unavailable("reactivate expired slots", err)
	}
	if reset > 0 || reactivated > 0 {
		s.log.Info().
			Str("event_id", eventID).
			Int64("reset", reset).
			Int64("reactivated", reactivated).
			Msg("lazy slot correction applied")
	}

	slots, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, unavailable("list slots", err)
	}
	for i := range slots {
		if err := slots[i].Validate(); err != nil {
			s.log.Error().Err(err).Str("event_id", eventID).Str("slot_id", slots[i].SlotID).Msg("malformed slot")
			return nil, apperror.ErrInvalidSlotConfiguration(err.Error())
		}
	}
	return slots, nil
}

// IncrementSlot takes the next sequence number of a slot.
func (s *RegistryService) IncrementSlot(ctx context.Context, eventID, slotID string) (int, error) {
	count, err := s.repo.Increment(ctx, eventID, slotID, s.cal.Today(eventID), s.cal.Now())
	switch {
	case err == nil:
		return count, nil
	case errors.Is(err, ports.ErrSlotUnavailable):
		return 0, apperror.ErrSlotUnavailable()
	case errors.Is(err, ports.ErrSlotNotFound):
		return 0, apperror.ErrNotFound("slot")
	default:
		return 0, unavailable("increment slot", err)
	}
}

// RegisterSlot creates a slot or updates its payee and cap.
func (s *RegistryService) RegisterSlot(ctx context.Context, req ports.RegisterSlotRequest) (*domain.QRSlot, error) {
	if req.EventID == "" || req.SlotID == "" {
		return nil, apperror.Validation("event_id and slot_id are required")
	}
	if req.PayeeHandle == "" {
		return nil, apperror.Validation("payee_handle is required")
	}

	max := req.MaxDailyCount
	if max == 0 {
		max = s.defaultMax
	}
	if max < 0 {
		return nil, apperror.ErrInvalidSlotConfiguration(fmt.Sprintf("max_daily_count must be positive, got %d", max))
	}

	now := s.cal.Now().UTC()
	slot := &domain.QRSlot{
		EventID:       req.EventID,
		SlotID:        req.SlotID,
		PayeeHandle:   req.PayeeHandle,
		MaxDailyCount: max,
		LastResetDate: s.cal.Today(req.EventID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := slot.Validate(); err != nil {
		return nil, apperror.ErrInvalidSlotConfiguration(err.Error())
	}

	if err := s.repo.Upsert(ctx, slot); err != nil {
		return nil, unavailable("upsert slot", err)
	}

	s.log.Info().
		Str("event_id", slot.EventID).
		Str("slot_id", slot.SlotID).
		Int("max_daily_count", slot.MaxDailyCount).
		Msg("slot registered")
	return slot, nil
}

// DisableSlot takes a slot out of rotation, until a future time or indefinitely.
func (s *RegistryService) DisableSlot(ctx context.Context, eventID, slotID string, until *time.Time) error {
	if until != nil && !until.After(s.cal.Now()) {
		return apperror.Validation("until must be in the future")
	}

	found, err := s.repo.SetDisabled(ctx, eventID, slotID, true, until)
	if err != nil {
		return unavailable("disable slot", err)
	}
	if !found {
		return apperror.ErrNotFound("slot")
	}

	ev := s.log.Info().Str("event_id", eventID).Str("slot_id", slotID)
	if until != nil {
		ev = ev.Time("until", *until)
	}
	ev.Msg("slot disabled")
	return nil
}

// EnableSlot puts a slot back into rotation without touching its counter.
func (s *RegistryService) EnableSlot(ctx context.Context, eventID, slotID string) error {
	found, err := s.repo.SetDisabled(ctx, eventID, slotID, false, nil)
	if err != nil {
		return unavailable("enable slot", err)
	}
	if !found {
		return apperror.ErrNotFound("slot")
	}

	s.log.Info().Str("event_id", eventID).Str("slot_id", slotID).Msg("slot enabled")
	return nil
}

// ResetSlot zeroes one slot for today.
func (s *RegistryService) ResetSlot(ctx context.Context, eventID, slotID string) error {
	found, err := s.repo.Reset(ctx, eventID, slotID, s.cal.Today(eventID))
	if err != nil {
		return unavailable("reset slot", err)
	}
	if !found {
		return apperror.ErrNotFound("slot")
	}

	s.log.Info().Str("event_id", eventID).Str("slot_id", slotID).Msg("slot reset")
	return nil
}

// ResetAll zeroes every slot of an event and returns how many were reset.
func (s *RegistryService) ResetAll(ctx context.Context, eventID string) (int64, error) {
	n, err := s.repo.ResetAll(ctx, eventID, s.cal.Today(eventID))
	if err != nil {
		return 0, unavailable("reset all slots", err)
	}

	s.log.Warn().Str("event_id", eventID).Int64("slots", n).Msg("all slots force reset")
	return n, nil
}
