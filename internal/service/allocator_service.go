package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
	"qr-slot-allocator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMaxRetries bounds re-selection after a lost increment race.
const DefaultMaxRetries = 3

// AllocatorOptions tunes the allocator. A negative MaxRetries or a zero
// IdempotencyTTL takes the default.
type AllocatorOptions struct {
	MaxRetries     int           // re-selections after the first attempt
	Timeout        time.Duration // per allocation, 0 = caller's context only
	IdempotencyTTL time.Duration
	Clock          func() time.Time
}

// AllocatorService implements ports.AllocatorService.
type AllocatorService struct {
	registry   ports.SlotRegistry
	idempCache ports.IdempotencyCache // nil = idempotency keys ignored
	auditSvc   ports.AuditService     // nil = no audit entries
	opts       AllocatorOptions
	log        zerolog.Logger
}

// NewAllocatorService creates a new AllocatorService.
func NewAllocatorService(
	registry ports.SlotRegistry,
	idempCache ports.IdempotencyCache,
	auditSvc ports.AuditService,
	opts AllocatorOptions,
	log zerolog.Logger,
) *AllocatorService {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &AllocatorService{
		registry:   registry,
		idempCache: idempCache,
		auditSvc:   auditSvc,
		opts:       opts,
		log:        log,
	}
}

// Allocate assigns the user to the least-loaded eligible slot of the event.
// A lost race on the increment re-reads the pool and selects again, at most
// MaxRetries times, before failing with AllocationContention.
func (s *AllocatorService) Allocate(ctx context.Context, req ports.AllocateRequest) (*domain.AllocationRecord, error) {
	if req.EventID == "" || req.UserID == "" {
		return nil, apperror.Validation("event_id and user_id are required")
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	var idempKey string
	if req.IdempotencyKey != "" && s.idempCache != nil {
		idempKey = domain.BuildIdempotencyKey(req.EventID, req.UserID, req.IdempotencyKey)
		if rec := s.cachedRecord(ctx, idempKey); rec != nil {
			return rec, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		slots, err := s.registry.GetSlots(ctx, req.EventID)
		if err != nil {
			return nil, s.storageFailure(err)
		}

		chosen, ok := domain.SelectSlot(slots, s.opts.Clock())
		if !ok {
			s.log.Warn().
				Str("event_id", req.EventID).
				Int("slots", len(slots)).
				Msg("no eligible slot, pool exhausted")
			return nil, apperror.ErrNoCapacityAvailable()
		}

		seq, err := s.registry.IncrementSlot(ctx, req.EventID, chosen.SlotID)
		if err == nil {
			return s.finish(ctx, req, chosen, seq, idempKey), nil
		}
		if !apperror.HasCode(err, apperror.CodeSlotUnavailable) {
			return nil, s.storageFailure(err)
		}

		lastErr = err
		s.log.Debug().
			Str("event_id", req.EventID).
			Str("slot_id", chosen.SlotID).
			Int("attempt", attempt+1).
			Msg("lost increment race, reselecting")
	}

	s.log.Warn().
		Str("event_id", req.EventID).
		Int("attempts", s.opts.MaxRetries+1).
		Msg("allocation contention, retries exhausted")
	return nil, apperror.ErrAllocationContention(lastErr)
}

// storageFailure maps a timed-out storage call to a transient contention error.
func (s *AllocatorService) storageFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrAllocationContention(err)
	}
	return err
}

func (s *AllocatorService) finish(ctx context.Context, req ports.AllocateRequest, slot domain.QRSlot, seq int, idempKey string) *domain.AllocationRecord {
	rec := &domain.AllocationRecord{
		ID:             uuid.New(),
		EventID:        req.EventID,
		UserID:         req.UserID,
		SlotID:         slot.SlotID,
		PayeeHandle:    slot.PayeeHandle,
		SequenceNumber: seq,
		AllocatedAt:    s.opts.Clock().UTC(),
	}

	if idempKey != "" {
		if body, err := json.Marshal(rec); err == nil {
			if err := s.idempCache.Set(ctx, idempKey, body, s.opts.IdempotencyTTL); err != nil {
				s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache allocation for idempotency")
			}
		}
	}

	if s.auditSvc != nil {
		details, _ := json.Marshal(map[string]any{
			"slot_id":         rec.SlotID,
			"sequence_number": rec.SequenceNumber,
		})
		s.auditSvc.Log(ctx, &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      req.UserID,
			EventID:      req.EventID,
			Action:       domain.AuditActionAllocate,
			ResourceType: "allocation",
			ResourceID:   rec.ID.String(),
			Details:      string(details),
			IPAddress:    req.ClientIP,
			CreatedAt:    rec.AllocatedAt,
		})
	}

	s.log.Info().
		Str("allocation_id", rec.ID.String()).
		Str("event_id", rec.EventID).
		Str("user_id", rec.UserID).
		Str("slot_id", rec.SlotID).
		Int("sequence_number", rec.SequenceNumber).
		Msg("slot allocated")

	return rec
}

func (s *AllocatorService) cachedRecord(ctx context.Context, key string) *domain.AllocationRecord {
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency lookup failed, allocating without it")
		return nil
	}
	if cached == nil {
		return nil
	}

	var rec domain.AllocationRecord
	if err := json.Unmarshal(cached, &rec); err != nil {
		s.log.Warn().Err(fmt.Errorf("unmarshal cached allocation: %w", err)).Str("key", key).Msg("ignoring corrupt idempotency entry")
		return nil
	}
	s.log.Debug().Str("key", key).Str("allocation_id", rec.ID.String()).Msg("idempotent replay")
	return &rec
}
