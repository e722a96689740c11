package service

import (
	"context"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SchedulerService implements ports.SchedulerService. It complements the
// lazy reset done on every registry read by also covering idle events.
type SchedulerService struct {
	repo     ports.SlotRepository
	cal      *domain.Calendar
	interval time.Duration
	auditSvc ports.AuditService // nil = no audit entries
	log      zerolog.Logger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(
	repo ports.SlotRepository,
	cal *domain.Calendar,
	interval time.Duration,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *SchedulerService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SchedulerService{
		repo:     repo,
		cal:      cal,
		interval: interval,
		auditSvc: auditSvc,
		log:      log,
	}
}

// Start runs one maintenance pass immediately and then one per interval,
// in a background goroutine, until ctx is done.
func (s *SchedulerService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				s.log.Info().Msg("reset scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
	s.log.Info().Dur("interval", s.interval).Msg("reset scheduler started")
}

func (s *SchedulerService) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.RunMaintenance(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduled maintenance failed")
	}
}

// RunMaintenance resets stale slots and reactivates expired disables for
// every known event. A failing event is reported and does not stop the pass.
func (s *SchedulerService) RunMaintenance(ctx context.Context) (*ports.MaintenanceReport, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, unavailable("list events", err)
	}

	now := s.cal.Now()
	report := &ports.MaintenanceReport{Events: len(events), RanAt: now.UTC()}

	for _, eventID := range events {
		reset, err := s.repo.ResetStale(ctx, eventID, s.cal.Today(eventID))
		if err != nil {
			s.log.Error().Err(err).Str("event_id", eventID).Msg("maintenance: reset stale slots failed")
			report.FailedEvents = append(report.FailedEvents, eventID)
			continue
		}
		reactivated, err := s.repo.ReactivateExpired(ctx, eventID, now)
		if err != nil {
			s.log.Error().Err(err).Str("event_id", eventID).Msg("maintenance: reactivate slots failed")
			report.FailedEvents = append(report.FailedEvents, eventID)
		}
		report.SlotsReset += reset
		report.SlotsReactivated += reactivated

		if reset > 0 {
			s.log.Info().
				Str("event_id", eventID).
				Int64("slots", reset).
				Time("next_reset", s.cal.NextReset(eventID, now)).
				Msg("daily reset applied")
		}
	}

	if s.auditSvc != nil && (report.SlotsReset > 0 || report.SlotsReactivated > 0) {
		s.auditSvc.Log(ctx, &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      "scheduler",
			Action:       domain.AuditActionMaintenance,
			ResourceType: "pool",
			CreatedAt:    report.RanAt,
		})
	}
	return report, nil
}

// NextReset returns the next local midnight of the event's timezone.
func (s *SchedulerService) NextReset(eventID string) time.Time {
	return s.cal.NextReset(eventID, s.cal.Now())
}
