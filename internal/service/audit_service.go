package service

import (
	"context"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	"github.com/rs/zerolog"
)

// auditPersistTimeout bounds one audit insert after the request has finished.
const auditPersistTimeout = 5 * time.Second

type auditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

// NewAuditService returns the allocator's audit trail. Entries always reach
// the logger; with a nil repo they are not persisted.
func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, logger: logger}
}

// Log records entry without blocking the caller. Allocations are logged at
// debug level since there is one per attendee; admin actions at info.
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	go func() {
		ev := s.logger.Info()
		if entry.Action == domain.AuditActionAllocate {
			ev = s.logger.Debug()
		}
		ev.Str("action", string(entry.Action)).
			Str("actor_id", entry.ActorID).
			Str("event_id", entry.EventID).
			Str(entry.ResourceType+"_id", entry.ResourceID).
			Str("ip", entry.IPAddress).
			Msg("audit")

		if s.repo == nil {
			return
		}
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditPersistTimeout)
		defer cancel()
		if err := s.repo.Create(persistCtx, entry); err != nil {
			s.logger.Warn().Err(err).
				Str("action", string(entry.Action)).
				Str("event_id", entry.EventID).
				Msg("failed to persist audit entry")
		}
	}()
}
