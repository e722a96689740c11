package service

import (
	"context"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
)

// InsightsService implements ports.InsightsService.
type InsightsService struct {
	registry ports.SlotRegistry
	cal      *domain.Calendar
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(registry ports.SlotRegistry, cal *domain.Calendar) *InsightsService {
	return &InsightsService{registry: registry, cal: cal}
}

// GetInsights summarises the event's pool as of now.
func (s *InsightsService) GetInsights(ctx context.Context, eventID string) (*domain.PoolInsights, error) {
	slots, err := s.registry.GetSlots(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.cal.Now()
	in := domain.ComputeInsights(eventID, slots, now, s.cal.NextReset(eventID, now))
	return &in, nil
}
