package domain

import (
	"math"
	"time"
)

// PoolInsights is a read-only summary of one event's pool for dashboards.
type PoolInsights struct {
	EventID             string    `json:"event_id"`
	TotalSlots          int       `json:"total_slots"`
	ActiveSlots         int       `json:"active_slots"`
	DisabledSlots       int       `json:"disabled_slots"`
	FullSlots           int       `json:"full_slots"`
	TotalAllocatedToday int       `json:"total_allocated_today"`
	TotalCapacity       int       `json:"total_capacity"`
	RemainingCapacity   int       `json:"remaining_capacity"`
	BusiestSlotID       string    `json:"busiest_slot_id,omitempty"`
	BusiestSlotCount    int       `json:"busiest_slot_count"`
	UtilizationPercent  float64   `json:"utilization_percent"`
	NextResetAt         time.Time `json:"next_reset_at"`
	SecondsUntilReset   int64     `json:"seconds_until_reset"`
	HoursUntilReset     int       `json:"hours_until_reset"`
}

// ComputeInsights aggregates slots as of now. It does not mutate its input.
// Remaining capacity only counts slots that can take allocations right now.
func ComputeInsights(eventID string, slots []QRSlot, now, nextReset time.Time) PoolInsights {
	in := PoolInsights{
		EventID:     eventID,
		TotalSlots:  len(slots),
		NextResetAt: nextReset,
	}

	for _, s := range slots {
		in.TotalAllocatedToday += s.DailyCount
		in.TotalCapacity += s.MaxDailyCount

		switch {
		case s.IsDisabledAt(now):
			in.DisabledSlots++
		case s.IsFull():
			in.FullSlots++
		default:
			in.ActiveSlots++
			in.RemainingCapacity += s.Remaining()
		}

		if s.DailyCount > in.BusiestSlotCount ||
			(s.DailyCount == in.BusiestSlotCount && s.DailyCount > 0 && s.SlotID < in.BusiestSlotID) {
			in.BusiestSlotID = s.SlotID
			in.BusiestSlotCount = s.DailyCount
		}
	}

	if in.TotalCapacity > 0 {
		pct := float64(in.TotalAllocatedToday) / float64(in.TotalCapacity) * 100
		in.UtilizationPercent = math.Round(pct*100) / 100
	}

	if until := nextReset.Sub(now); until > 0 {
		in.SecondsUntilReset = int64(until / time.Second)
		in.HoursUntilReset = int(until / time.Hour)
	}

	return in
}
