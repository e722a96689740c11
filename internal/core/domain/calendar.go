package domain

import (
	"fmt"
	"time"
)

// Calendar resolves "today" and the next reset boundary for an event.
// Every event uses its configured IANA timezone, falling back to the pool
// default; server-local time is never consulted.
type Calendar struct {
	defaultLoc *time.Location
	eventLocs  map[string]*time.Location
	now        func() time.Time
}

// NewCalendar loads the default timezone and the per-event overrides.
func NewCalendar(defaultTZ string, eventTZ map[string]string) (*Calendar, error) {
	def, err := time.LoadLocation(defaultTZ)
	if err != nil {
		return nil, fmt.Errorf("loading default timezone %q: %w", defaultTZ, err)
	}

	locs := make(map[string]*time.Location, len(eventTZ))
	for eventID, tz := range eventTZ {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("loading timezone %q for event %s: %w", tz, eventID, err)
		}
		locs[eventID] = loc
	}

	return &Calendar{defaultLoc: def, eventLocs: locs, now: time.Now}, nil
}

// WithClock returns a copy of the calendar reading the current time from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	cp := *c
	cp.now = now
	return &cp
}

// Now returns the current instant.
func (c *Calendar) Now() time.Time {
	return c.now()
}

// Location returns the timezone used for eventID.
func (c *Calendar) Location(eventID string) *time.Location {
	if loc, ok := c.eventLocs[eventID]; ok {
		return loc
	}
	return c.defaultLoc
}

// DayAt returns the calendar date of t in the event timezone, as 00:00 UTC.
func (c *Calendar) DayAt(eventID string, t time.Time) time.Time {
	y, m, d := t.In(c.Location(eventID)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date for eventID.
func (c *Calendar) Today(eventID string) time.Time {
	return c.DayAt(eventID, c.now())
}

// NextReset returns the next local midnight after t for eventID.
func (c *Calendar) NextReset(eventID string, t time.Time) time.Time {
	loc := c.Location(eventID)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
