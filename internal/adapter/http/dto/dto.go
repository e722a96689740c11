package dto

// AllocateRequest is the optional body of an allocation call. The
// Idempotency-Key header takes precedence over the body field.
type AllocateRequest struct {
	IdempotencyKey string `json:"idempotency_key,omitempty" binding:"omitempty,max=128,safe_id"`
}

// AllocationResponse is returned for a successful allocation.
type AllocationResponse struct {
	AllocationID   string `json:"allocation_id"`
	EventID        string `json:"event_id"`
	SlotID         string `json:"slot_id"`
	PayeeHandle    string `json:"payee_handle"`
	SequenceNumber int    `json:"sequence_number"`
	AllocatedAt    string `json:"allocated_at"`
}

// RegisterSlotRequest is the body of PUT .../slots/:slot_id.
// A zero or missing max_daily_count uses the pool default.
type RegisterSlotRequest struct {
	PayeeHandle   string `json:"payee_handle" binding:"required,max=512,payee_handle" sanitize:"trim"`
	MaxDailyCount int    `json:"max_daily_count" binding:"omitempty,gt=0,lte=100000"`
}

// DisableSlotRequest optionally bounds a disable. Omit until for an
// indefinite disable.
type DisableSlotRequest struct {
	Until *string `json:"until,omitempty" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00" sanitize:"trim"`
}

// SlotResponse is one slot as seen by administrators.
type SlotResponse struct {
	EventID                  string  `json:"event_id"`
	SlotID                   string  `json:"slot_id"`
	PayeeHandle              string  `json:"payee_handle"`
	DailyCount               int     `json:"daily_count"`
	MaxDailyCount            int     `json:"max_daily_count"`
	Remaining                int     `json:"remaining"`
	IsTemporarilyDisabled    bool    `json:"is_temporarily_disabled"`
	TemporarilyDisabledUntil *string `json:"temporarily_disabled_until,omitempty"`
	LastResetDate            string  `json:"last_reset_date"`
}

// SlotListResponse wraps the slots of one event.
type SlotListResponse struct {
	EventID string         `json:"event_id"`
	Slots   []SlotResponse `json:"slots"`
	Total   int            `json:"total"`
}

// ResetAllResponse reports how many slots a force reset touched.
type ResetAllResponse struct {
	EventID    string `json:"event_id"`
	SlotsReset int64  `json:"slots_reset"`
}

// ActionResponse acknowledges an admin mutation on a slot.
type ActionResponse struct {
	EventID string `json:"event_id"`
	SlotID  string `json:"slot_id"`
	Status  string `json:"status"`
}
