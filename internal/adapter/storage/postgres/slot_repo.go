package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const slotColumns = `event_id, slot_id, payee_handle, daily_count, max_daily_count,
	is_temporarily_disabled, temporarily_disabled_until, last_reset_date, created_at, updated_at`

// SlotRepo implements ports.SlotRepository on the qr_slots table.
type SlotRepo struct {
	pool Pool
}

// NewSlotRepo creates a new SlotRepo.
func NewSlotRepo(pool Pool) *SlotRepo {
	return &SlotRepo{pool: pool}
}

func scanSlot(row pgx.Row) (*domain.QRSlot, error) {
	s := &domain.QRSlot{}
	err := row.Scan(
		&s.EventID, &s.SlotID, &s.PayeeHandle, &s.DailyCount, &s.MaxDailyCount,
		&s.IsTemporarilyDisabled, &s.TemporarilyDisabledUntil, &s.LastResetDate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ListEvents returns every event that has at least one slot.
func (r *SlotRepo) ListEvents(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT event_id FROM qr_slots ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []string
	for rows.Next() {
		var eventID string
		if err := rows.Scan(&eventID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, eventID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ListByEvent returns the slots of an event ordered by slot ID.
func (r *SlotRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.QRSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM qr_slots WHERE event_id = $1 ORDER BY slot_id`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.QRSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}

// Get fetches one slot. Returns nil, nil when it does not exist.
func (r *SlotRepo) Get(ctx context.Context, eventID, slotID string) (*domain.QRSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM qr_slots WHERE event_id = $1 AND slot_id = $2`

	s, err := scanSlot(r.pool.QueryRow(ctx, query, eventID, slotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

// Upsert inserts a slot or updates payee and cap of an existing one.
// The stored counter, disable state and reset date are scanned back into slot.
func (r *SlotRepo) Upsert(ctx context.Context, slot *domain.QRSlot) error {
	query := `INSERT INTO qr_slots (` + slotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_id, slot_id) DO UPDATE SET
			payee_handle = EXCLUDED.payee_handle,
			max_daily_count = EXCLUDED.max_daily_count,
			daily_count = LEAST(qr_slots.daily_count, EXCLUDED.max_daily_count),
			updated_at = EXCLUDED.updated_at
		RETURNING daily_count, is_temporarily_disabled, temporarily_disabled_until, last_reset_date, created_at`

	err := r.pool.QueryRow(ctx, query,
		slot.EventID, slot.SlotID, slot.PayeeHandle, slot.DailyCount, slot.MaxDailyCount,
		slot.IsTemporarilyDisabled, slot.TemporarilyDisabledUntil, slot.LastResetDate,
		slot.CreatedAt, slot.UpdatedAt,
	).Scan(
		&slot.DailyCount, &slot.IsTemporarilyDisabled, &slot.TemporarilyDisabledUntil,
		&slot.LastResetDate, &slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// Increment performs the capacity check and the write as one conditional UPDATE.
// Concurrent callers serialize on the row lock, so the cap can never be exceeded.
func (r *SlotRepo) Increment(ctx context.Context, eventID, slotID string, today, now time.Time) (int, error) {
	query := `UPDATE qr_slots
		SET daily_count = daily_count + 1, updated_at = NOW()
		WHERE event_id = $1 AND slot_id = $2
			AND daily_count < max_daily_count
			AND last_reset_date = $3
			AND (NOT is_temporarily_disabled
				OR (temporarily_disabled_until IS NOT NULL AND temporarily_disabled_until <= $4))
		RETURNING daily_count`

	var count int
	err := r.pool.QueryRow(ctx, query, eventID, slotID, today, now).Scan(&count)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("increment slot: %w", err)
	}

	var exists bool
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM qr_slots WHERE event_id = $1 AND slot_id = $2)`,
		eventID, slotID,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check slot exists: %w", err)
	}
	if !exists {
		return 0, ports.ErrSlotNotFound
	}
	return 0, ports.ErrSlotUnavailable
}

// SetDisabled updates the disable flag. Returns false when the slot does not exist.
func (r *SlotRepo) SetDisabled(ctx context.Context, eventID, slotID string, disabled bool, until *time.Time) (bool, error) {
	query := `UPDATE qr_slots
		SET is_temporarily_disabled = $3, temporarily_disabled_until = $4, updated_at = NOW()
		WHERE event_id = $1 AND slot_id = $2`

	tag, err := r.pool.Exec(ctx, query, eventID, slotID, disabled, until)
	if err != nil {
		return false, fmt.Errorf("set slot disabled: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const resetSet = `SET daily_count = 0, is_temporarily_disabled = FALSE,
	temporarily_disabled_until = NULL, last_reset_date = $%d, updated_at = NOW()`

// Reset zeroes one slot for today. Returns false when the slot does not exist.
func (r *SlotRepo) Reset(ctx context.Context, eventID, slotID string, today time.Time) (bool, error) {
	query := `UPDATE qr_slots ` + fmt.Sprintf(resetSet, 3) + ` WHERE event_id = $1 AND slot_id = $2`

	tag, err := r.pool.Exec(ctx, query, eventID, slotID, today)
	if err != nil {
		return false, fmt.Errorf("reset slot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ResetAll zeroes every slot of an event.
func (r *SlotRepo) ResetAll(ctx context.Context, eventID string, today time.Time) (int64, error) {
	query := `UPDATE qr_slots ` + fmt.Sprintf(resetSet, 2) + ` WHERE event_id = $1`

	tag, err := r.pool.Exec(ctx, query, eventID, today)
	if err != nil {
		return 0, fmt.Errorf("reset all slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ResetStale zeroes only the slots of an event not yet reset for today.
// Running it twice on the same day is a no-op the second time.
func (r *SlotRepo) ResetStale(ctx context.Context, eventID string, today time.Time) (int64, error) {
	query := `UPDATE qr_slots ` + fmt.Sprintf(resetSet, 2) + ` WHERE event_id = $1 AND last_reset_date <> $2`

	tag, err := r.pool.Exec(ctx, query, eventID, today)
	if err != nil {
		return 0, fmt.Errorf("reset stale slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReactivateExpired clears disables whose end time has passed.
func (r *SlotRepo) ReactivateExpired(ctx context.Context, eventID string, now time.Time) (int64, error) {
	query := `UPDATE qr_slots
		SET is_temporarily_disabled = FALSE, temporarily_disabled_until = NULL, updated_at = NOW()
		WHERE event_id = $1 AND is_temporarily_disabled
			AND temporarily_disabled_until IS NOT NULL AND temporarily_disabled_until <= $2`

	tag, err := r.pool.Exec(ctx, query, eventID, now)
	if err != nil {
		return 0, fmt.Errorf("reactivate expired slots: %w", err)
	}
	return tag.RowsAffected(), nil
}
