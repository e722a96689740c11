package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const dateLayout = "2006-01-02"

// Hash fields of a slot key.
const (
	fieldEventID   = "event_id"
	fieldSlotID    = "slot_id"
	fieldPayee     = "payee"
	fieldCount     = "count"
	fieldMax       = "max"
	fieldDisabled  = "disabled"
	fieldUntil     = "until" // unix millis, 0 = indefinite
	fieldResetDate = "reset_date"
	fieldCreated   = "created" // unix millis
	fieldUpdated   = "updated" // unix millis
)

// incrementScript returns the new count, -1 when the slot is stale,
// disabled or full, and -2 when it does not exist.
// KEYS[1] slot key; ARGV[1] today; ARGV[2] now ms.
var incrementScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -2
end
local s = redis.call('HMGET', KEYS[1], 'count', 'max', 'disabled', 'until', 'reset_date')
if s[5] ~= ARGV[1] then
	return -1
end
if s[3] == '1' then
	local untilMs = tonumber(s[4]) or 0
	if untilMs == 0 or untilMs > tonumber(ARGV[2]) then
		return -1
	end
end
if tonumber(s[1]) >= tonumber(s[2]) then
	return -1
end
redis.call('HSET', KEYS[1], 'updated', ARGV[2])
return redis.call('HINCRBY', KEYS[1], 'count', 1)
`)

// upsertScript creates a slot or updates payee and cap, clamping the counter.
// KEYS[1] slot key, KEYS[2] event slot set, KEYS[3] event set.
var upsertScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	local count = tonumber(redis.call('HGET', KEYS[1], 'count'))
	local max = tonumber(ARGV[4])
	if count > max then
		count = max
	end
	redis.call('HSET', KEYS[1], 'payee', ARGV[3], 'max', ARGV[4], 'count', count, 'updated', ARGV[10])
else
	redis.call('HSET', KEYS[1],
		'event_id', ARGV[1], 'slot_id', ARGV[2], 'payee', ARGV[3], 'max', ARGV[4],
		'count', ARGV[5], 'disabled', ARGV[6], 'until', ARGV[7], 'reset_date', ARGV[8],
		'created', ARGV[9], 'updated', ARGV[10])
end
redis.call('SADD', KEYS[2], ARGV[2])
redis.call('SADD', KEYS[3], ARGV[1])
return 1
`)

// resetScript zeroes a slot for ARGV[1]. With ARGV[2] == '1' it only
// touches slots whose reset date differs from ARGV[1].
var resetScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if ARGV[2] == '1' then
	local d = redis.call('HGET', KEYS[1], 'reset_date')
	if d == ARGV[1] then
		return 0
	end
end
redis.call('HSET', KEYS[1], 'count', 0, 'disabled', '0', 'until', 0, 'reset_date', ARGV[1], 'updated', ARGV[3])
return 1
`)

// setDisabledScript: ARGV[1] '0'|'1', ARGV[2] until ms, ARGV[3] now ms.
var setDisabledScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'disabled', ARGV[1], 'until', ARGV[2], 'updated', ARGV[3])
return 1
`)

// reactivateScript clears a bounded disable that ended at or before ARGV[1].
var reactivateScript = goredis.NewScript(`
local s = redis.call('HMGET', KEYS[1], 'disabled', 'until')
if s[1] ~= '1' then
	return 0
end
local untilMs = tonumber(s[2]) or 0
if untilMs == 0 or untilMs > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'disabled', '0', 'until', 0, 'updated', ARGV[1])
return 1
`)

// SlotStore implements ports.SlotRepository on Redis hashes.
// Every mutation of a single slot runs as one Lua script, which Redis
// executes without interleaving.
type SlotStore struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// NewSlotStore creates a Redis-backed slot store.
func NewSlotStore(client *goredis.Client) *SlotStore {
	return &SlotStore{client: client, prefix: "qr:", now: time.Now}
}

func (s *SlotStore) slotKey(eventID, slotID string) string {
	return fmt.Sprintf("%sslot:%s:%s", s.prefix, eventID, slotID)
}

func (s *SlotStore) eventSlotsKey(eventID string) string {
	return fmt.Sprintf("%sslots:%s", s.prefix, eventID)
}

func (s *SlotStore) eventsKey() string {
	return s.prefix + "events"
}

// ListEvents returns every event that has at least one slot, sorted.
func (s *SlotStore) ListEvents(ctx context.Context) ([]string, error) {
	events, err := s.client.SMembers(ctx, s.eventsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list events: %w", err)
	}
	sort.Strings(events)
	return events, nil
}

func (s *SlotStore) slotIDs(ctx context.Context, eventID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.eventSlotsKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list slot ids: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListByEvent returns the slots of an event ordered by slot ID.
func (s *SlotStore) ListByEvent(ctx context.Context, eventID string) ([]domain.QRSlot, error) {
	ids, err := s.slotIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*goredis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.slotKey(eventID, id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis list slots: %w", err)
	}

	slots := make([]domain.QRSlot, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		slot, err := decodeSlot(fields)
		if err != nil {
			return nil, fmt.Errorf("decode slot %s: %w", ids[i], err)
		}
		slots = append(slots, *slot)
	}
	return slots, nil
}

// Get fetches one slot. Returns nil, nil when it does not exist.
func (s *SlotStore) Get(ctx context.Context, eventID, slotID string) (*domain.QRSlot, error) {
	fields, err := s.client.HGetAll(ctx, s.slotKey(eventID, slotID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get slot: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	slot, err := decodeSlot(fields)
	if err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", slotID, err)
	}
	return slot, nil
}

// Upsert creates or reconfigures a slot and reads the stored state back into slot.
func (s *SlotStore) Upsert(ctx context.Context, slot *domain.QRSlot) error {
	keys := []string{s.slotKey(slot.EventID, slot.SlotID), s.eventSlotsKey(slot.EventID), s.eventsKey()}
	err := upsertScript.Run(ctx, s.client, keys,
		slot.EventID, slot.SlotID, slot.PayeeHandle, slot.MaxDailyCount, slot.DailyCount,
		boolFlag(slot.IsTemporarilyDisabled), untilMillis(slot.TemporarilyDisabledUntil),
		slot.LastResetDate.Format(dateLayout), slot.CreatedAt.UnixMilli(), slot.UpdatedAt.UnixMilli(),
	).Err()
	if err != nil {
		return fmt.Errorf("redis upsert slot: %w", err)
	}

	stored, err := s.Get(ctx, slot.EventID, slot.SlotID)
	if err != nil {
		return err
	}
	if stored != nil {
		*slot = *stored
	}
	return nil
}

// Increment runs the conditional increment script.
func (s *SlotStore) Increment(ctx context.Context, eventID, slotID string, today, now time.Time) (int, error) {
	n, err := incrementScript.Run(ctx, s.client, []string{s.slotKey(eventID, slotID)},
		today.Format(dateLayout), now.UnixMilli(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis increment slot: %w", err)
	}

	switch n {
	case -2:
		return 0, ports.ErrSlotNotFound
	case -1:
		return 0, ports.ErrSlotUnavailable
	}
	return int(n), nil
}

// SetDisabled updates the disable flag. Returns false when the slot does not exist.
func (s *SlotStore) SetDisabled(ctx context.Context, eventID, slotID string, disabled bool, until *time.Time) (bool, error) {
	if !disabled {
		until = nil
	}
	n, err := setDisabledScript.Run(ctx, s.client, []string{s.slotKey(eventID, slotID)},
		boolFlag(disabled), untilMillis(until), s.now().UnixMilli(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis set slot disabled: %w", err)
	}
	return n == 1, nil
}

func (s *SlotStore) reset(ctx context.Context, eventID, slotID string, today time.Time, onlyStale bool) (bool, error) {
	n, err := resetScript.Run(ctx, s.client, []string{s.slotKey(eventID, slotID)},
		today.Format(dateLayout), boolFlag(onlyStale), s.now().UnixMilli(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis reset slot: %w", err)
	}
	return n == 1, nil
}

// Reset zeroes one slot for today. Returns false when the slot does not exist.
func (s *SlotStore) Reset(ctx context.Context, eventID, slotID string, today time.Time) (bool, error) {
	return s.reset(ctx, eventID, slotID, today, false)
}

func (s *SlotStore) resetEach(ctx context.Context, eventID string, today time.Time, onlyStale bool) (int64, error) {
	ids, err := s.slotIDs(ctx, eventID)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, id := range ids {
		ok, err := s.reset(ctx, eventID, id, today, onlyStale)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// ResetAll zeroes every slot of an event.
func (s *SlotStore) ResetAll(ctx context.Context, eventID string, today time.Time) (int64, error) {
	return s.resetEach(ctx, eventID, today, false)
}

// ResetStale zeroes the slots of an event not yet reset for today.
func (s *SlotStore) ResetStale(ctx context.Context, eventID string, today time.Time) (int64, error) {
	return s.resetEach(ctx, eventID, today, true)
}

// ReactivateExpired clears disables whose end time has passed.
func (s *SlotStore) ReactivateExpired(ctx context.Context, eventID string, now time.Time) (int64, error) {
	ids, err := s.slotIDs(ctx, eventID)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, id := range ids {
		res, err := reactivateScript.Run(ctx, s.client, []string{s.slotKey(eventID, id)}, now.UnixMilli()).Int64()
		if err != nil {
			return n, fmt.Errorf("redis reactivate slot: %w", err)
		}
		n += res
	}
	return n, nil
}

func decodeSlot(f map[string]string) (*domain.QRSlot, error) {
	var (
		slot domain.QRSlot
		err  error
	)
	slot.EventID = f[fieldEventID]
	slot.SlotID = f[fieldSlotID]
	slot.PayeeHandle = f[fieldPayee]
	slot.IsTemporarilyDisabled = f[fieldDisabled] == "1"

	if slot.DailyCount, err = strconv.Atoi(f[fieldCount]); err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	if slot.MaxDailyCount, err = strconv.Atoi(f[fieldMax]); err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	if slot.LastResetDate, err = time.Parse(dateLayout, f[fieldResetDate]); err != nil {
		return nil, fmt.Errorf("reset_date: %w", err)
	}

	until, err := parseMillis(f[fieldUntil])
	if err != nil {
		return nil, fmt.Errorf("until: %w", err)
	}
	if slot.IsTemporarilyDisabled && !until.IsZero() {
		slot.TemporarilyDisabledUntil = &until
	}
	if slot.CreatedAt, err = parseMillis(f[fieldCreated]); err != nil {
		return nil, fmt.Errorf("created: %w", err)
	}
	if slot.UpdatedAt, err = parseMillis(f[fieldUpdated]); err != nil {
		return nil, fmt.Errorf("updated: %w", err)
	}
	return &slot, nil
}

var errBadMillis = errors.New("not a unix millisecond timestamp")

func parseMillis(v string) (time.Time, error) {
	if v == "" || v == "0" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errBadMillis, v)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func untilMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
