package memory

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	today = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	now   = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func seed(t *testing.T, store *SlotStore, eventID, slotID string, max int) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), &domain.QRSlot{
		EventID:       eventID,
		SlotID:        slotID,
		PayeeHandle:   "upi://pay?pa=" + slotID + "@bank",
		MaxDailyCount: max,
		LastResetDate: today,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func TestSlotStore_IncrementUntilFull(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 2)

	n, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Increment(ctx, "ctf-2026", "QR001", today, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Increment(ctx, "ctf-2026", "QR001", today, now)
	assert.ErrorIs(t, err, ports.ErrSlotUnavailable)

	_, err = store.Increment(ctx, "ctf-2026", "nope", today, now)
	assert.ErrorIs(t, err, ports.ErrSlotNotFound)
}

func TestSlotStore_IncrementRejectsStaleAndDisabled(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)

	_, err := store.Increment(ctx, "ctf-2026", "QR001", today.AddDate(0, 0, 1), now)
	assert.ErrorIs(t, err, ports.ErrSlotUnavailable, "counter from yesterday must be reset first")

	until := now.Add(time.Hour)
	found, err := store.SetDisabled(ctx, "ctf-2026", "QR001", true, &until)
	require.NoError(t, err)
	require.True(t, found)

	_, err = store.Increment(ctx, "ctf-2026", "QR001", today, now)
	assert.ErrorIs(t, err, ports.ErrSlotUnavailable)

	n, err := store.Increment(ctx, "ctf-2026", "QR001", today, until)
	require.NoError(t, err, "disable has expired at until")
	assert.Equal(t, 1, n)
}

func TestSlotStore_IncrementCancelledContext(t *testing.T) {
	store := NewSlotStore()
	seed(t, store, "ctf-2026", "QR001", 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlotStore_ConcurrentIncrementNeverExceedsCap(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		seqs     []int
		rejected int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejected++
				return
			}
			seqs = append(seqs, n)
		}()
	}
	wg.Wait()

	sort.Ints(seqs)
	want := make([]int, 20)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, seqs)
	assert.Equal(t, 30, rejected)

	slot, err := store.Get(ctx, "ctf-2026", "QR001")
	require.NoError(t, err)
	assert.Equal(t, 20, slot.DailyCount)
}

func TestSlotStore_UpsertClampsCounter(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)
	for i := 0; i < 8; i++ {
		_, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
		require.NoError(t, err)
	}

	update := &domain.QRSlot{EventID: "ctf-2026", SlotID: "QR001", PayeeHandle: "upi://pay?pa=new@bank", MaxDailyCount: 5}
	require.NoError(t, store.Upsert(ctx, update))

	assert.Equal(t, 5, update.DailyCount)
	assert.Equal(t, today, update.LastResetDate, "reset date is kept on update")

	got, err := store.Get(ctx, "ctf-2026", "QR001")
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=new@bank", got.PayeeHandle)
	assert.Equal(t, 5, got.DailyCount)
}

func TestSlotStore_ResetStaleIsIdempotent(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)
	seed(t, store, "ctf-2026", "QR002", 20)
	seed(t, store, "other", "QR001", 20)
	_, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
	require.NoError(t, err)

	tomorrow := today.AddDate(0, 0, 1)
	n, err := store.ResetStale(ctx, "ctf-2026", tomorrow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = store.ResetStale(ctx, "ctf-2026", tomorrow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	other, err := store.Get(ctx, "other", "QR001")
	require.NoError(t, err)
	assert.Equal(t, today, other.LastResetDate, "other events are untouched")

	slot, err := store.Get(ctx, "ctf-2026", "QR001")
	require.NoError(t, err)
	assert.Equal(t, 0, slot.DailyCount)
	assert.Equal(t, tomorrow, slot.LastResetDate)
}

func TestSlotStore_ResetAndResetAll(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)
	seed(t, store, "ctf-2026", "QR002", 20)
	_, _ = store.Increment(ctx, "ctf-2026", "QR001", today, now)
	_, _ = store.SetDisabled(ctx, "ctf-2026", "QR002", true, nil)

	found, err := store.Reset(ctx, "ctf-2026", "QR001", today)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Reset(ctx, "ctf-2026", "missing", today)
	require.NoError(t, err)
	assert.False(t, found)

	n, err := store.ResetAll(ctx, "ctf-2026", today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	slot, _ := store.Get(ctx, "ctf-2026", "QR002")
	assert.False(t, slot.IsTemporarilyDisabled)
}

func TestSlotStore_ReactivateExpired(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)
	seed(t, store, "ctf-2026", "QR002", 20)
	seed(t, store, "ctf-2026", "QR003", 20)

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	_, _ = store.SetDisabled(ctx, "ctf-2026", "QR001", true, &past)
	_, _ = store.SetDisabled(ctx, "ctf-2026", "QR002", true, &future)
	_, _ = store.SetDisabled(ctx, "ctf-2026", "QR003", true, nil)

	n, err := store.ReactivateExpired(ctx, "ctf-2026", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	slots, err := store.ListByEvent(ctx, "ctf-2026")
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.False(t, slots[0].IsTemporarilyDisabled)
	assert.True(t, slots[1].IsTemporarilyDisabled)
	assert.True(t, slots[2].IsTemporarilyDisabled)
}

func TestSlotStore_ReturnsCopies(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 20)

	got, err := store.Get(ctx, "ctf-2026", "QR001")
	require.NoError(t, err)
	got.DailyCount = 19

	again, _ := store.Get(ctx, "ctf-2026", "QR001")
	assert.Equal(t, 0, again.DailyCount)
}

func TestSlotStore_ListEvents(t *testing.T) {
	store := NewSlotStore()
	seed(t, store, "zeta", "QR001", 20)
	seed(t, store, "alpha", "QR001", 20)
	seed(t, store, "alpha", "QR002", 20)

	events, err := store.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, events)
}

func TestSlotStore_ResetStaleRewindsFutureResetDate(t *testing.T) {
	store := NewSlotStore()
	ctx := context.Background()
	seed(t, store, "ctf-2026", "QR001", 2)

	_, err := store.Increment(ctx, "ctf-2026", "QR001", today, now)
	require.NoError(t, err)

	// The event timezone moved west: the local date is now a day earlier.
	yesterday := today.AddDate(0, 0, -1)
	_, err = store.Increment(ctx, "ctf-2026", "QR001", yesterday, now)
	assert.ErrorIs(t, err, ports.ErrSlotUnavailable)

	n, err := store.ResetStale(ctx, "ctf-2026", yesterday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	seq, err := store.Increment(ctx, "ctf-2026", "QR001", yesterday, now)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	n, err = store.ResetStale(ctx, "ctf-2026", yesterday)
	require.NoError(t, err)
	assert.Zero(t, n)
}
