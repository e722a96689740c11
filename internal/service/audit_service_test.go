package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionDisableSlot {
				t.Errorf("expected DISABLE_SLOT, got %s", log.Action)
			}
			if ctx.Err() != nil {
				t.Errorf("audit write must outlive the request context")
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("audit write must be bounded by a deadline")
			}
			close(done)
			return nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      "admin-1",
		EventID:      "ctf-2026",
		Action:       domain.AuditActionDisableSlot,
		ResourceType: "slot",
		ResourceID:   "QR001",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionResetAll,
		ResourceType: "event",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}

func TestAuditService_Log_AllocationAtDebugLevel(t *testing.T) {
	var buf syncBuffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	svc := NewAuditService(nil, logger)

	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      "user-1",
		EventID:      "ctf-2026",
		Action:       domain.AuditActionAllocate,
		ResourceType: "allocation",
	})
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      "admin-1",
		EventID:      "ctf-2026",
		Action:       domain.AuditActionResetSlot,
		ResourceType: "slot",
		ResourceID:   "QR001",
	})

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), `"action":"RESET_SLOT"`)
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, `"slot_id":"QR001"`)
	assert.NotContains(t, out, `"action":"ALLOCATE"`, "allocations are logged at debug level")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
