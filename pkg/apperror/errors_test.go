package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("SLOT_001", "Payment slot is full", http.StatusConflict),
			expected: "[SLOT_001] Payment slot is full",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("REQ_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("allocate: %w", ErrNoCapacityAvailable())

	assert.True(t, errors.Is(err, ErrNoCapacityAvailable()))
	assert.False(t, errors.Is(err, ErrAllocationContention(nil)))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("increment: %w", ErrSlotUnavailable())

	assert.True(t, HasCode(err, CodeSlotUnavailable))
	assert.False(t, HasCode(err, CodeNoCapacityAvailable))
	assert.False(t, HasCode(errors.New("plain"), CodeSlotUnavailable))
	assert.False(t, HasCode(nil, CodeSlotUnavailable))
}

func TestAllocationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"SlotUnavailable", ErrSlotUnavailable(), "SLOT_001", 409},
		{"NoCapacityAvailable", ErrNoCapacityAvailable(), "ALLOC_001", 503},
		{"AllocationContention", ErrAllocationContention(nil), "ALLOC_002", 503},
		{"InvalidSlotConfiguration", ErrInvalidSlotConfiguration("max_daily_count must be positive"), "CFG_001", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestRetryableErrorsShareUserMessage(t *testing.T) {
	assert.Equal(t, ErrNoCapacityAvailable().Message, ErrAllocationContention(errors.New("timeout")).Message)
	assert.NotContains(t, ErrAllocationContention(errors.New("pq: deadline")).Message, "deadline")
}

func TestRequestAndAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"NotFound", ErrNotFound("slot"), "REQ_002", 404},
		{"Validation", Validation("bad"), "REQ_001", 400},
		{"InvalidToken", ErrInvalidToken(), "AUTH_001", 401},
		{"Forbidden", ErrForbidden(), "AUTH_002", 403},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "slot not found", ErrNotFound("slot").Message)
}

func TestSystemErrors(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")

	internal := InternalError(inner)
	assert.Equal(t, "SYS_001", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.True(t, errors.Is(internal, inner))

	unavailable := ErrRegistryUnavailable(inner)
	assert.Equal(t, "SYS_002", unavailable.Code)
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.HTTPStatus)
	assert.True(t, errors.Is(unavailable, inner))
}
