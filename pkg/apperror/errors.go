package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, ErrNoCapacityAvailable()) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Codes shared with callers that need to branch on the error kind.
const (
	CodeSlotUnavailable          = "SLOT_001"
	CodeNoCapacityAvailable      = "ALLOC_001"
	CodeAllocationContention     = "ALLOC_002"
	CodeInvalidSlotConfiguration = "CFG_001"
)

const retryLaterMessage = "No payment slot is available right now, please try again shortly"

// ---- Slot Allocation (SLOT / ALLOC) ----

func ErrSlotUnavailable() *AppError {
	return New(CodeSlotUnavailable, "Payment slot is full or disabled", http.StatusConflict)
}

func ErrNoCapacityAvailable() *AppError {
	return New(CodeNoCapacityAvailable, retryLaterMessage, http.StatusServiceUnavailable)
}

func ErrAllocationContention(err error) *AppError {
	return Wrap(CodeAllocationContention, retryLaterMessage, http.StatusServiceUnavailable, err)
}

// ---- Configuration (CFG) ----

func ErrInvalidSlotConfiguration(reason string) *AppError {
	return New(CodeInvalidSlotConfiguration, "Invalid slot configuration: "+reason, http.StatusInternalServerError)
}

// ---- Request (REQ) ----

func ErrNotFound(entity string) *AppError {
	return New("REQ_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Administrator role required", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrRegistryUnavailable reports that slot storage could not be reached.
func ErrRegistryUnavailable(err error) *AppError {
	return Wrap("SYS_002", "Slot registry unavailable", http.StatusServiceUnavailable, err)
}

// Validation returns a REQ_001 validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}
