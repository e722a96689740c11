package handler

import (
	"errors"
	"io"
	"time"

	"qr-slot-allocator/internal/adapter/http/dto"
	"qr-slot-allocator/internal/adapter/http/middleware"
	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
	"qr-slot-allocator/pkg/apperror"
	"qr-slot-allocator/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets a client retry an allocation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// AllocationHandler handles attendee allocation requests.
type AllocationHandler struct {
	allocSvc ports.AllocatorService
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocSvc ports.AllocatorService) *AllocationHandler {
	return &AllocationHandler{allocSvc: allocSvc}
}

// Allocate handles POST /api/v1/events/:event_id/allocations.
func (h *AllocationHandler) Allocate(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	var req dto.AllocateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}
	dto.SanitizeStruct(&req)

	key := req.IdempotencyKey
	if hk := c.GetHeader(HeaderIdempotencyKey); hk != "" {
		if len(hk) > 128 || !dto.IsSafeID(hk) {
			response.Error(c, apperror.Validation("invalid Idempotency-Key header"))
			return
		}
		key = hk
	}

	rec, err := h.allocSvc.Allocate(c.Request.Context(), ports.AllocateRequest{
		EventID:        eventID,
		UserID:         userID,
		IdempotencyKey: key,
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAllocationResponse(rec))
}

func toAllocationResponse(rec *domain.AllocationRecord) dto.AllocationResponse {
	return dto.AllocationResponse{
		AllocationID:   rec.ID.String(),
		EventID:        rec.EventID,
		SlotID:         rec.SlotID,
		PayeeHandle:    rec.PayeeHandle,
		SequenceNumber: rec.SequenceNumber,
		AllocatedAt:    rec.AllocatedAt.UTC().Format(time.RFC3339),
	}
}

// pathID reads a path parameter and rejects unsafe identifiers.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !dto.IsSafeID(id) {
		response.Error(c, apperror.Validation("invalid "+name))
		return "", false
	}
	return id, true
}
