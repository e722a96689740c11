package handler

import (
	"errors"
	"io"
	"time"

	"qr-slot-allocator/internal/adapter/http/dto"
	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"
	"qr-slot-allocator/pkg/apperror"
	"qr-slot-allocator/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles slot management, insights, and maintenance.
type AdminHandler struct {
	registry  ports.SlotRegistry
	insights  ports.InsightsService
	scheduler ports.SchedulerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(registry ports.SlotRegistry, insights ports.InsightsService, scheduler ports.SchedulerService) *AdminHandler {
	return &AdminHandler{registry: registry, insights: insights, scheduler: scheduler}
}

// ListSlots handles GET /api/v1/admin/events/:event_id/slots.
func (h *AdminHandler) ListSlots(c *gin.Context) {
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	slots, err := h.registry.GetSlots(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		items = append(items, toSlotResponse(&slots[i]))
	}
	response.OK(c, dto.SlotListResponse{EventID: eventID, Slots: items, Total: len(items)})
}

// RegisterSlot handles PUT /api/v1/admin/events/:event_id/slots/:slot_id.
func (h *AdminHandler) RegisterSlot(c *gin.Context) {
	eventID, slotID, ok := slotPath(c)
	if !ok {
		return
	}

	var req dto.RegisterSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	slot, err := h.registry.RegisterSlot(c.Request.Context(), ports.RegisterSlotRequest{
		EventID:       eventID,
		SlotID:        slotID,
		PayeeHandle:   req.PayeeHandle,
		MaxDailyCount: req.MaxDailyCount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSlotResponse(slot))
}

// DisableSlot handles POST .../slots/:slot_id/disable. The body is optional.
func (h *AdminHandler) DisableSlot(c *gin.Context) {
	eventID, slotID, ok := slotPath(c)
	if !ok {
		return
	}

	var req dto.DisableSlotRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}
	dto.SanitizeStruct(&req)

	var until *time.Time
	if req.Until != nil {
		t, err := time.Parse(time.RFC3339, *req.Until)
		if err != nil {
			response.Error(c, apperror.Validation("until must be an RFC 3339 timestamp"))
			return
		}
		until = &t
	}

	if err := h.registry.DisableSlot(c.Request.Context(), eventID, slotID, until); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ActionResponse{EventID: eventID, SlotID: slotID, Status: "disabled"})
}

// EnableSlot handles POST .../slots/:slot_id/enable.
func (h *AdminHandler) EnableSlot(c *gin.Context) {
	eventID, slotID, ok := slotPath(c)
	if !ok {
		return
	}

	if err := h.registry.EnableSlot(c.Request.Context(), eventID, slotID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ActionResponse{EventID: eventID, SlotID: slotID, Status: "enabled"})
}

// ResetSlot handles POST .../slots/:slot_id/reset.
func (h *AdminHandler) ResetSlot(c *gin.Context) {
	eventID, slotID, ok := slotPath(c)
	if !ok {
		return
	}

	if err := h.registry.ResetSlot(c.Request.Context(), eventID, slotID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ActionResponse{EventID: eventID, SlotID: slotID, Status: "reset"})
}

// ResetAll handles POST /api/v1/admin/events/:event_id/reset.
func (h *AdminHandler) ResetAll(c *gin.Context) {
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	n, err := h.registry.ResetAll(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ResetAllResponse{EventID: eventID, SlotsReset: n})
}

// GetInsights handles GET /api/v1/admin/events/:event_id/insights.
func (h *AdminHandler) GetInsights(c *gin.Context) {
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	in, err := h.insights.GetInsights(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, in)
}

// RunMaintenance handles POST /api/v1/admin/maintenance.
func (h *AdminHandler) RunMaintenance(c *gin.Context) {
	report, err := h.scheduler.RunMaintenance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

func slotPath(c *gin.Context) (eventID, slotID string, ok bool) {
	if eventID, ok = pathID(c, "event_id"); !ok {
		return "", "", false
	}
	if slotID, ok = pathID(c, "slot_id"); !ok {
		return "", "", false
	}
	return eventID, slotID, true
}

func toSlotResponse(s *domain.QRSlot) dto.SlotResponse {
	resp := dto.SlotResponse{
		EventID:               s.EventID,
		SlotID:                s.SlotID,
		PayeeHandle:           s.PayeeHandle,
		DailyCount:            s.DailyCount,
		MaxDailyCount:         s.MaxDailyCount,
		Remaining:             s.Remaining(),
		IsTemporarilyDisabled: s.IsTemporarilyDisabled,
		LastResetDate:         s.LastResetDate.Format("2006-01-02"),
	}
	if s.TemporarilyDisabledUntil != nil {
		until := s.TemporarilyDisabledUntil.UTC().Format(time.RFC3339)
		resp.TemporarilyDisabledUntil = &until
	}
	return resp
}
