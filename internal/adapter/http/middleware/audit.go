package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"qr-slot-allocator/internal/core/domain"
	"qr-slot-allocator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records successful admin
// mutations. Routes are matched on their registered pattern.
// Allocations are audited by the allocator itself.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		resourceID := c.Param("slot_id")
		if resourceID == "" {
			resourceID = c.Param("event_id")
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      c.GetString(CtxUserID),
			EventID:      c.Param("event_id"),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

const adminEventPrefix = "/api/v1/admin/events/:event_id"

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == adminEventPrefix+"/slots/:slot_id" && method == http.MethodPut:
		return domain.AuditActionUpsertSlot, "slot"
	case route == adminEventPrefix+"/slots/:slot_id/disable" && method == http.MethodPost:
		return domain.AuditActionDisableSlot, "slot"
	case route == adminEventPrefix+"/slots/:slot_id/enable" && method == http.MethodPost:
		return domain.AuditActionEnableSlot, "slot"
	case route == adminEventPrefix+"/slots/:slot_id/reset" && method == http.MethodPost:
		return domain.AuditActionResetSlot, "slot"
	case route == adminEventPrefix+"/reset" && method == http.MethodPost:
		return domain.AuditActionResetAll, "event"
	case route == "/api/v1/admin/maintenance" && method == http.MethodPost:
		return domain.AuditActionMaintenance, "pool"
	}
	return "", ""
}
