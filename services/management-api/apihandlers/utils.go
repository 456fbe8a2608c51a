package apihandlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
)

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}

// addAuditLog writes the audit trail entry for a management action. Failures
// are logged but do not fail the request.
func (h *HttpEndpoints) addAuditLog(c *gin.Context, action string, entityType string, entityID string, details string) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	_, err := h.auditDBConn.AddAuditLog(token.InstanceID, types.AuditLog{
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		PerformedBy:   token.ID,
		PerformerRole: token.Role,
		Details:       details,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		CreatedAt:     time.Now().Unix(),
	})
	if err != nil {
		slog.Error("failed to write audit log", slog.String("instanceID", token.InstanceID), slog.String("action", action), slog.String("error", err.Error()))
	}
}
