package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers"
	mw "github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
	userTypes "github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/types"
)

func (h *HttpEndpoints) AddAuditLogAPI(rg *gin.RouterGroup) {
	auditGroup := rg.Group("/audit-logs")
	auditGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	auditGroup.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
	{
		auditGroup.GET("", h.getAuditLogs)
	}
}

func (h *HttpEndpoints) getAuditLogs(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, paginationInfo, err := h.auditDBConn.GetAuditLogs(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching audit logs", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": entries, "pagination": paginationInfo})
}
