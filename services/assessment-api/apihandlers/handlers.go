package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	allowedInstanceIDs []string
	defaultInstanceID  string
}

func NewHTTPHandler(
	allowedInstanceIDs []string,
	defaultInstanceID string,
) *HttpEndpoints {
	return &HttpEndpoints{
		allowedInstanceIDs: allowedInstanceIDs,
		defaultInstanceID:  defaultInstanceID,
	}
}

func (h *HttpEndpoints) getInstanceID(c *gin.Context) (string, bool) {
	instanceID := c.DefaultQuery("instance", h.defaultInstanceID)
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return instanceID, true
		}
	}
	return "", false
}
