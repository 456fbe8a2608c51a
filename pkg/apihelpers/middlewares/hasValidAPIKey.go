package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderAPIKey = "Api-Key"

// HasValidAPIKey guards service-to-service endpoints. The key rides in the
// Api-Key header and must match one of the configured keys exactly.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(HeaderAPIKey)
		if apiKey == "" {
			slog.Warn("request without API key", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a valid API key is required"})
			return
		}

		for _, vk := range validKeys {
			if apiKey == vk {
				c.Next()
				return
			}
		}

		slog.Warn("request with invalid API key", slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a valid API key is required"})
	}
}
