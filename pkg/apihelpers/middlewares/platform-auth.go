package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
)

const (
	HeaderAuthorization = "Authorization"
)

// GetAndValidatePlatformUserJWT extracts the JWT from the request, validates
// it and stores the parsed claims in the context.
func GetAndValidatePlatformUserJWT(tokenSignKey string, allowedInstanceIDs []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		// Parse and validate token
		parsedToken, ok, err := jwthandling.ValidatePlatformUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			c.Abort()
			return
		}

		// Check if the instanceID is allowed
		if !isInstanceAllowed(parsedToken.InstanceID, allowedInstanceIDs) {
			slog.Warn("instanceID not allowed", slog.String("instanceID", parsedToken.InstanceID), slog.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "instanceID not allowed"})
			c.Abort()
			return
		}
		c.Set("validatedToken", parsedToken)
	}
}

// RequireRole blocks requests whose validated token does not carry one of the
// given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("RequireRole: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.PlatformUserClaims)

		for _, role := range roles {
			if parsedToken.Role == role {
				return
			}
		}

		slog.Warn("RequireRole Middleware: user with insufficient role tried to access endpoint", slog.String("instanceID", parsedToken.InstanceID), slog.String("userID", parsedToken.ID), slog.String("role", parsedToken.Role))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
	}
}

func extractToken(c *gin.Context) (string, error) {
	req := c.Request

	var token string
	tokens, ok := req.Header[HeaderAuthorization]
	if ok && len(tokens) > 0 {
		token = tokens[0]
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			return token, errors.New("No token found in Authorization header")
		}
	} else {
		return token, errors.New("No Authorization header found")
	}
	return token, nil
}

func isInstanceAllowed(instanceID string, allowedInstanceIDs []string) bool {
	for _, id := range allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}
