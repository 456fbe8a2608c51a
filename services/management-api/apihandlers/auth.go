package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	mw "github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/pwhash"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", mw.RequirePayload(), h.login)
	auth.GET("/renew-token/:sessionID", mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs), h.renewToken)
	auth.POST("/change-password",
		mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs),
		mw.RequirePayload(),
		h.changePassword)
	auth.POST("/logout", mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs), h.logout)
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	InstanceID string `json:"instance_id"`
}

func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Warn("login: instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusForbidden, gin.H{"error": "instance not allowed"})
		return
	}

	email := utils.SanitizeEmail(req.Email)
	if !utils.CheckEmailFormat(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	user, err := h.userDirectoryDBConn.GetPlatformUserByEmail(req.InstanceID, email)
	if err != nil {
		slog.Warn("login attempt for unknown user", slog.String("instanceID", req.InstanceID), slog.String("email", email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	err = pwhash.ComparePasswordWithHash(user.Password, req.Password)
	if err != nil {
		slog.Warn("login attempt with wrong password", slog.String("instanceID", req.InstanceID), slog.String("userID", user.ID.Hex()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	session, err := h.userDirectoryDBConn.CreateSession(req.InstanceID, user.ID, time.Now().Unix())
	if err != nil {
		slog.Error("login: failed to create session", slog.String("instanceID", req.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	token, err := jwthandling.GenerateNewPlatformUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		req.InstanceID,
		user.Role,
		session.ID.Hex(),
		nil,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("login: failed to generate token", slog.String("instanceID", req.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	if err := h.userDirectoryDBConn.UpdatePlatformUser(req.InstanceID, user.ID.Hex(), bson.M{"lastLoginAt": time.Now().Unix()}); err != nil {
		slog.Error("login: failed to update last login", slog.String("instanceID", req.InstanceID), slog.String("error", err.Error()))
	}

	slog.Info("user logged in", slog.String("instanceID", req.InstanceID), slog.String("userID", user.ID.Hex()))

	c.JSON(http.StatusOK, gin.H{
		"access_token":         token,
		"session_id":           session.ID.Hex(),
		"expires_at":           time.Now().Add(h.tokenExpiresIn).Unix(),
		"role":                 user.Role,
		"must_change_password": user.MustChangePassword,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *HttpEndpoints) renewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	sessionID := c.Param("sessionID")
	session, err := h.userDirectoryDBConn.GetSessionByID(token.InstanceID, sessionID)
	if err != nil {
		slog.Warn("renewToken: session not found", slog.String("instanceID", token.InstanceID), slog.String("sessionID", sessionID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	if session.UserID.Hex() != token.ID {
		slog.Warn("renewToken: session does not belong to user", slog.String("instanceID", token.InstanceID), slog.String("userID", token.ID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	newToken, err := jwthandling.GenerateNewPlatformUserToken(
		h.tokenExpiresIn,
		token.ID,
		token.InstanceID,
		token.Role,
		session.ID.Hex(),
		nil,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("renewToken: failed to generate token", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": newToken,
		"expires_at":   time.Now().Add(h.tokenExpiresIn).Unix(),
	})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *HttpEndpoints) changePassword(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.NewPassword) < 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new password too weak"})
		return
	}

	user, err := h.userDirectoryDBConn.GetPlatformUserByID(token.InstanceID, token.ID)
	if err != nil {
		slog.Error("changePassword: user not found", slog.String("instanceID", token.InstanceID), slog.String("userID", token.ID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}

	err = pwhash.ComparePasswordWithHash(user.Password, req.OldPassword)
	if err != nil {
		if err != nil && !errors.Is(err, pwhash.ErrWrongPassword) {
			slog.Error("changePassword: error comparing password", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	newHash, err := pwhash.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("changePassword: failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	err = h.userDirectoryDBConn.UpdatePlatformUser(token.InstanceID, token.ID, bson.M{
		"password":           newHash,
		"mustChangePassword": false,
	})
	if err != nil {
		slog.Error("changePassword: failed to update user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	slog.Info("password changed", slog.String("instanceID", token.InstanceID), slog.String("userID", token.ID))
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	if token.SessionID != "" {
		if err := h.userDirectoryDBConn.DeleteSessionByID(token.InstanceID, token.SessionID); err != nil {
			slog.Debug("logout: could not delete session", slog.String("instanceID", token.InstanceID), slog.String("sessionID", token.SessionID))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
