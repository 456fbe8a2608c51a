package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/pwhash"
	userTypes "github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

func main() {
	instanceID := flag.String("instance", "", "instance the user is created in")
	email := flag.String("email", "", "email address of the new user")
	name := flag.String("name", "", "display name of the new user")
	role := flag.String("role", userTypes.ROLE_ADMIN, "role of the new user (ADMIN or AGENT)")
	agentID := flag.String("agent-id", "", "agent this account belongs to (required for AGENT role)")
	flag.Parse()

	if *instanceID == "" {
		slog.Error("instance is required")
		os.Exit(1)
	}
	if !utils.ContainsString(conf.InstanceIDs, *instanceID) {
		slog.Error("instance not configured", slog.String("instanceID", *instanceID))
		os.Exit(1)
	}

	cleanEmail := utils.SanitizeEmail(*email)
	if !utils.CheckEmailFormat(cleanEmail) {
		slog.Error("a valid email is required")
		os.Exit(1)
	}

	if *role != userTypes.ROLE_ADMIN && *role != userTypes.ROLE_AGENT {
		slog.Error("unknown role", slog.String("role", *role))
		os.Exit(1)
	}

	password := os.Getenv(ENV_NEW_USER_PASSWORD)
	if len(password) < 12 {
		slog.Error("set a password with at least 12 characters through " + ENV_NEW_USER_PASSWORD)
		os.Exit(1)
	}

	hash, err := pwhash.HashPassword(password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user := userTypes.PlatformUser{
		Email:              cleanEmail,
		Name:               *name,
		Role:               *role,
		Password:           hash,
		MustChangePassword: true,
		CreatedAt:          time.Now().Unix(),
	}

	if *role == userTypes.ROLE_AGENT {
		if *agentID == "" {
			slog.Error("agent-id is required for AGENT role")
			os.Exit(1)
		}
		aID, err := primitive.ObjectIDFromHex(*agentID)
		if err != nil {
			slog.Error("invalid agent-id", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if _, err := userDirectoryDBService.GetAgentByID(*instanceID, *agentID); err != nil {
			slog.Error("agent not found", slog.String("agentID", *agentID))
			os.Exit(1)
		}
		user.AgentID = aID
	}

	created, err := userDirectoryDBService.CreatePlatformUser(*instanceID, user)
	if err != nil {
		slog.Error("failed to create platform user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("platform user created", slog.String("instanceID", *instanceID), slog.String("userID", created.ID.Hex()), slog.String("role", created.Role))
}
