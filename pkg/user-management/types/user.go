package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_AGENT = "AGENT"
)

// PlatformUser is an account that can sign in to the management API: an
// administrator or an agent. Customers never sign in here, they access their
// assessments through link tokens.
type PlatformUser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email              string             `bson:"email" json:"email"`
	Name               string             `bson:"name" json:"name"`
	Role               string             `bson:"role" json:"role"`
	Password           string             `bson:"password" json:"-"`
	MustChangePassword bool               `bson:"mustChangePassword" json:"must_change_password"`
	AgentID            primitive.ObjectID `bson:"agentID,omitempty" json:"agent_id,omitempty"`
	CreatedAt          int64              `bson:"createdAt" json:"created_at"`
	LastLoginAt        int64              `bson:"lastLoginAt,omitempty" json:"last_login_at,omitempty"`
}

type Session struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"userID" json:"userId"`
	RenewToken string             `bson:"renewToken" json:"renewToken"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
}
