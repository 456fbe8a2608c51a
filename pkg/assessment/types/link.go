package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	LINK_STATUS_YET_TO_START = "YET_TO_START"
	LINK_STATUS_IN_PROGRESS  = "IN_PROGRESS"
	LINK_STATUS_SUBMITTED    = "SUBMITTED"
)

// AssessmentLink binds a customer, an assessment, an insurance provider and an
// optional agent to one unique access token. Status only ever moves forward:
// YET_TO_START -> IN_PROGRESS -> SUBMITTED, where SUBMITTED is terminal.
type AssessmentLink struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AssessmentID        primitive.ObjectID `bson:"assessmentID" json:"assessment_id"`
	CustomerID          primitive.ObjectID `bson:"customerID" json:"customer_id"`
	InsuranceProviderID primitive.ObjectID `bson:"insuranceProviderID" json:"insurance_provider_id"`
	AgentID             primitive.ObjectID `bson:"agentID,omitempty" json:"agent_id,omitempty"`
	Token               string             `bson:"token" json:"token"`
	Status              string             `bson:"status" json:"status"`
	ProgressPercent     int                `bson:"progressPercent" json:"progress_percent"`
	SubmittedAt         int64              `bson:"submittedAt,omitempty" json:"submitted_at,omitempty"`
	CreatedAt           int64              `bson:"createdAt" json:"created_at"`
}
