package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ASSESSMENT_STATUS_DRAFT  = "DRAFT"
	ASSESSMENT_STATUS_ACTIVE = "ACTIVE"
	ASSESSMENT_STATUS_CLOSED = "CLOSED"
)

type Assessment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Stats       AssessmentStats    `bson:"stats" json:"stats"`
	CreatedAt   int64              `bson:"createdAt" json:"created_at"`
}

// AssessmentStats is refreshed periodically by the link-reminder job.
type AssessmentStats struct {
	LinkCount      int64 `bson:"linkCount" json:"link_count"`
	YetToStart     int64 `bson:"yetToStart" json:"yet_to_start"`
	InProgress     int64 `bson:"inProgress" json:"in_progress"`
	SubmittedCount int64 `bson:"submittedCount" json:"submitted"`
}
