package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	FILLED_BY_USER  = "USER"
	FILLED_BY_AGENT = "AGENT"
)

// AssessmentResponse holds the answers belonging to one link. While the link
// is not submitted the document acts as the server-side draft (SubmittedAt is
// zero); submission finalizes the same document and stamps the provenance
// fields.
type AssessmentResponse struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LinkID           primitive.ObjectID `bson:"linkID" json:"assessment_link_id"`
	Answers          []AnswerItem       `bson:"answers" json:"answers"`
	FilledBy         string             `bson:"filledBy" json:"filled_by"`
	SubmittedBy      string             `bson:"submittedBy,omitempty" json:"submitted_by,omitempty"`
	ConsentConfirmed bool               `bson:"consentConfirmed" json:"consent_confirmed"`
	SubmittedAt      int64              `bson:"submittedAt,omitempty" json:"submitted_at,omitempty"`
	UpdatedAt        int64              `bson:"updatedAt" json:"updated_at"`
	IPAddress        string             `bson:"ipAddress,omitempty" json:"ip_address,omitempty"`
	UserAgent        string             `bson:"userAgent,omitempty" json:"user_agent,omitempty"`
}
