package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	QUESTION_TYPE_YES_NO    = "YES_NO"
	QUESTION_TYPE_MCQ       = "MCQ"
	QUESTION_TYPE_TEXT      = "TEXT"
	QUESTION_TYPE_NUMBER    = "NUMBER"
	QUESTION_TYPE_REFLEXIVE = "REFLEXIVE"
	// Declared in the shared vocabulary but not produced by the form resolver.
	QUESTION_TYPE_PARAGRAPH = "PARAGRAPH"
	QUESTION_TYPE_CHECKBOX  = "CHECKBOX"
)

type Question struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionText        string             `bson:"questionText" json:"question_text"`
	QuestionType        string             `bson:"questionType" json:"question_type"`
	Options             []string           `bson:"options,omitempty" json:"options,omitempty"`
	CompartmentID       primitive.ObjectID `bson:"compartmentID" json:"compartment_id"`
	RiskWeight          int                `bson:"riskWeight" json:"risk_weight"`
	Order               int                `bson:"order" json:"order"`
	ApplicableProviders []string           `bson:"applicableProviders" json:"applicable_providers"`
	IsActive            bool               `bson:"isActive" json:"is_active"`
	CreatedAt           int64              `bson:"createdAt" json:"created_at"`
}

type Compartment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   int64              `bson:"createdAt" json:"created_at"`
}
