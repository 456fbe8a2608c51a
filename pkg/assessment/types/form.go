package types

// FormDefinition is the resolved, read-only view of an assessment as seen
// through one link's token. Questions are already filtered to the link's
// insurance provider.
type FormDefinition struct {
	AssessmentName        string            `json:"assessment_name"`
	CustomerName          string            `json:"customer_name"`
	InsuranceProviderName string            `json:"insurance_provider_name"`
	TotalQuestions        int               `json:"total_questions"`
	IsSubmitted           bool              `json:"is_submitted"`
	ProgressPercent       int               `json:"progress_percent"`
	Status                string            `json:"status"`
	Compartments          []FormCompartment `json:"compartments"`
	DraftAnswers          []AnswerItem      `json:"draft_answers"`
}

type FormCompartment struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Order     int            `json:"order"`
	Questions []FormQuestion `json:"questions"`
}

type FormQuestion struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
	RiskWeight   int      `json:"risk_weight"`
}

// AnswerItem is the wire form of one answer, both for draft snapshots and for
// submission payloads.
type AnswerItem struct {
	QuestionID string `bson:"questionID" json:"question_id"`
	Answer     string `bson:"answer" json:"answer"`
}
