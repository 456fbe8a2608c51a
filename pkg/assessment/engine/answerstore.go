package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

// AnswerStore holds the current answer set of one filling session. Answers are
// validated against the question's declared type when they enter the store,
// and presence is tracked explicitly, so an intentionally blank text answer is
// distinguishable from a question that was never touched.
type AnswerStore struct {
	mu        sync.Mutex
	questions map[string]types.FormQuestion
	order     []string
	values    map[string]string
}

func NewAnswerStore(form *types.FormDefinition) *AnswerStore {
	store := &AnswerStore{
		questions: map[string]types.FormQuestion{},
		order:     []string{},
		values:    map[string]string{},
	}
	for _, compartment := range form.Compartments {
		for _, q := range compartment.Questions {
			store.questions[q.ID] = q
			store.order = append(store.order, q.ID)
		}
	}
	return store
}

// SetAnswer validates the value against the question type and overwrites any
// previous answer. Unknown question ids and type mismatches are rejected
// without touching the store.
func (s *AnswerStore) SetAnswer(questionID string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return fmt.Errorf("%w: unknown question id %s", ErrValidationFailed, questionID)
	}
	if err := validateAnswerValue(q, value); err != nil {
		return err
	}
	s.values[questionID] = value
	return nil
}

func (s *AnswerStore) ClearAnswer(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, questionID)
}

// Answer returns the stored value and whether the question has been answered
// at all.
func (s *AnswerStore) Answer(questionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[questionID]
	return v, ok
}

// AnsweredCount counts the answers that would survive the submission filter.
func (s *AnswerStore) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, v := range s.values {
		if v != "" {
			count++
		}
	}
	return count
}

func (s *AnswerStore) TotalQuestions() int {
	return len(s.order)
}

// SeedFromDraft loads previously persisted answers into the store. Entries
// that no longer match the resolved form (removed questions, stale values) are
// skipped instead of failing the whole load.
func (s *AnswerStore) SeedFromDraft(draft []types.AnswerItem) (loaded int) {
	for _, item := range draft {
		if err := s.SetAnswer(item.QuestionID, item.Answer); err == nil {
			loaded++
		}
	}
	return loaded
}

// SubmissionPayload projects the store into the wire format: ordered by the
// form's question order, dropping empty values. The empty-value filter keeps
// compatibility with clients that use empty strings as "unanswered".
func (s *AnswerStore) SubmissionPayload() []types.AnswerItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := []types.AnswerItem{}
	for _, questionID := range s.order {
		v, ok := s.values[questionID]
		if !ok || v == "" {
			continue
		}
		payload = append(payload, types.AnswerItem{
			QuestionID: questionID,
			Answer:     v,
		})
	}
	return payload
}

func validateAnswerValue(q types.FormQuestion, value string) error {
	if value == "" {
		// clearing through an empty value is always allowed
		return nil
	}

	switch q.QuestionType {
	case types.QUESTION_TYPE_YES_NO:
		normalized := strings.ToLower(value)
		if normalized != "yes" && normalized != "no" {
			return fmt.Errorf("%w: question %s expects yes/no, got %q", ErrValidationFailed, q.ID, value)
		}
	case types.QUESTION_TYPE_MCQ:
		for _, option := range q.Options {
			if option == value {
				return nil
			}
		}
		return fmt.Errorf("%w: question %s got a value outside its options", ErrValidationFailed, q.ID)
	case types.QUESTION_TYPE_NUMBER:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: question %s expects a number, got %q", ErrValidationFailed, q.ID, value)
		}
	case types.QUESTION_TYPE_TEXT, types.QUESTION_TYPE_REFLEXIVE, types.QUESTION_TYPE_PARAGRAPH:
		// free text
	case types.QUESTION_TYPE_CHECKBOX:
		// declared in the vocabulary but multi-select semantics are not defined
		return fmt.Errorf("%w: question type %s is not supported by the form engine", ErrValidationFailed, q.QuestionType)
	default:
		return fmt.Errorf("%w: unknown question type %s", ErrValidationFailed, q.QuestionType)
	}
	return nil
}

// ValidateAnswers checks a submission payload against the resolved form. Used
// server-side on draft save and submit so malformed payloads never reach the
// database.
func ValidateAnswers(form *types.FormDefinition, answers []types.AnswerItem) error {
	questions := map[string]types.FormQuestion{}
	for _, compartment := range form.Compartments {
		for _, q := range compartment.Questions {
			questions[q.ID] = q
		}
	}

	for _, item := range answers {
		q, ok := questions[item.QuestionID]
		if !ok {
			return fmt.Errorf("%w: unknown question id %s", ErrValidationFailed, item.QuestionID)
		}
		if err := validateAnswerValue(q, item.Answer); err != nil {
			return err
		}
	}
	return nil
}

// CountAnswered applies the same non-empty filter as the submission payload to
// a wire answer list.
func CountAnswered(answers []types.AnswerItem) int {
	count := 0
	for _, item := range answers {
		if item.Answer != "" {
			count++
		}
	}
	return count
}
