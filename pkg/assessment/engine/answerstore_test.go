package engine

import (
	"errors"
	"testing"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func testForm() *types.FormDefinition {
	return &types.FormDefinition{
		AssessmentName: "Cyber Baseline 2026",
		TotalQuestions: 5,
		Compartments: []types.FormCompartment{
			{
				ID:    "c1",
				Name:  "Network Security",
				Order: 1,
				Questions: []types.FormQuestion{
					{ID: "q1", QuestionText: "Do you operate a firewall?", QuestionType: types.QUESTION_TYPE_YES_NO},
					{ID: "q2", QuestionText: "Number of public endpoints", QuestionType: types.QUESTION_TYPE_NUMBER},
				},
			},
			{
				ID:    "c2",
				Name:  "Incident Response",
				Order: 2,
				Questions: []types.FormQuestion{
					{ID: "q3", QuestionText: "Who handles incidents?", QuestionType: types.QUESTION_TYPE_TEXT},
					{ID: "q4", QuestionText: "Backup frequency", QuestionType: types.QUESTION_TYPE_MCQ, Options: []string{"daily", "weekly", "monthly"}},
					{ID: "q5", QuestionText: "Describe your recovery plan", QuestionType: types.QUESTION_TYPE_PARAGRAPH},
				},
			},
		},
	}
}

func TestAnswerStoreSetAnswer(t *testing.T) {
	testCases := []struct {
		name       string
		questionID string
		value      string
		wantErr    bool
	}{
		{"yes no accepts yes", "q1", "yes", false},
		{"yes no accepts uppercase", "q1", "No", false},
		{"yes no rejects free text", "q1", "maybe", true},
		{"number accepts integer", "q2", "42", false},
		{"number accepts decimal", "q2", "3.5", false},
		{"number rejects text", "q2", "many", true},
		{"text accepts anything", "q3", "the security team", false},
		{"mcq accepts listed option", "q4", "weekly", false},
		{"mcq rejects unlisted option", "q4", "hourly", true},
		{"unknown question id", "q99", "yes", true},
		{"empty value always passes", "q1", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewAnswerStore(testForm())
			err := store.SetAnswer(tc.questionID, tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrValidationFailed) {
					t.Errorf("expected ErrValidationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAnswerStoreOverwriteAndClear(t *testing.T) {
	store := NewAnswerStore(testForm())

	if err := store.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetAnswer("q1", "no"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := store.Answer("q1"); !ok || v != "no" {
		t.Errorf("expected overwritten answer 'no', got %q (present: %v)", v, ok)
	}
	if store.AnsweredCount() != 1 {
		t.Errorf("expected 1 answered question, got %d", store.AnsweredCount())
	}

	store.ClearAnswer("q1")
	if _, ok := store.Answer("q1"); ok {
		t.Error("expected answer to be cleared")
	}
	if store.AnsweredCount() != 0 {
		t.Errorf("expected 0 answered questions, got %d", store.AnsweredCount())
	}
}

func TestAnswerStoreEmptyValueNotCounted(t *testing.T) {
	store := NewAnswerStore(testForm())
	if err := store.SetAnswer("q3", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// present in the store but filtered out of counts and payloads
	if _, ok := store.Answer("q3"); !ok {
		t.Error("expected empty answer to be present")
	}
	if store.AnsweredCount() != 0 {
		t.Errorf("expected 0 answered questions, got %d", store.AnsweredCount())
	}
	if payload := store.SubmissionPayload(); len(payload) != 0 {
		t.Errorf("expected empty payload, got %v", payload)
	}
}

func TestAnswerStoreSubmissionPayloadOrder(t *testing.T) {
	store := NewAnswerStore(testForm())
	// answer out of order, payload must follow the form order
	if err := store.SetAnswer("q4", "daily"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetAnswer("q3", "on-call rotation"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := store.SubmissionPayload()
	wantOrder := []string{"q1", "q3", "q4"}
	if len(payload) != len(wantOrder) {
		t.Fatalf("expected %d items, got %d", len(wantOrder), len(payload))
	}
	for i, item := range payload {
		if item.QuestionID != wantOrder[i] {
			t.Errorf("payload[%d] = %s, want %s", i, item.QuestionID, wantOrder[i])
		}
	}
}

func TestAnswerStoreSeedFromDraft(t *testing.T) {
	store := NewAnswerStore(testForm())
	draft := []types.AnswerItem{
		{QuestionID: "q1", Answer: "yes"},
		{QuestionID: "q2", Answer: "3"},
		{QuestionID: "q-removed", Answer: "stale"},
		{QuestionID: "q4", Answer: "no-longer-an-option"},
	}

	loaded := store.SeedFromDraft(draft)
	if loaded != 2 {
		t.Errorf("expected 2 loaded answers, got %d", loaded)
	}
	if store.AnsweredCount() != 2 {
		t.Errorf("expected 2 answered questions, got %d", store.AnsweredCount())
	}
	if _, ok := store.Answer("q-removed"); ok {
		t.Error("stale question must not enter the store")
	}
}

func TestValidateAnswers(t *testing.T) {
	form := testForm()

	testCases := []struct {
		name    string
		answers []types.AnswerItem
		wantErr bool
	}{
		{
			"valid payload",
			[]types.AnswerItem{
				{QuestionID: "q1", Answer: "yes"},
				{QuestionID: "q4", Answer: "monthly"},
			},
			false,
		},
		{
			"unknown question",
			[]types.AnswerItem{{QuestionID: "q77", Answer: "yes"}},
			true,
		},
		{
			"type mismatch",
			[]types.AnswerItem{{QuestionID: "q2", Answer: "a lot"}},
			true,
		},
		{"empty payload", []types.AnswerItem{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAnswers(form, tc.answers)
			if tc.wantErr {
				if !errors.Is(err, ErrValidationFailed) {
					t.Errorf("expected ErrValidationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAnswersRejectsCheckbox(t *testing.T) {
	form := &types.FormDefinition{
		Compartments: []types.FormCompartment{
			{
				ID: "c1",
				Questions: []types.FormQuestion{
					{ID: "q1", QuestionType: types.QUESTION_TYPE_CHECKBOX, Options: []string{"a", "b"}},
				},
			},
		},
	}

	err := ValidateAnswers(form, []types.AnswerItem{{QuestionID: "q1", Answer: "a"}})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed for checkbox question, got %v", err)
	}
}

func TestCountAnswered(t *testing.T) {
	answers := []types.AnswerItem{
		{QuestionID: "q1", Answer: "yes"},
		{QuestionID: "q2", Answer: ""},
		{QuestionID: "q3", Answer: "text"},
	}
	if got := CountAnswered(answers); got != 2 {
		t.Errorf("CountAnswered = %d, want 2", got)
	}
}
