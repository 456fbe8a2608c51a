package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

// fakeFormService implements FormService against an in-memory link record so
// session behavior can be exercised without a server.
type fakeFormService struct {
	mu sync.Mutex

	form      *types.FormDefinition
	draft     []types.AnswerItem
	submitted bool

	resolveErr error
	saveErr    error
	submitErr  error

	saveCalls   int
	submitCalls int
}

func (f *fakeFormService) ResolveForm(ctx context.Context, token string) (*types.FormDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}

	form := *f.form
	form.IsSubmitted = f.submitted
	form.DraftAnswers = append([]types.AnswerItem{}, f.draft...)
	form.ProgressPercent = CalcProgress(CountAnswered(f.draft), form.TotalQuestions)
	return &form, nil
}

func (f *fakeFormService) SaveDraft(ctx context.Context, token string, answers []types.AnswerItem, filledBy string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	if f.submitted {
		return 0, ErrAlreadySubmitted
	}
	if err := ValidateAnswers(f.form, answers); err != nil {
		return 0, err
	}
	f.draft = append([]types.AnswerItem{}, answers...)
	return CalcProgress(CountAnswered(answers), f.form.TotalQuestions), nil
}

func (f *fakeFormService) Submit(ctx context.Context, token string, answers []types.AnswerItem, filledBy string, consentConfirmed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.submitErr != nil {
		return f.submitErr
	}
	if f.submitted {
		return ErrAlreadySubmitted
	}
	if !consentConfirmed {
		return ErrConsentRequired
	}
	if err := ValidateAnswers(f.form, answers); err != nil {
		return err
	}
	f.draft = append([]types.AnswerItem{}, answers...)
	f.submitted = true
	return nil
}

func newFakeFormService() *fakeFormService {
	return &fakeFormService{form: testForm()}
}

func TestStartFillingSessionResolveErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"unknown token", ErrLinkNotFound},
		{"malformed token", ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFakeFormService()
			svc.resolveErr = tc.err
			_, err := StartFillingSession(context.Background(), svc, "some-token", "USER")
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestFillingSessionProgressTracking(t *testing.T) {
	svc := newFakeFormService()
	session, err := StartFillingSession(context.Background(), svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Progress() != 0 {
		t.Errorf("fresh session must start at 0%%, got %d", session.Progress())
	}

	// answering two of five questions
	if err := session.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetAnswer("q3", "security team"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Progress() != 40 {
		t.Errorf("expected 40%% progress, got %d", session.Progress())
	}

	// clearing brings the progress back down, never negative
	if err := session.SetAnswer("q3", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Progress() != 20 {
		t.Errorf("expected 20%% progress after clearing, got %d", session.Progress())
	}
}

func TestFillingSessionDraftRoundTrip(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	first, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.SetAnswer("q2", "12"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.SaveDraft(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.FlushSaves(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ServerProgress() != 40 {
		t.Errorf("expected server progress 40, got %d", first.ServerProgress())
	}

	// a later session on the same token resumes from the draft
	second, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := second.Answer("q1"); !ok || v != "yes" {
		t.Errorf("expected restored answer for q1, got %q (present: %v)", v, ok)
	}
	if v, ok := second.Answer("q2"); !ok || v != "12" {
		t.Errorf("expected restored answer for q2, got %q (present: %v)", v, ok)
	}
	if second.Progress() != 40 {
		t.Errorf("expected resumed progress 40, got %d", second.Progress())
	}
}

func TestFillingSessionNavigationKeepsAnswers(t *testing.T) {
	svc := newFakeFormService()
	session, err := StartFillingSession(context.Background(), svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.SubmitAvailable() {
		t.Error("submission must not be offered before the last section")
	}

	if !session.NextSection() {
		t.Fatal("expected NextSection to succeed")
	}
	if !session.SubmitAvailable() {
		t.Error("expected submission to be offered on the last section")
	}
	if !session.PreviousSection() {
		t.Fatal("expected PreviousSection to succeed")
	}

	if v, ok := session.Answer("q1"); !ok || v != "yes" {
		t.Errorf("navigation must not touch answers, got %q (present: %v)", v, ok)
	}
	if session.Progress() != 20 {
		t.Errorf("expected unchanged progress 20, got %d", session.Progress())
	}
}

func TestFillingSessionSubmitLocksLink(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	session, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetAnswer("q1", "no"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.Submit(ctx, true); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if !session.Submitted() {
		t.Error("expected session to be locked after submission")
	}

	// every mutation after the lock is rejected
	if err := session.SetAnswer("q2", "1"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted on answer change, got %v", err)
	}
	if err := session.SaveDraft(ctx); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted on draft save, got %v", err)
	}
	if err := session.Submit(ctx, true); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted on repeated submit, got %v", err)
	}
	if svc.submitCalls != 1 {
		t.Errorf("locked session must not call the server again, got %d submit calls", svc.submitCalls)
	}

	// reopening the link shows the locked state
	reopened, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reopened.Submitted() {
		t.Error("expected reopened session to be locked")
	}
	if err := reopened.SetAnswer("q1", "yes"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestFillingSessionSubmitRequiresConsent(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	session, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.Submit(ctx, false); !errors.Is(err, ErrConsentRequired) {
		t.Errorf("expected ErrConsentRequired, got %v", err)
	}
	if svc.submitCalls != 0 {
		t.Errorf("missing consent must never reach the server, got %d submit calls", svc.submitCalls)
	}
	if session.Submitted() {
		t.Error("rejected submission must not lock the session")
	}

	// consent given, the same payload goes through
	if err := session.Submit(ctx, true); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if !session.Submitted() {
		t.Error("expected session to be locked after submission")
	}
}

func TestFillingSessionConcurrentSubmitKeepsFirstWrite(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	// two sessions on the same token, both unsubmitted at load time
	first, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := StartFillingSession(ctx, svc, "token-1", "AGENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := first.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.Submit(ctx, true); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	if err := second.SetAnswer("q1", "no"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := second.Submit(ctx, true); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted for the second submission, got %v", err)
	}
	if !second.Submitted() {
		t.Error("losing session must lock itself")
	}

	// the stored payload belongs to the first submission
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.draft) != 1 || svc.draft[0].Answer != "yes" {
		t.Errorf("expected the first submission to win, stored %v", svc.draft)
	}
}

func TestFillingSessionDraftAfterSubmitDoesNotWin(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	session, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the link gets submitted elsewhere while this session holds a stale view
	svc.mu.Lock()
	svc.submitted = true
	svc.mu.Unlock()

	if err := session.SaveDraft(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.FlushSaves(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the server rejection locks the stale session
	if !session.Submitted() {
		t.Error("expected session to lock itself after the rejected draft save")
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.draft) != 0 {
		t.Errorf("rejected draft must not be stored, got %v", svc.draft)
	}
}

func TestFillingSessionTransportErrorIsRecoverable(t *testing.T) {
	svc := newFakeFormService()
	ctx := context.Background()

	session, err := StartFillingSession(ctx, svc, "token-1", "USER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetAnswer("q1", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.mu.Lock()
	svc.saveErr = errors.New("connection reset")
	svc.mu.Unlock()

	if err := session.SaveDraft(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.FlushSaves(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a failed transport leaves the session usable, answers intact
	if session.Submitted() {
		t.Error("transport errors must not lock the session")
	}
	if v, ok := session.Answer("q1"); !ok || v != "yes" {
		t.Errorf("expected local answers to survive, got %q (present: %v)", v, ok)
	}

	// the next save succeeds and pushes the same state
	svc.mu.Lock()
	svc.saveErr = nil
	svc.mu.Unlock()

	if err := session.SaveDraft(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.FlushSaves(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ServerProgress() != 20 {
		t.Errorf("expected server progress 20 after retry, got %d", session.ServerProgress())
	}
}
