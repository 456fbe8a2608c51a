package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

// FormService is the collaborator a filling session talks to. It is
// implemented by the assessment service directly (in-process use, tests) and
// by HTTP clients of the assessment API.
type FormService interface {
	ResolveForm(ctx context.Context, token string) (*types.FormDefinition, error)
	SaveDraft(ctx context.Context, token string, answers []types.AnswerItem, filledBy string) (progressPercent int, err error)
	Submit(ctx context.Context, token string, answers []types.AnswerItem, filledBy string, consentConfirmed bool) error
}

// FillingSession drives one resumable filling flow over a resolved form:
// answers mutate the in-memory store, section navigation moves the current
// pointer without touching answers, drafts go through a single-flight queue
// and submission is a one-way transition into a locked state.
type FillingSession struct {
	mu sync.Mutex

	svc      FormService
	token    string
	filledBy string

	form      *types.FormDefinition
	store     *AnswerStore
	navigator *SectionNavigator
	queue     *SaveQueue

	serverProgress int
	submitted      bool
}

// StartFillingSession resolves the token and seeds the session from the
// server-side draft. A link that is already submitted yields a locked session:
// the caller must render the confirmation state only.
func StartFillingSession(ctx context.Context, svc FormService, token string, filledBy string) (*FillingSession, error) {
	form, err := svc.ResolveForm(ctx, token)
	if err != nil {
		return nil, err
	}

	s := &FillingSession{
		svc:            svc,
		token:          token,
		filledBy:       filledBy,
		form:           form,
		store:          NewAnswerStore(form),
		navigator:      NewSectionNavigator(len(form.Compartments)),
		serverProgress: form.ProgressPercent,
		submitted:      form.IsSubmitted,
	}
	s.queue = NewSaveQueue(s.executeSave, s.applySaveResult)

	if !s.submitted {
		s.store.SeedFromDraft(form.DraftAnswers)
	}
	return s, nil
}

func (s *FillingSession) Form() *types.FormDefinition {
	return s.form
}

func (s *FillingSession) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *FillingSession) SetAnswer(questionID string, value string) error {
	s.mu.Lock()
	locked := s.submitted
	s.mu.Unlock()
	if locked {
		return ErrAlreadySubmitted
	}
	return s.store.SetAnswer(questionID, value)
}

func (s *FillingSession) Answer(questionID string) (string, bool) {
	return s.store.Answer(questionID)
}

// Progress is the local estimate, recomputed from the store. The server value
// returned by draft saves is authoritative and overrides it.
func (s *FillingSession) Progress() int {
	total := s.form.TotalQuestions
	if total == 0 {
		total = s.store.TotalQuestions()
	}
	return CalcProgress(s.store.AnsweredCount(), total)
}

// ServerProgress is the last progress value confirmed by the server.
func (s *FillingSession) ServerProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverProgress
}

func (s *FillingSession) CurrentSection() int {
	return s.navigator.Current()
}

func (s *FillingSession) NextSection() bool {
	return s.navigator.Next()
}

func (s *FillingSession) PreviousSection() bool {
	return s.navigator.Previous()
}

// SubmitAvailable reports whether the session is positioned where submission
// is offered.
func (s *FillingSession) SubmitAvailable() bool {
	return s.navigator.OnLastSection() && !s.Submitted()
}

// SaveDraft schedules the current answer snapshot through the single-flight
// queue and returns immediately.
func (s *FillingSession) SaveDraft(ctx context.Context) error {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	s.mu.Unlock()

	s.queue.Enqueue(ctx, s.store.SubmissionPayload())
	return nil
}

// FlushSaves waits for queued draft saves to finish.
func (s *FillingSession) FlushSaves(ctx context.Context) error {
	return s.queue.Flush(ctx)
}

func (s *FillingSession) executeSave(ctx context.Context, answers []types.AnswerItem) (int, error) {
	return s.svc.SaveDraft(ctx, s.token, answers, s.filledBy)
}

func (s *FillingSession) applySaveResult(result SaveResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Err != nil {
		// A locked link is fatal for the session, transport errors are
		// recoverable and leave the local store untouched.
		if errors.Is(result.Err, ErrAlreadySubmitted) {
			s.submitted = true
		}
		return
	}
	s.serverProgress = result.ProgressPercent
}

// Submit performs the one-way transition into the locked state. Consent is
// checked locally first so a missing confirmation never reaches the network.
func (s *FillingSession) Submit(ctx context.Context, consentConfirmed bool) error {
	if !consentConfirmed {
		return ErrConsentRequired
	}

	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	s.mu.Unlock()

	// let queued draft saves settle, so submit supersedes the last draft
	if err := s.queue.Flush(ctx); err != nil {
		return err
	}

	err := s.svc.Submit(ctx, s.token, s.store.SubmissionPayload(), s.filledBy, consentConfirmed)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			// expected steady state, lock the session
			s.mu.Lock()
			s.submitted = true
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.submitted = true
	s.serverProgress = s.Progress()
	s.mu.Unlock()
	return nil
}
