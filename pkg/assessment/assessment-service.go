package assessment

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/engine"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	assessmentDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/assessment"
	questionbankDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/question-bank"
	userdirectoryDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/user-directory"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

var (
	assessmentDBService    *assessmentDB.AssessmentDBService
	questionBankDBService  *questionbankDB.QuestionBankDBService
	userDirectoryDBService *userdirectoryDB.UserDirectoryDBService
	formBaseURL            string
)

func Init(
	assessmentDBConn *assessmentDB.AssessmentDBService,
	questionBankDBConn *questionbankDB.QuestionBankDBService,
	userDirectoryDBConn *userdirectoryDB.UserDirectoryDBService,
	baseURL string,
) {
	assessmentDBService = assessmentDBConn
	questionBankDBService = questionBankDBConn
	userDirectoryDBService = userDirectoryDBConn
	formBaseURL = baseURL
}

// LinkURL is the shareable form URL embedding the access token.
func LinkURL(token string) string {
	return fmt.Sprintf("%s/assessment/%s", formBaseURL, token)
}

// GetFormByToken resolves a link token into the hydrated form definition:
// compartments with the questions applicable to the link's insurance provider,
// plus the draft answer snapshot and the submission state.
func GetFormByToken(instanceID string, token string) (*types.FormDefinition, error) {
	if !utils.IsURLSafe(token) {
		return nil, engine.ErrInvalidToken
	}

	link, err := assessmentDBService.GetLinkByToken(instanceID, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, engine.ErrLinkNotFound
		}
		return nil, err
	}

	assessment, err := assessmentDBService.GetAssessmentByID(instanceID, link.AssessmentID.Hex())
	if err != nil {
		return nil, err
	}

	customer, err := userDirectoryDBService.GetCustomerByID(instanceID, link.CustomerID.Hex())
	if err != nil {
		return nil, err
	}

	provider, err := questionBankDBService.GetProviderByID(instanceID, link.InsuranceProviderID.Hex())
	if err != nil {
		return nil, err
	}

	form := &types.FormDefinition{
		AssessmentName:        assessment.Name,
		CustomerName:          customer.Name,
		InsuranceProviderName: provider.Name,
		IsSubmitted:           link.Status == types.LINK_STATUS_SUBMITTED,
		ProgressPercent:       link.ProgressPercent,
		Status:                link.Status,
		Compartments:          []types.FormCompartment{},
		DraftAnswers:          []types.AnswerItem{},
	}

	// a locked link resolves to the confirmation view only
	if form.IsSubmitted {
		return form, nil
	}

	compartments, err := questionBankDBService.GetCompartments(instanceID)
	if err != nil {
		return nil, err
	}

	questions, err := questionBankDBService.GetActiveQuestionsForProvider(instanceID, link.InsuranceProviderID.Hex())
	if err != nil {
		return nil, err
	}

	questionsByCompartment := map[string][]types.FormQuestion{}
	for _, q := range questions {
		fq := types.FormQuestion{
			ID:           q.ID.Hex(),
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      q.Options,
			RiskWeight:   q.RiskWeight,
		}
		key := q.CompartmentID.Hex()
		questionsByCompartment[key] = append(questionsByCompartment[key], fq)
	}

	for _, compartment := range compartments {
		qs, ok := questionsByCompartment[compartment.ID.Hex()]
		if !ok {
			// compartments without applicable questions are not shown
			continue
		}
		form.Compartments = append(form.Compartments, types.FormCompartment{
			ID:        compartment.ID.Hex(),
			Name:      compartment.Name,
			Order:     compartment.Order,
			Questions: qs,
		})
		form.TotalQuestions += len(qs)
	}

	draft, err := assessmentDBService.GetResponseByLinkID(instanceID, link.ID)
	if err == nil {
		form.DraftAnswers = draft.Answers
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return form, nil
}

// OnSaveDraft upserts the full answer snapshot for a link, recomputes the
// progress and advances the link status to IN_PROGRESS. The call is
// idempotent and fails against a submitted link.
func OnSaveDraft(instanceID string, token string, answers []types.AnswerItem, filledBy string) (progressPercent int, err error) {
	form, link, err := resolveEditableLink(instanceID, token)
	if err != nil {
		return 0, err
	}

	if err := engine.ValidateAnswers(form, answers); err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	if err := assessmentDBService.UpsertDraftResponse(instanceID, link.ID, answers, filledBy, now); err != nil {
		return 0, err
	}

	progressPercent = engine.CalcProgress(engine.CountAnswered(answers), form.TotalQuestions)
	if _, err := assessmentDBService.UpdateLinkProgress(instanceID, link.ID, progressPercent); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// submitted in between, the draft must not win
			return 0, engine.ErrAlreadySubmitted
		}
		return 0, err
	}

	slog.Debug("draft saved", slog.String("instanceID", instanceID), slog.String("linkID", link.ID.Hex()), slog.Int("progress", progressPercent))
	return progressPercent, nil
}

// SubmissionMeta carries the provenance captured at submit time.
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

// OnSubmit performs the terminal transition: final answers supersede the
// draft, the link becomes permanently read-only and the provenance is
// recorded. Consent is re-validated here regardless of any client-side gate.
func OnSubmit(instanceID string, token string, answers []types.AnswerItem, filledBy string, consentConfirmed bool, meta SubmissionMeta) error {
	if !consentConfirmed {
		return engine.ErrConsentRequired
	}

	form, link, err := resolveEditableLink(instanceID, token)
	if err != nil {
		return err
	}

	if err := engine.ValidateAnswers(form, answers); err != nil {
		return err
	}

	now := time.Now().Unix()
	progressPercent := engine.CalcProgress(engine.CountAnswered(answers), form.TotalQuestions)

	// the conditional update is the authoritative gate against double submits
	if _, err := assessmentDBService.MarkLinkSubmitted(instanceID, link.ID, progressPercent, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return engine.ErrAlreadySubmitted
		}
		return err
	}

	response := types.AssessmentResponse{
		LinkID:           link.ID,
		Answers:          answers,
		FilledBy:         filledBy,
		SubmittedBy:      filledBy,
		ConsentConfirmed: consentConfirmed,
		SubmittedAt:      now,
		UpdatedAt:        now,
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
	}
	if err := assessmentDBService.FinalizeResponse(instanceID, link.ID, response); err != nil {
		// the link is already locked, losing the final answers would be worse
		slog.Error("failed to finalize response for submitted link", slog.String("instanceID", instanceID), slog.String("linkID", link.ID.Hex()), slog.String("error", err.Error()))
		return err
	}

	slog.Info("assessment submitted", slog.String("instanceID", instanceID), slog.String("linkID", link.ID.Hex()), slog.String("submittedBy", filledBy))
	return nil
}

func resolveEditableLink(instanceID string, token string) (*types.FormDefinition, *types.AssessmentLink, error) {
	if !utils.IsURLSafe(token) {
		return nil, nil, engine.ErrInvalidToken
	}

	link, err := assessmentDBService.GetLinkByToken(instanceID, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, engine.ErrLinkNotFound
		}
		return nil, nil, err
	}

	if link.Status == types.LINK_STATUS_SUBMITTED {
		return nil, nil, engine.ErrAlreadySubmitted
	}

	form, err := GetFormByToken(instanceID, token)
	if err != nil {
		return nil, nil, err
	}
	return form, &link, nil
}

// IssueLink creates a new assessment link for a customer/provider pair with a
// fresh unguessable token.
func IssueLink(instanceID string, link types.AssessmentLink) (types.AssessmentLink, string, error) {
	token, err := GenerateLinkToken()
	if err != nil {
		return link, "", err
	}

	link.Token = token
	link.Status = types.LINK_STATUS_YET_TO_START
	link.ProgressPercent = 0
	link.CreatedAt = time.Now().Unix()

	created, err := assessmentDBService.CreateLink(instanceID, link)
	if err != nil {
		return link, "", err
	}
	return created, LinkURL(token), nil
}
