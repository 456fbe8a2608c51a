package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers/middlewares"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/engine"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func (h *HttpEndpoints) AddAssessmentFormAPI(rg *gin.RouterGroup) {
	formGroup := rg.Group("/assessment")
	{
		formGroup.GET("/:token", h.getAssessmentForm)
		formGroup.POST("/:token/draft", mw.RequirePayload(), h.saveDraft)
		formGroup.POST("/:token/submit", mw.RequirePayload(), h.submitAssessment)
	}
}

func (h *HttpEndpoints) getAssessmentForm(c *gin.Context) {
	instanceID, ok := h.getInstanceID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instance not allowed"})
		return
	}
	token := c.Param("token")

	form, err := assessment.GetFormByToken(instanceID, token)
	if err != nil {
		if errors.Is(err, engine.ErrLinkNotFound) || errors.Is(err, engine.ErrInvalidToken) {
			slog.Warn("assessment link not found", slog.String("instanceID", instanceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment link not found"})
			return
		}
		slog.Error("error resolving assessment form", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error resolving assessment form"})
		return
	}

	c.JSON(http.StatusOK, formResponse(form))
}

// Response shapes of the public form API. The form rides inside a data
// envelope and write operations answer with a message field.
func formResponse(form *types.FormDefinition) gin.H {
	return gin.H{"data": form}
}

func draftSavedResponse(progressPercent int) gin.H {
	return gin.H{
		"message":          "draft saved",
		"progress_percent": progressPercent,
	}
}

func submittedResponse() gin.H {
	return gin.H{"message": "assessment submitted"}
}

func alreadySubmittedResponse() gin.H {
	return gin.H{
		"message":           "assessment already submitted",
		"already_submitted": true,
	}
}

type draftReq struct {
	Answers  []types.AnswerItem `json:"answers"`
	FilledBy string             `json:"filled_by"`
}

func (h *HttpEndpoints) saveDraft(c *gin.Context) {
	instanceID, ok := h.getInstanceID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instance not allowed"})
		return
	}
	token := c.Param("token")

	var req draftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FilledBy != types.FILLED_BY_AGENT {
		req.FilledBy = types.FILLED_BY_USER
	}

	progress, err := assessment.OnSaveDraft(instanceID, token, req.Answers, req.FilledBy)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrLinkNotFound) || errors.Is(err, engine.ErrInvalidToken):
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment link not found"})
		case errors.Is(err, engine.ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{"error": "assessment already submitted"})
		case errors.Is(err, engine.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("error saving draft", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving draft"})
		}
		return
	}

	c.JSON(http.StatusOK, draftSavedResponse(progress))
}

type submitReq struct {
	Answers          []types.AnswerItem `json:"answers"`
	FilledBy         string             `json:"filled_by"`
	ConsentConfirmed bool               `json:"consent_confirmed"`
}

func (h *HttpEndpoints) submitAssessment(c *gin.Context) {
	instanceID, ok := h.getInstanceID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instance not allowed"})
		return
	}
	token := c.Param("token")

	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FilledBy != types.FILLED_BY_AGENT {
		req.FilledBy = types.FILLED_BY_USER
	}

	err := assessment.OnSubmit(instanceID, token, req.Answers, req.FilledBy, req.ConsentConfirmed, assessment.SubmissionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrLinkNotFound) || errors.Is(err, engine.ErrInvalidToken):
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment link not found"})
		case errors.Is(err, engine.ErrAlreadySubmitted):
			// a repeated submit resolves to the same terminal state
			c.JSON(http.StatusOK, alreadySubmittedResponse())
		case errors.Is(err, engine.ErrConsentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "consent confirmation is required"})
		case errors.Is(err, engine.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("error submitting assessment", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error submitting assessment"})
		}
		return
	}

	c.JSON(http.StatusOK, submittedResponse())
}
