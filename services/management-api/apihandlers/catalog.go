package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers"
	mw "github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers/middlewares"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
	userTypes "github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/types"
)

// AddCatalogAPI registers the question bank endpoints: insurance providers,
// compartments and questions. All of them are admin-only.
func (h *HttpEndpoints) AddCatalogAPI(rg *gin.RouterGroup) {
	providersGroup := rg.Group("/insurance-providers")
	providersGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		// reading the catalog is allowed for agents as well
		providersGroup.GET("", h.getProviders)

		adminOnly := providersGroup.Group("")
		adminOnly.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
		{
			adminOnly.POST("", mw.RequirePayload(), h.createProvider)
			adminOnly.PUT("/:providerID", mw.RequirePayload(), h.updateProvider)
			adminOnly.DELETE("/:providerID", h.deleteProvider)
		}
	}

	compartmentsGroup := rg.Group("/compartments")
	compartmentsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		compartmentsGroup.GET("", h.getCompartments)

		adminOnly := compartmentsGroup.Group("")
		adminOnly.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
		{
			adminOnly.POST("", mw.RequirePayload(), h.createCompartment)
			adminOnly.PUT("/:compartmentID", mw.RequirePayload(), h.updateCompartment)
			adminOnly.DELETE("/:compartmentID", h.deleteCompartment)
		}
	}

	questionsGroup := rg.Group("/questions")
	questionsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		questionsGroup.GET("", h.getQuestions)

		adminOnly := questionsGroup.Group("")
		adminOnly.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
		{
			adminOnly.POST("", mw.RequirePayload(), h.createQuestion)
			adminOnly.POST("/bulk", mw.RequirePayload(), h.createQuestions)
			adminOnly.PUT("/:questionID", mw.RequirePayload(), h.updateQuestion)
			adminOnly.DELETE("/:questionID", h.deleteQuestion)
		}
	}
}

func (h *HttpEndpoints) getProviders(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	onlyActive := c.DefaultQuery("onlyActive", "false") == "true"
	providers, err := h.questionBankDBConn.GetProviders(token.InstanceID, onlyActive)
	if err != nil {
		slog.Error("error fetching providers", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching providers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insurance_providers": providers})
}

func (h *HttpEndpoints) createProvider(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var provider types.InsuranceProvider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if provider.Name == "" || provider.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and code are required"})
		return
	}
	provider.IsActive = true
	provider.CreatedAt = time.Now().Unix()

	created, err := h.questionBankDBConn.CreateProvider(token.InstanceID, provider)
	if err != nil {
		slog.Error("error creating provider", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating provider"})
		return
	}

	h.addAuditLog(c, "create", "insuranceProvider", created.ID.Hex(), created.Code)
	c.JSON(http.StatusCreated, gin.H{"insurance_provider": created})
}

func (h *HttpEndpoints) updateProvider(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	providerID := c.Param("providerID")

	var req struct {
		Name         string `json:"name"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.ContactEmail != "" {
		update["contactEmail"] = req.ContactEmail
	}
	if req.ContactPhone != "" {
		update["contactPhone"] = req.ContactPhone
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.questionBankDBConn.UpdateProvider(token.InstanceID, providerID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		slog.Error("error updating provider", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating provider"})
		return
	}

	h.addAuditLog(c, "update", "insuranceProvider", providerID, "")
	c.JSON(http.StatusOK, gin.H{"message": "provider updated"})
}

func (h *HttpEndpoints) deleteProvider(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	providerID := c.Param("providerID")

	if err := h.questionBankDBConn.DeleteProviderByID(token.InstanceID, providerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		slog.Error("error deleting provider", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting provider"})
		return
	}

	h.addAuditLog(c, "delete", "insuranceProvider", providerID, "")
	c.JSON(http.StatusOK, gin.H{"message": "provider deleted"})
}

func (h *HttpEndpoints) getCompartments(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	compartments, err := h.questionBankDBConn.GetCompartments(token.InstanceID)
	if err != nil {
		slog.Error("error fetching compartments", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching compartments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"compartments": compartments})
}

func (h *HttpEndpoints) createCompartment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var compartment types.Compartment
	if err := c.ShouldBindJSON(&compartment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if compartment.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	compartment.CreatedAt = time.Now().Unix()

	created, err := h.questionBankDBConn.CreateCompartment(token.InstanceID, compartment)
	if err != nil {
		slog.Error("error creating compartment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating compartment"})
		return
	}

	h.addAuditLog(c, "create", "compartment", created.ID.Hex(), created.Name)
	c.JSON(http.StatusCreated, gin.H{"compartment": created})
}

func (h *HttpEndpoints) updateCompartment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	compartmentID := c.Param("compartmentID")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Order       *int   `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.questionBankDBConn.UpdateCompartment(token.InstanceID, compartmentID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "compartment not found"})
			return
		}
		slog.Error("error updating compartment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating compartment"})
		return
	}

	h.addAuditLog(c, "update", "compartment", compartmentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "compartment updated"})
}

func (h *HttpEndpoints) deleteCompartment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	compartmentID := c.Param("compartmentID")

	if err := h.questionBankDBConn.DeleteCompartmentByID(token.InstanceID, compartmentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "compartment not found"})
			return
		}
		slog.Error("error deleting compartment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting compartment"})
		return
	}

	h.addAuditLog(c, "delete", "compartment", compartmentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "compartment deleted"})
}

func (h *HttpEndpoints) getQuestions(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, paginationInfo, err := h.questionBankDBConn.GetQuestions(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching questions", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "pagination": paginationInfo})
}

func checkQuestionDefinition(question types.Question) error {
	if question.QuestionText == "" {
		return errors.New("question text is required")
	}
	switch question.QuestionType {
	case types.QUESTION_TYPE_MCQ:
		if len(question.Options) < 2 {
			return errors.New("MCQ questions need at least two options")
		}
	case types.QUESTION_TYPE_YES_NO,
		types.QUESTION_TYPE_TEXT,
		types.QUESTION_TYPE_NUMBER,
		types.QUESTION_TYPE_REFLEXIVE,
		types.QUESTION_TYPE_PARAGRAPH:
		// ok
	default:
		return fmt.Errorf("unknown question type: %s", question.QuestionType)
	}
	if question.CompartmentID.IsZero() {
		return errors.New("compartment is required")
	}
	return nil
}

func (h *HttpEndpoints) createQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var question types.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := checkQuestionDefinition(question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question.IsActive = true
	question.CreatedAt = time.Now().Unix()

	created, err := h.questionBankDBConn.CreateQuestion(token.InstanceID, question)
	if err != nil {
		slog.Error("error creating question", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating question"})
		return
	}

	h.addAuditLog(c, "create", "question", created.ID.Hex(), "")
	c.JSON(http.StatusCreated, gin.H{"question": created})
}

func (h *HttpEndpoints) createQuestions(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var req struct {
		Questions []types.Question `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questions list is empty"})
		return
	}

	now := time.Now().Unix()
	for i := range req.Questions {
		if err := checkQuestionDefinition(req.Questions[i]); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("question %d: %s", i, err.Error())})
			return
		}
		req.Questions[i].IsActive = true
		req.Questions[i].CreatedAt = now
	}

	count, err := h.questionBankDBConn.CreateQuestions(token.InstanceID, req.Questions)
	if err != nil {
		slog.Error("error creating questions", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating questions"})
		return
	}

	h.addAuditLog(c, "bulkCreate", "question", "", fmt.Sprintf("%d questions", count))
	c.JSON(http.StatusCreated, gin.H{"created_count": count})
}

func (h *HttpEndpoints) updateQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	questionID := c.Param("questionID")

	var req struct {
		QuestionText        string   `json:"question_text"`
		Options             []string `json:"options"`
		RiskWeight          *int     `json:"risk_weight"`
		Order               *int     `json:"order"`
		ApplicableProviders []string `json:"applicable_providers"`
		IsActive            *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if req.QuestionText != "" {
		update["questionText"] = req.QuestionText
	}
	if req.Options != nil {
		update["options"] = req.Options
	}
	if req.RiskWeight != nil {
		update["riskWeight"] = *req.RiskWeight
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}
	if req.ApplicableProviders != nil {
		update["applicableProviders"] = req.ApplicableProviders
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.questionBankDBConn.UpdateQuestion(token.InstanceID, questionID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("error updating question", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating question"})
		return
	}

	h.addAuditLog(c, "update", "question", questionID, "")
	c.JSON(http.StatusOK, gin.H{"message": "question updated"})
}

func (h *HttpEndpoints) deleteQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	questionID := c.Param("questionID")

	if err := h.questionBankDBConn.DeleteQuestionByID(token.InstanceID, questionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("error deleting question", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting question"})
		return
	}

	h.addAuditLog(c, "delete", "question", questionID, "")
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
