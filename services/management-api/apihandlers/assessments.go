package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers"
	mw "github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers/middlewares"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/emailing"
	jwthandling "github.com/karthigaD-hub/xcyber360-backend/pkg/jwt-handling"
	userTypes "github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/types"
)

// AddAssessmentManagementAPI registers assessments, link issuance and
// submitted response access for the back office.
func (h *HttpEndpoints) AddAssessmentManagementAPI(rg *gin.RouterGroup) {
	assessmentsGroup := rg.Group("/assessments")
	assessmentsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		assessmentsGroup.GET("", h.getAssessments)
		assessmentsGroup.GET("/:assessmentID", h.getAssessment)

		adminOnly := assessmentsGroup.Group("")
		adminOnly.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
		{
			adminOnly.POST("", mw.RequirePayload(), h.createAssessment)
			adminOnly.PUT("/:assessmentID", mw.RequirePayload(), h.updateAssessment)
			adminOnly.DELETE("/:assessmentID", h.deleteAssessment)
		}
	}

	linksGroup := rg.Group("/assessment-links")
	linksGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		linksGroup.GET("", h.getLinks)
		linksGroup.POST("", mw.RequirePayload(), h.issueLink)
		linksGroup.GET("/:linkID", h.getLink)
		linksGroup.POST("/:linkID/send-reminder", h.sendLinkReminder)
		linksGroup.DELETE("/:linkID", mw.RequireRole(userTypes.ROLE_ADMIN), h.deleteLink)
	}

	responsesGroup := rg.Group("/assessment-responses")
	responsesGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		responsesGroup.GET("", h.getSubmittedResponses)
		responsesGroup.GET("/:linkID", h.getResponseForLink)
	}

	dashboardGroup := rg.Group("/dashboard")
	dashboardGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	{
		dashboardGroup.GET("/stats", h.getDashboardStats)
	}
}

func (h *HttpEndpoints) getAssessments(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessments, paginationInfo, err := h.assessmentDBConn.GetAssessments(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching assessments", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments, "pagination": paginationInfo})
}

func (h *HttpEndpoints) getAssessment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	item, err := h.assessmentDBConn.GetAssessmentByID(token.InstanceID, c.Param("assessmentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": item})
}

func (h *HttpEndpoints) createAssessment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var item types.Assessment
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if item.Status == "" {
		item.Status = types.ASSESSMENT_STATUS_DRAFT
	}
	item.Stats = types.AssessmentStats{}
	item.CreatedAt = time.Now().Unix()

	created, err := h.assessmentDBConn.CreateAssessment(token.InstanceID, item)
	if err != nil {
		slog.Error("error creating assessment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating assessment"})
		return
	}

	h.addAuditLog(c, "create", "assessment", created.ID.Hex(), created.Name)
	c.JSON(http.StatusCreated, gin.H{"assessment": created})
}

func (h *HttpEndpoints) updateAssessment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	assessmentID := c.Param("assessmentID")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
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
	if req.Status != "" {
		switch req.Status {
		case types.ASSESSMENT_STATUS_DRAFT, types.ASSESSMENT_STATUS_ACTIVE, types.ASSESSMENT_STATUS_CLOSED:
			update["status"] = req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.assessmentDBConn.UpdateAssessment(token.InstanceID, assessmentID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		slog.Error("error updating assessment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating assessment"})
		return
	}

	h.addAuditLog(c, "update", "assessment", assessmentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "assessment updated"})
}

func (h *HttpEndpoints) deleteAssessment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	assessmentID := c.Param("assessmentID")

	if err := h.assessmentDBConn.DeleteAssessmentByID(token.InstanceID, assessmentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		slog.Error("error deleting assessment", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting assessment"})
		return
	}

	h.addAuditLog(c, "delete", "assessment", assessmentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "assessment deleted"})
}

func (h *HttpEndpoints) getLinks(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	links, paginationInfo, err := h.assessmentDBConn.GetLinks(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching links", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment_links": links, "pagination": paginationInfo})
}

type IssueLinkRequest struct {
	AssessmentID        string `json:"assessment_id"`
	CustomerID          string `json:"customer_id"`
	InsuranceProviderID string `json:"insurance_provider_id"`
	SendInvitation      bool   `json:"send_invitation"`
}

func (h *HttpEndpoints) issueLink(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var req IssueLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessmentID, err := primitive.ObjectIDFromHex(req.AssessmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment_id"})
		return
	}
	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}
	providerID, err := primitive.ObjectIDFromHex(req.InsuranceProviderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insurance_provider_id"})
		return
	}

	item, err := h.assessmentDBConn.GetAssessmentByID(token.InstanceID, req.AssessmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assessment not found"})
		return
	}
	customer, err := h.userDirectoryDBConn.GetCustomerByID(token.InstanceID, req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer not found"})
		return
	}
	provider, err := h.questionBankDBConn.GetProviderByID(token.InstanceID, req.InsuranceProviderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insurance provider not found"})
		return
	}

	link := types.AssessmentLink{
		AssessmentID:        assessmentID,
		CustomerID:          customerID,
		InsuranceProviderID: providerID,
	}

	// agents issue links on their own behalf
	agentName := ""
	if token.Role == userTypes.ROLE_AGENT {
		user, err := h.userDirectoryDBConn.GetPlatformUserByID(token.InstanceID, token.ID)
		if err == nil && !user.AgentID.IsZero() {
			link.AgentID = user.AgentID
			agentName = user.Name
		}
	}

	created, linkURL, err := assessment.IssueLink(token.InstanceID, link)
	if err != nil {
		slog.Error("error issuing link", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error issuing link"})
		return
	}

	if req.SendInvitation && customer.Email != "" {
		err := emailing.SendAssessmentLinkInvitation([]string{customer.Email}, map[string]string{
			"customerName":   customer.Name,
			"agentName":      agentName,
			"assessmentName": item.Name,
			"providerName":   provider.Name,
			"linkURL":        linkURL,
		})
		if err != nil {
			slog.Error("failed to send invitation email", slog.String("instanceID", token.InstanceID), slog.String("linkID", created.ID.Hex()), slog.String("error", err.Error()))
		}
	}

	h.addAuditLog(c, "create", "assessmentLink", created.ID.Hex(), item.Name)
	c.JSON(http.StatusCreated, gin.H{
		"assessment_link": created,
		"link_url":        linkURL,
	})
}

func (h *HttpEndpoints) getLink(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	link, err := h.assessmentDBConn.GetLinkByID(token.InstanceID, c.Param("linkID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment_link": link,
		"link_url":        assessment.LinkURL(link.Token),
	})
}

func (h *HttpEndpoints) sendLinkReminder(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	link, err := h.assessmentDBConn.GetLinkByID(token.InstanceID, c.Param("linkID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}
	if link.Status == types.LINK_STATUS_SUBMITTED {
		c.JSON(http.StatusConflict, gin.H{"error": "assessment already submitted"})
		return
	}

	customer, err := h.userDirectoryDBConn.GetCustomerByID(token.InstanceID, link.CustomerID.Hex())
	if err != nil || customer.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer has no email address"})
		return
	}

	item, err := h.assessmentDBConn.GetAssessmentByID(token.InstanceID, link.AssessmentID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error resolving assessment"})
		return
	}

	err = emailing.SendAssessmentLinkReminder([]string{customer.Email}, map[string]string{
		"customerName":   customer.Name,
		"assessmentName": item.Name,
		"linkURL":        assessment.LinkURL(link.Token),
		"progress":       strconv.Itoa(link.ProgressPercent),
	})
	if err != nil {
		slog.Error("failed to send reminder email", slog.String("instanceID", token.InstanceID), slog.String("linkID", link.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reminder"})
		return
	}

	h.addAuditLog(c, "sendReminder", "assessmentLink", link.ID.Hex(), "")
	c.JSON(http.StatusOK, gin.H{"message": "reminder sent"})
}

func (h *HttpEndpoints) deleteLink(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	linkID := c.Param("linkID")

	link, err := h.assessmentDBConn.GetLinkByID(token.InstanceID, linkID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}
	if link.Status == types.LINK_STATUS_SUBMITTED {
		// submitted links are part of the audit trail
		c.JSON(http.StatusConflict, gin.H{"error": "submitted links cannot be deleted"})
		return
	}

	if err := h.assessmentDBConn.DeleteLinkByID(token.InstanceID, linkID); err != nil {
		slog.Error("error deleting link", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting link"})
		return
	}

	h.addAuditLog(c, "delete", "assessmentLink", linkID, "")
	c.JSON(http.StatusOK, gin.H{"message": "link deleted"})
}

func (h *HttpEndpoints) getSubmittedResponses(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses, paginationInfo, err := h.assessmentDBConn.GetSubmittedResponses(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching responses", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses, "pagination": paginationInfo})
}

func (h *HttpEndpoints) getResponseForLink(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	linkID, err := primitive.ObjectIDFromHex(c.Param("linkID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid linkID"})
		return
	}

	response, err := h.assessmentDBConn.GetResponseByLinkID(token.InstanceID, linkID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "response not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

func (h *HttpEndpoints) getDashboardStats(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	// agents see only their own links and customers
	var agentID primitive.ObjectID
	if token.Role == userTypes.ROLE_AGENT {
		user, err := h.userDirectoryDBConn.GetPlatformUserByID(token.InstanceID, token.ID)
		if err != nil || user.AgentID.IsZero() {
			c.JSON(http.StatusForbidden, gin.H{"error": "no agent record for this account"})
			return
		}
		agentID = user.AgentID
	}

	scoped := func(filter bson.M) bson.M {
		if !agentID.IsZero() {
			filter["agentID"] = agentID
		}
		return filter
	}

	stats := gin.H{}
	for key, filter := range map[string]bson.M{
		"total_links":  scoped(bson.M{}),
		"yet_to_start": scoped(bson.M{"status": types.LINK_STATUS_YET_TO_START}),
		"in_progress":  scoped(bson.M{"status": types.LINK_STATUS_IN_PROGRESS}),
		"submitted":    scoped(bson.M{"status": types.LINK_STATUS_SUBMITTED}),
	} {
		count, err := h.assessmentDBConn.GetLinksCount(token.InstanceID, filter)
		if err != nil {
			slog.Error("error computing dashboard stats", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing dashboard stats"})
			return
		}
		stats[key] = count
	}

	weekAgo := time.Now().AddDate(0, 0, -7).Unix()
	recent, err := h.assessmentDBConn.GetLinksCount(token.InstanceID, scoped(bson.M{
		"status":      types.LINK_STATUS_SUBMITTED,
		"submittedAt": bson.M{"$gte": weekAgo},
	}))
	if err == nil {
		stats["submitted_last_7_days"] = recent
	}

	if !agentID.IsZero() {
		customers, err := h.userDirectoryDBConn.CountCustomersForAgent(token.InstanceID, agentID)
		if err == nil {
			stats["assigned_customers"] = customers
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
