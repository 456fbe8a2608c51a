package apihandlers

import (
	"errors"
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
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

// AddDirectoryAPI registers agent and customer management endpoints. Agents
// are admin-only, customers can be managed by both roles.
func (h *HttpEndpoints) AddDirectoryAPI(rg *gin.RouterGroup) {
	agentsGroup := rg.Group("/agents")
	agentsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	agentsGroup.Use(mw.RequireRole(userTypes.ROLE_ADMIN))
	{
		agentsGroup.GET("", h.getAgents)
		agentsGroup.POST("", mw.RequirePayload(), h.createAgent)
		agentsGroup.GET("/:agentID", h.getAgent)
		agentsGroup.PUT("/:agentID", mw.RequirePayload(), h.updateAgent)
		agentsGroup.DELETE("/:agentID", h.deleteAgent)
	}

	customersGroup := rg.Group("/customers")
	customersGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey, h.allowedInstanceIDs))
	customersGroup.Use(mw.RequireRole(userTypes.ROLE_ADMIN, userTypes.ROLE_AGENT))
	{
		customersGroup.GET("", h.getCustomers)
		customersGroup.POST("", mw.RequirePayload(), h.createCustomer)
		customersGroup.GET("/:customerID", h.getCustomer)
		customersGroup.PUT("/:customerID", mw.RequirePayload(), h.updateCustomer)
		customersGroup.DELETE("/:customerID", h.deleteCustomer)
	}
}

func (h *HttpEndpoints) getAgents(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agents, paginationInfo, err := h.userDirectoryDBConn.GetAgents(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching agents", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching agents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": agents, "pagination": paginationInfo})
}

func (h *HttpEndpoints) createAgent(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var agent types.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent.Email = utils.SanitizeEmail(agent.Email)
	if agent.Name == "" || !utils.CheckEmailFormat(agent.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
		return
	}
	agent.IsActive = true
	agent.CreatedAt = time.Now().Unix()

	created, err := h.userDirectoryDBConn.CreateAgent(token.InstanceID, agent)
	if err != nil {
		slog.Error("error creating agent", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating agent"})
		return
	}

	h.addAuditLog(c, "create", "agent", created.ID.Hex(), created.Name)
	c.JSON(http.StatusCreated, gin.H{"agent": created})
}

func (h *HttpEndpoints) getAgent(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	agent, err := h.userDirectoryDBConn.GetAgentByID(token.InstanceID, c.Param("agentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	customerCount, err := h.userDirectoryDBConn.CountCustomersForAgent(token.InstanceID, agent.ID)
	if err != nil {
		slog.Error("error counting customers for agent", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"agent": agent, "customer_count": customerCount})
}

func (h *HttpEndpoints) updateAgent(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	agentID := c.Param("agentID")

	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Designation string `json:"designation"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		email := utils.SanitizeEmail(req.Email)
		if !utils.CheckEmailFormat(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
			return
		}
		update["email"] = email
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Designation != "" {
		update["designation"] = req.Designation
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.userDirectoryDBConn.UpdateAgent(token.InstanceID, agentID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		slog.Error("error updating agent", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating agent"})
		return
	}

	h.addAuditLog(c, "update", "agent", agentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "agent updated"})
}

func (h *HttpEndpoints) deleteAgent(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	agentID := c.Param("agentID")

	if err := h.userDirectoryDBConn.DeleteAgentByID(token.InstanceID, agentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		slog.Error("error deleting agent", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting agent"})
		return
	}

	h.addAuditLog(c, "delete", "agent", agentID, "")
	c.JSON(http.StatusOK, gin.H{"message": "agent deleted"})
}

func (h *HttpEndpoints) getCustomers(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customers, paginationInfo, err := h.userDirectoryDBConn.GetCustomers(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching customers", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers, "pagination": paginationInfo})
}

func (h *HttpEndpoints) createCustomer(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var customer types.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer.Email = utils.SanitizeEmail(customer.Email)
	if customer.Name == "" || !utils.CheckEmailFormat(customer.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
		return
	}
	customer.CreatedAt = time.Now().Unix()

	created, err := h.userDirectoryDBConn.CreateCustomer(token.InstanceID, customer)
	if err != nil {
		slog.Error("error creating customer", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating customer"})
		return
	}

	h.addAuditLog(c, "create", "customer", created.ID.Hex(), created.CompanyName)
	c.JSON(http.StatusCreated, gin.H{"customer": created})
}

func (h *HttpEndpoints) getCustomer(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	customer, err := h.userDirectoryDBConn.GetCustomerByID(token.InstanceID, c.Param("customerID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *HttpEndpoints) updateCustomer(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	customerID := c.Param("customerID")

	var req struct {
		Name        string `json:"name"`
		CompanyName string `json:"company_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Industry    string `json:"industry"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.CompanyName != "" {
		update["companyName"] = req.CompanyName
	}
	if req.Email != "" {
		email := utils.SanitizeEmail(req.Email)
		if !utils.CheckEmailFormat(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
			return
		}
		update["email"] = email
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Industry != "" {
		update["industry"] = req.Industry
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.userDirectoryDBConn.UpdateCustomer(token.InstanceID, customerID, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		slog.Error("error updating customer", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating customer"})
		return
	}

	h.addAuditLog(c, "update", "customer", customerID, "")
	c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
}

func (h *HttpEndpoints) deleteCustomer(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)
	customerID := c.Param("customerID")

	if err := h.userDirectoryDBConn.DeleteCustomerByID(token.InstanceID, customerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		slog.Error("error deleting customer", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting customer"})
		return
	}

	h.addAuditLog(c, "delete", "customer", customerID, "")
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
