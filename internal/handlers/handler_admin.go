package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// adminHandler bundles every administrator-only route: the accrual trigger,
// the transaction review queue, plan and referral-config management, content
// pages and the account listing.
type adminHandler struct {
	services *portssvc.ServiceContainer
}

func newAdminHandler(services *portssvc.ServiceContainer) *adminHandler {
	return &adminHandler{services: services}
}

// registerAdminRoutes registers the /admin group behind the AdminRequired gate.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services)

	admin := rg.Group("/admin", middleware.AdminRequired(services.Account))
	{
		admin.POST("/accrual/run", h.runAccrual)

		admin.GET("/accounts", h.listAccounts)

		admin.GET("/transactions", h.listTransactionsByStatus)
		admin.POST("/transactions/:id/approve", h.approveTransaction)
		admin.POST("/transactions/:id/reject", h.rejectTransaction)

		admin.POST("/plans", h.createPlan)
		admin.PUT("/plans/:id", h.updatePlan)
		admin.DELETE("/plans/:id", h.deactivatePlan)

		admin.GET("/referral-config", h.getReferralConfigs)
		admin.PUT("/referral-config", h.upsertReferralConfig)

		admin.PUT("/pages/:slug", h.upsertPage)
	}
}

// runAccrual godoc
// @Summary Run an accrual cycle
// @Description Applies daily yield to every enrolled account. Safe to re-run within the same day; already-accrued accounts are counted as skipped.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.AccrualSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/accrual/run [post]
func (h *adminHandler) runAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.services.Accrual.RunAccrualCycle(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to run accrual cycle")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccrualSummaryResponse(summary))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a paginated account listing
// @Tags admin
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, _ := middleware.GetUserIDFromContext(c)
	accounts, err := h.services.Account.ListAccounts(c.Request.Context(), userID, intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// listTransactionsByStatus godoc
// @Summary List transactions by status
// @Description Retrieves the review queue, oldest first
// @Tags admin
// @Produce  json
// @Param   status query string false "Transaction status" default(PENDING)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *adminHandler) listTransactionsByStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := domain.TransactionStatus(c.DefaultQuery("status", string(domain.StatusPending)))
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction status"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	txns, err := h.services.Transaction.ListTransactionsByStatus(c.Request.Context(), userID, status, intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// approveTransaction godoc
// @Summary Approve a pending transaction
// @Description Approves the transaction and applies its balance effect atomically
// @Tags admin
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Transaction not pending"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /admin/transactions/{id}/approve [post]
func (h *adminHandler) approveTransaction(c *gin.Context) {
	h.reviewTransaction(c, true)
}

// rejectTransaction godoc
// @Summary Reject a pending transaction
// @Description Rejects the transaction; no balance effect
// @Tags admin
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Transaction not pending"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /admin/transactions/{id}/reject [post]
func (h *adminHandler) rejectTransaction(c *gin.Context) {
	h.reviewTransaction(c, false)
}

func (h *adminHandler) reviewTransaction(c *gin.Context, approve bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.services.Transaction.ReviewTransaction(c.Request.Context(), userID, c.Param("id"), approve)
	if err != nil {
		respondError(c, logger, err, "Failed to review transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// createPlan godoc
// @Summary Create an investment plan
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/plans [post]
func (h *adminHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	plan, err := h.services.Plan.CreatePlan(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// updatePlan godoc
// @Summary Update an investment plan
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "Plan ID"
// @Param   plan body dto.UpdatePlanRequest true "Fields to update"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /admin/plans/{id} [put]
func (h *adminHandler) updatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	plan, err := h.services.Plan.UpdatePlan(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// deactivatePlan godoc
// @Summary Deactivate an investment plan
// @Description Closes the plan to new enrollment; already-enrolled accounts keep accruing
// @Tags admin
// @Produce  json
// @Param   id path string true "Plan ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /admin/plans/{id} [delete]
func (h *adminHandler) deactivatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, _ := middleware.GetUserIDFromContext(c)
	if err := h.services.Plan.DeactivatePlan(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err, "Failed to deactivate plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// getReferralConfigs godoc
// @Summary Get referral commission configuration
// @Tags admin
// @Produce  json
// @Success 200 {array} dto.ReferralConfigResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/referral-config [get]
func (h *adminHandler) getReferralConfigs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	configs, err := h.services.Referral.GetReferralConfigs(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load referral config")
		return
	}

	out := make([]dto.ReferralConfigResponse, len(configs))
	for i := range configs {
		out[i] = dto.ToReferralConfigResponse(&configs[i])
	}
	c.JSON(http.StatusOK, out)
}

// upsertReferralConfig godoc
// @Summary Set a referral commission percentage
// @Description Creates or replaces the percentage for one referral level
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   config body dto.UpsertReferralConfigRequest true "Level and percentage"
// @Success 200 {object} dto.ReferralConfigResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/referral-config [put]
func (h *adminHandler) upsertReferralConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertReferralConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	cfg, err := h.services.Referral.UpsertReferralConfig(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert referral config")
		return
	}
	c.JSON(http.StatusOK, dto.ToReferralConfigResponse(cfg))
}

// upsertPage godoc
// @Summary Create or replace a content page
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   slug path string true "Page slug"
// @Param   page body dto.UpsertPageRequest true "Page content"
// @Success 200 {object} dto.PageContentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/pages/{slug} [put]
func (h *adminHandler) upsertPage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	page, err := h.services.Content.UpsertPage(c.Request.Context(), c.Param("slug"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert page")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageContentResponse(page))
}
