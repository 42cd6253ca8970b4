package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// accountHandler handles the authenticated member's own-account routes.
type accountHandler struct {
	accountSvc  portssvc.AccountSvcFacade
	referralSvc portssvc.ReferralSvcFacade
	accrualSvc  portssvc.AccrualSvcFacade
}

func newAccountHandler(accountSvc portssvc.AccountSvcFacade, referralSvc portssvc.ReferralSvcFacade, accrualSvc portssvc.AccrualSvcFacade) *accountHandler {
	return &accountHandler{
		accountSvc:  accountSvc,
		referralSvc: referralSvc,
		accrualSvc:  accrualSvc,
	}
}

// registerAccountRoutes registers all own-account routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade, referralSvc portssvc.ReferralSvcFacade, accrualSvc portssvc.AccrualSvcFacade) {
	h := newAccountHandler(accountSvc, referralSvc, accrualSvc)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getOwnAccount)
		accounts.GET("/me/network", h.getOwnNetwork)
		accounts.GET("/me/yields", h.listOwnYields)
		accounts.POST("/me/plan", h.enrollInPlan)
	}
}

// getOwnAccount godoc
// @Summary Get own account
// @Description Retrieves the authenticated member's account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getOwnAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getOwnNetwork godoc
// @Summary Get own referral network
// @Description Computes the two-level commission report for the caller's referral network. The report is recomputed on every call from approved transactions and the current commission configuration.
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.NetworkReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute network"
// @Security BearerAuth
// @Router /accounts/me/network [get]
func (h *accountHandler) getOwnNetwork(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.referralSvc.ComputeNetwork(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute network")
		return
	}
	c.JSON(http.StatusOK, dto.ToNetworkReportResponse(report))
}

// listOwnYields godoc
// @Summary List own yield history
// @Description Retrieves the caller's yield records, newest first
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListYieldRecordsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me/yields [get]
func (h *accountHandler) listOwnYields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, nextToken, err := h.accrualSvc.ListOwnYieldRecords(c.Request.Context(), userID, intQuery(c, "limit", 20), optionalStringQuery(c, "nextToken"))
	if err != nil {
		respondError(c, logger, err, "Failed to list yield records")
		return
	}
	c.JSON(http.StatusOK, dto.ListYieldRecordsResponse{
		Yields:    dto.ToYieldRecordResponses(records),
		NextToken: nextToken,
	})
}

// enrollInPlan godoc
// @Summary Enroll in an investment plan
// @Description Enrolls the caller into an active plan; replaces any previous enrollment
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   enrollment body dto.EnrollPlanRequest true "Plan to enroll into"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Plan closed for enrollment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /accounts/me/plan [post]
func (h *accountHandler) enrollInPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.EnrollPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountSvc.EnrollInPlan(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondError(c, logger, err, "Failed to enroll in plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
