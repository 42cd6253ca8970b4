package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// transactionHandler handles member-facing transaction routes.
type transactionHandler struct {
	transactionSvc portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionSvc: ts}
}

// registerTransactionRoutes registers all member transaction routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionSvc portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionSvc)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.requestTransaction)
		txns.GET("", h.listOwnTransactions)
		txns.GET("/:id", h.getTransaction)
	}
}

// requestTransaction godoc
// @Summary Request a deposit or withdrawal
// @Description Creates a pending transaction request; balances change only when an administrator approves it
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account inactive"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) requestTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionSvc.RequestTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listOwnTransactions godoc
// @Summary List own transactions
// @Description Retrieves the caller's transaction history, newest first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listOwnTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, nextToken, err := h.transactionSvc.ListOwnTransactions(c.Request.Context(), userID, intQuery(c, "limit", 20), optionalStringQuery(c, "nextToken"))
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves one transaction; members only see their own
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionSvc.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
