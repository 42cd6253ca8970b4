package dto

import (
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines a member's deposit or withdrawal request.
// YIELD-typed transactions are created by administrators only, never here.
type CreateTransactionRequest struct {
	Type   domain.TransactionType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAW"`
	Amount decimal.Decimal        `json:"amount" binding:"required,dgt0"`
	Notes  string                 `json:"notes"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	AccountID     string                   `json:"accountID"`
	Type          domain.TransactionType   `json:"type"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.TransactionStatus `json:"status"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor token
// for the next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Type:          t.Type,
		Amount:        t.Amount,
		Status:        t.Status,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
