package repositories

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves an account's transactions newest
	// first, with cursor-token pagination.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByStatus retrieves transactions in a given status for
	// administrator review, oldest first.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error)

	// SumApprovedAmountsByAccountIDs sums approved amounts of the given
	// commissionable types per account. Accounts with no matching rows are
	// absent from the result map.
	SumApprovedAmountsByAccountIDs(ctx context.Context, accountIDs []string, types []domain.TransactionType) (map[string]decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new pending transaction request.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// ApproveTransaction marks a pending transaction approved and applies the
	// balance effect to the owning account atomically. Returns
	// apperrors.ErrValidation when the transaction is not pending and
	// apperrors.ErrInsufficientFunds when a withdrawal overdraws the account.
	ApproveTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error)

	// RejectTransaction marks a pending transaction rejected. No balance effect.
	RejectTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
