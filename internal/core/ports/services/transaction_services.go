package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one transaction, enforcing ownership unless
	// the caller is an administrator.
	GetTransactionByID(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error)

	// ListOwnTransactions retrieves the caller's transaction history.
	ListOwnTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByStatus retrieves transactions for administrator review.
	ListTransactionsByStatus(ctx context.Context, callerUserID string, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transactions.
type TransactionWriterSvc interface {
	// RequestTransaction creates a pending deposit or withdrawal request for
	// the calling account.
	RequestTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ReviewTransaction approves or rejects a pending transaction. Approval
	// applies the balance effect atomically; both outcomes are terminal.
	ReviewTransaction(ctx context.Context, reviewerUserID string, transactionID string, approve bool) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
