package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// RequestTransaction records a pending deposit or withdrawal request. Nothing
// touches the balance here; only administrator approval does.
func (s *transactionService) RequestTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive: %w", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %s is inactive: %w", accountID, apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Type:          req.Type,
		Amount:        req.Amount,
		Status:        domain.StatusPending,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     accountID,
			LastUpdatedAt: now,
			LastUpdatedBy: accountID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("transaction requested",
		slog.String("transactionID", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// ReviewTransaction approves or rejects a pending transaction. Approval
// applies the balance effect in the same database transaction that flips the
// status, so a reviewed transaction and its balance effect are never split.
func (s *transactionService) ReviewTransaction(ctx context.Context, reviewerUserID string, transactionID string, approve bool) (*domain.Transaction, error) {
	if err := requireAdmin(ctx, s.accountRepo, reviewerUserID); err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	var txn *domain.Transaction
	var err error
	if approve {
		txn, err = s.transactionRepo.ApproveTransaction(ctx, transactionID, reviewerUserID)
	} else {
		txn, err = s.transactionRepo.RejectTransaction(ctx, transactionID, reviewerUserID)
	}
	if err != nil {
		logger.Warn("transaction review failed",
			slog.String("transactionID", transactionID),
			slog.Bool("approve", approve),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("transaction reviewed",
		slog.String("transactionID", txn.TransactionID),
		slog.String("status", string(txn.Status)))
	return txn, nil
}

// GetTransactionByID retrieves one transaction. Members only ever see their
// own; administrators see everything.
func (s *transactionService) GetTransactionByID(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.AccountID == callerUserID {
		return txn, nil
	}
	if err := requireAdmin(ctx, s.accountRepo, callerUserID); err != nil {
		// Hide existence from non-owners.
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return txn, nil
}

// ListOwnTransactions retrieves the caller's transaction history, newest first.
func (s *transactionService) ListOwnTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.transactionRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
}

// ListTransactionsByStatus retrieves transactions for administrator review,
// oldest first so the queue drains in arrival order.
func (s *transactionService) ListTransactionsByStatus(ctx context.Context, callerUserID string, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	if err := requireAdmin(ctx, s.accountRepo, callerUserID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.transactionRepo.ListTransactionsByStatus(ctx, status, limit, offset)
}
