package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	"github.com/rendaplus/rendaplus_backend/internal/models"
	"github.com/rendaplus/rendaplus_backend/internal/utils/mapping"
	"github.com/rendaplus/rendaplus_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, account_id, type, amount, status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository dependency supplies row locking and balance updates
// inside approval transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// SaveTransaction persists a new pending transaction request.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, account_id, type, amount, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

// ListTransactionsByAccountID retrieves an account's transactions newest first
// with cursor-token pagination keyed on (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{accountID}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating transactions: %w", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}
	return txns, newNextToken, nil
}

// ListTransactionsByStatus retrieves transactions in a given status, oldest first.
func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY created_at, transaction_id LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by status %s: %w", status, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transactions: %w", err)
	}
	return txns, nil
}

// SumApprovedAmountsByAccountIDs sums approved amounts of the given types per
// account. Accounts with no matching rows are absent from the result map.
func (r *PgxTransactionRepository) SumApprovedAmountsByAccountIDs(ctx context.Context, accountIDs []string, types []domain.TransactionType) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal)
	if len(accountIDs) == 0 || len(types) == 0 {
		return result, nil
	}

	typeStrs := make([]string, len(types))
	for i, t := range types {
		typeStrs[i] = string(t)
	}

	query := `
		SELECT account_id, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = ANY($1) AND status = $2 AND type = ANY($3)
		GROUP BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, string(domain.StatusApproved), typeStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved amounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID string
		var sum decimal.Decimal
		if err := rows.Scan(&accountID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan approved amount sum: %w", err)
		}
		result[accountID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating approved amount sums: %w", err)
	}
	return result, nil
}

// ApproveTransaction marks a pending transaction approved and applies the
// balance effect atomically. The transaction row and the account row are both
// locked so a concurrent accrual cycle cannot produce a lost update.
func (r *PgxTransactionRepository) ApproveTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txn, err := r.lockPendingTransaction(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}

	// Determine the signed balance effect.
	delta := txn.Amount
	if txn.Type == domain.Withdraw {
		delta = delta.Neg()
	}

	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %s for approval: %w", txn.AccountID, err)
	}

	if txn.Type == domain.Withdraw && account.Balance.LessThan(txn.Amount) {
		return nil, fmt.Errorf("%w: balance %s cannot cover withdrawal of %s",
			apperrors.ErrInsufficientFunds, account.Balance.String(), txn.Amount.String())
	}

	now := time.Now().UTC()
	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, txn.AccountID, delta, reviewerUserID, now); err != nil {
		return nil, err
	}

	updated, err := r.setStatusInTx(ctx, tx, transactionID, domain.StatusApproved, reviewerUserID, now)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RejectTransaction marks a pending transaction rejected. No balance effect.
func (r *PgxTransactionRepository) RejectTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockPendingTransaction(ctx, tx, transactionID); err != nil {
		return nil, err
	}

	updated, err := r.setStatusInTx(ctx, tx, transactionID, domain.StatusRejected, reviewerUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// lockPendingTransaction locks the transaction row and verifies it is still pending.
func (r *PgxTransactionRepository) lockPendingTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	txn, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrValidation, transactionID, txn.Status)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) setStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus, reviewerUserID string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1
		RETURNING ` + transactionColumns + `;
	`
	return scanTransaction(tx.QueryRow(ctx, query, transactionID, string(status), now, reviewerUserID))
}
