package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	"github.com/rendaplus/rendaplus_backend/internal/models"
	"github.com/rendaplus/rendaplus_backend/internal/utils/mapping"
	"github.com/rendaplus/rendaplus_backend/internal/utils/pagination"
)

const yieldColumns = `yield_id, account_id, amount, source, accrual_date, created_at, created_by`

type PgxYieldRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxYieldRepository creates a new repository for yield records.
func newPgxYieldRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.YieldRepositoryFacade {
	return &PgxYieldRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.YieldRepositoryFacade = (*PgxYieldRepository)(nil)

func scanYieldRecord(row pgx.Row) (*domain.YieldRecord, error) {
	var m models.YieldRecord
	err := row.Scan(
		&m.YieldID,
		&m.AccountID,
		&m.Amount,
		&m.Source,
		&m.AccrualDate,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan yield record: %w", err)
	}
	y := mapping.ToDomainYieldRecord(m)
	return &y, nil
}

// SaveYieldRecordAndApply appends one yield record and adds its amount to the
// owning account's balance in a single database transaction. The account row
// is locked first so a concurrent deposit approval cannot interleave. The
// UNIQUE(account_id, accrual_date) index turns a same-day re-run into
// apperrors.ErrDuplicate before any balance change is committed.
func (r *PgxYieldRepository) SaveYieldRecordAndApply(ctx context.Context, record domain.YieldRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, record.AccountID); err != nil {
		return fmt.Errorf("failed to lock account %s for accrual: %w", record.AccountID, err)
	}

	m := mapping.ToModelYieldRecord(record)
	insertQuery := `
		INSERT INTO yield_records (yield_id, account_id, amount, source, accrual_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.YieldID,
		m.AccountID,
		m.Amount,
		m.Source,
		m.AccrualDate,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: yield already accrued for account %s on %s",
				apperrors.ErrDuplicate, m.AccountID, m.AccrualDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to insert yield record for account %s: %w", m.AccountID, err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, record.AccountID, record.Amount, record.CreatedBy, record.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ListYieldRecordsByAccountID retrieves an account's yield history newest
// first with cursor-token pagination.
func (r *PgxYieldRepository) ListYieldRecordsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error) {
	args := []any{accountID}
	query := `SELECT ` + yieldColumns + ` FROM yield_records WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, yield_id) < ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, yield_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query yield records for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var records []domain.YieldRecord
	for rows.Next() {
		y, err := scanYieldRecord(rows)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, *y)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating yield records: %w", err)
	}

	var newNextToken *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.YieldID)
		newNextToken = &token
	}
	return records, newNextToken, nil
}
