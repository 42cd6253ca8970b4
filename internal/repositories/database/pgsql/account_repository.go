package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	"github.com/rendaplus/rendaplus_backend/internal/models"
	"github.com/rendaplus/rendaplus_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, email, balance, plan_id, referrer_id, referral_code, referral_count, is_admin, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Email,
		&m.Balance,
		&m.PlanID,
		&m.ReferrerID,
		&m.ReferralCode,
		&m.ReferralCount,
		&m.IsAdmin,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account along with its password hash.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error {
	m := mapping.ToModelAccount(account)
	m.PasswordHash = passwordHash

	query := `
		INSERT INTO accounts (account_id, name, email, password_hash, balance, plan_id, referrer_id, referral_code, referral_count, is_admin, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Balance,
		m.PlanID,
		m.ReferrerID,
		m.ReferralCode,
		m.ReferralCount,
		m.IsAdmin,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with this email or referral code already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND deleted_at IS NULL;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByEmail retrieves an account by its login email.
func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND deleted_at IS NULL;`
	return scanAccount(r.Pool.QueryRow(ctx, query, email))
}

// FindAccountByReferralCode resolves a referral code to its owning account.
func (r *PgxAccountRepository) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE referral_code = $1 AND deleted_at IS NULL;`
	return scanAccount(r.Pool.QueryRow(ctx, query, code))
}

// FindAccountsByReferrerIDs lists accounts referred by any of the given IDs,
// grouped by referrer, ordered by account ID for deterministic output.
func (r *PgxAccountRepository) FindAccountsByReferrerIDs(ctx context.Context, referrerIDs []string) (map[string][]domain.Account, error) {
	result := make(map[string][]domain.Account)
	if len(referrerIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE referrer_id = ANY($1) AND deleted_at IS NULL ORDER BY account_id;`
	rows, err := r.Pool.Query(ctx, query, referrerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by referrer: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		if acc.ReferrerID == nil {
			// referrer_id = ANY(...) matched, so this cannot happen
			continue
		}
		result[*acc.ReferrerID] = append(result[*acc.ReferrerID], *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating accounts by referrer: %w", err)
	}
	return result, nil
}

// ListEnrolledAccounts retrieves all active accounts with a non-null plan reference.
func (r *PgxAccountRepository) ListEnrolledAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE plan_id IS NOT NULL AND is_active = TRUE AND deleted_at IS NULL ORDER BY account_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating enrolled accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE deleted_at IS NULL ORDER BY created_at DESC, account_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's mutable details. The referrer
// reference and referral code are deliberately not part of this statement.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountPlan enrolls the account into a plan.
func (r *PgxAccountRepository) SetAccountPlan(ctx context.Context, accountID string, planID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET plan_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, planID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set plan for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementReferralCount bumps the direct-referral counter of a referrer.
func (r *PgxAccountRepository) IncrementReferralCount(ctx context.Context, accountID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET referral_count = referral_count + 1, last_updated_at = $2
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now)
	if err != nil {
		return fmt.Errorf("failed to increment referral count for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPasswordHashByEmail returns the account ID and password hash for a login attempt.
func (r *PgxAccountRepository) FindPasswordHashByEmail(ctx context.Context, email string) (string, string, error) {
	query := `SELECT account_id, password_hash FROM accounts WHERE email = $1 AND deleted_at IS NULL;`
	var accountID, passwordHash string
	err := r.Pool.QueryRow(ctx, query, email).Scan(&accountID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", apperrors.ErrNotFound
		}
		return "", "", fmt.Errorf("failed to query credentials: %w", err)
	}
	return accountID, passwordHash, nil
}

// FindRefreshTokenState returns the stored refresh token hash and expiry for an account.
func (r *PgxAccountRepository) FindRefreshTokenState(ctx context.Context, accountID string) (string, *time.Time, error) {
	query := `SELECT refresh_token_hash, refresh_token_expiry_time FROM accounts WHERE account_id = $1 AND deleted_at IS NULL;`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(&m.RefreshTokenHash, &m.RefreshTokenExpiryTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to query refresh token state: %w", err)
	}
	if !m.RefreshTokenHash.Valid {
		return "", nil, nil
	}
	var expiresAt *time.Time
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		expiresAt = &t
	}
	return m.RefreshTokenHash.String, expiresAt, nil
}

// UpdateRefreshToken stores the hash and expiry of a freshly rotated refresh token.
func (r *PgxAccountRepository) UpdateRefreshToken(ctx context.Context, accountID string, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE accounts
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearRefreshToken removes any stored refresh token (logout).
func (r *PgxAccountRepository) ClearRefreshToken(ctx context.Context, accountID string) error {
	query := `
		UPDATE accounts
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	if _, err := r.Pool.Exec(ctx, query, accountID); err != nil {
		return fmt.Errorf("failed to clear refresh token for account %s: %w", accountID, err)
	}
	return nil
}

// FindAccountByIDForUpdate selects an account and locks its row within a transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	return scanAccount(tx.QueryRow(ctx, query, accountID))
}

// UpdateAccountBalanceInTx applies a signed balance delta within a given transaction.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, accountID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
