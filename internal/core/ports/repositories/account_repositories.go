package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByEmail retrieves an account by its login email.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)

	// FindAccountByReferralCode resolves a referral code to its owning account.
	FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByReferrerIDs lists accounts whose referrer is any of the given IDs.
	// Used by the referral network walk; results are grouped by referrer.
	FindAccountsByReferrerIDs(ctx context.Context, referrerIDs []string) (map[string][]domain.Account, error)

	// ListEnrolledAccounts retrieves all active accounts with a non-null plan reference.
	ListEnrolledAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for administrators.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account with its password hash.
	SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error

	// UpdateAccount updates an existing account's mutable details.
	// The referrer reference is fixed at registration and never updated here.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountPlan enrolls the account into a plan.
	SetAccountPlan(ctx context.Context, accountID string, planID string, userID string, now time.Time) error

	// IncrementReferralCount bumps the direct-referral counter of a referrer.
	IncrementReferralCount(ctx context.Context, accountID string, now time.Time) error

	// UpdateRefreshToken stores the hash and expiry of a freshly rotated refresh token.
	UpdateRefreshToken(ctx context.Context, accountID string, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken removes any stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, accountID string) error
}

// AccountCredentialReader exposes the password hash, needed only by the auth flow.
type AccountCredentialReader interface {
	// FindPasswordHashByEmail returns the account ID and password hash for a login attempt.
	FindPasswordHashByEmail(ctx context.Context, email string) (accountID string, passwordHash string, err error)

	// FindRefreshTokenState returns the stored refresh token hash and expiry for an account.
	FindRefreshTokenState(ctx context.Context, accountID string) (tokenHash string, expiresAt *time.Time, err error)
}

// AccountTransactionSupport defines operations used inside DB transactions.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx applies a signed balance delta within a given transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountCredentialReader
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
