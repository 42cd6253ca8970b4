package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated account listing for administrators.
	ListAccounts(ctx context.Context, callerUserID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// RegisterAccount creates a new account: generates its referral code,
	// resolves the optional input referral code to a referrer (registration is
	// the only moment the referrer reference is ever set) and stores the
	// bcrypt password hash.
	RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error)

	// EnrollInPlan sets the caller's investment plan.
	EnrollInPlan(ctx context.Context, accountID string, planID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
