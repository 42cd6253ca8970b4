package services

import (
	"context"
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// AuthSvcFacade handles credential checks and token issuance.
type AuthSvcFacade interface {
	// Authenticate verifies an email/password pair and returns the account.
	Authenticate(ctx context.Context, email string, password string) (*domain.Account, error)

	// GenerateAccessToken creates a JWT access token for the account.
	GenerateAccessToken(ctx context.Context, account *domain.Account) (token string, expiresAt time.Time, err error)

	// GenerateRefreshToken creates and stores a rotated refresh token.
	GenerateRefreshToken(ctx context.Context, account *domain.Account) (token string, expiresAt time.Time, err error)

	// ValidateRefreshToken checks a presented refresh token and returns the
	// account it belongs to.
	ValidateRefreshToken(ctx context.Context, accountID string, refreshToken string) (*domain.Account, error)

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, accountID string) error
}
