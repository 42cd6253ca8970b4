package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
	"github.com/rendaplus/rendaplus_backend/internal/platform/config"
	"github.com/rendaplus/rendaplus_backend/internal/utils"
)

// refreshTokenBytes is the entropy of a raw refresh token before hashing.
const refreshTokenBytes = 32

type authService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	cfg         *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(accountRepo portsrepo.AccountRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, email string, password string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountID, passwordHash, err := s.accountRepo.FindPasswordHashByEmail(ctx, email)
	if err != nil {
		logger.Warn("login attempt for unknown email")
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, passwordHash) {
		logger.Warn("login attempt with wrong password", slog.String("accountID", accountID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account disabled: %w", apperrors.ErrForbidden)
	}
	return account, nil
}

// GenerateAccessToken creates a short-lived JWT for the account.
func (s *authService) GenerateAccessToken(_ context.Context, account *domain.Account) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(account.AccountID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken mints a new refresh token and stores its hash,
// replacing whatever token was stored before (rotation).
func (s *authService) GenerateRefreshToken(ctx context.Context, account *domain.Account) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.accountRepo.UpdateRefreshToken(ctx, account.AccountID, utils.HashRefreshToken(raw), expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, expiresAt, nil
}

// ValidateRefreshToken checks a presented refresh token against the stored
// hash and expiry.
func (s *authService) ValidateRefreshToken(ctx context.Context, accountID string, refreshToken string) (*domain.Account, error) {
	storedHash, expiresAt, err := s.accountRepo.FindRefreshTokenState(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}
	if storedHash == "" || !utils.CompareRefreshTokenHash(refreshToken, storedHash) {
		return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}
	if expiresAt == nil || time.Now().UTC().After(*expiresAt) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ClearRefreshToken removes the stored refresh token (logout).
func (s *authService) ClearRefreshToken(ctx context.Context, accountID string) error {
	return s.accountRepo.ClearRefreshToken(ctx, accountID)
}
