package services

import (
	"context"
	"errors"
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
	"github.com/rendaplus/rendaplus_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// referralCodeAttempts bounds retries when a freshly generated code collides
// with an existing one.
const referralCodeAttempts = 5

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	planRepo    portsrepo.PlanReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, planRepo portsrepo.PlanReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		planRepo:    planRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// RegisterAccount creates a new member account. The optional referral code is
// resolved to its owning account here and never again: the referrer reference
// is immutable after registration, which keeps the referral graph acyclic
// (an account can only point at an account that already existed).
func (s *accountService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var referrer *domain.Account
	if req.ReferralCode != "" {
		referrer, err = s.accountRepo.FindAccountByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown referral code %q: %w", req.ReferralCode, apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to resolve referral code: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Balance:       decimal.Zero,
		ReferralCount: 0,
		IsAdmin:       false,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     SystemActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: SystemActorID,
		},
	}
	if referrer != nil {
		account.ReferrerID = &referrer.AccountID
	}

	if err := s.saveWithFreshCode(ctx, &account, passwordHash); err != nil {
		return nil, err
	}

	if referrer != nil {
		if err := s.accountRepo.IncrementReferralCount(ctx, referrer.AccountID, now); err != nil {
			// The account exists; a stale counter is recoverable, a failed
			// registration is not.
			logger.Error("failed to increment referral count",
				slog.String("referrerID", referrer.AccountID),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("account registered",
		slog.String("accountID", account.AccountID),
		slog.Bool("referred", referrer != nil))
	return &account, nil
}

// saveWithFreshCode persists the account, regenerating the referral code on
// the unlikely event of a code collision. A duplicate email surfaces as-is.
func (s *accountService) saveWithFreshCode(ctx context.Context, account *domain.Account, passwordHash string) error {
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return fmt.Errorf("failed to generate referral code: %w", err)
		}
		account.ReferralCode = code

		err = s.accountRepo.SaveAccount(ctx, *account, passwordHash)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Email duplicates are the caller's problem; only a code
			// collision earns a retry.
			if _, lookupErr := s.accountRepo.FindAccountByEmail(ctx, account.Email); lookupErr == nil {
				return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
			}
			continue
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return fmt.Errorf("failed to allocate a unique referral code after %d attempts", referralCodeAttempts)
}

// EnrollInPlan sets the caller's investment plan. Only active plans can be
// enrolled into; enrollment replaces any previous plan.
func (s *accountService) EnrollInPlan(ctx context.Context, accountID string, planID string) (*domain.Account, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan %s: %w", planID, err)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("plan %s is not open for enrollment: %w", planID, apperrors.ErrValidation)
	}

	if err := s.accountRepo.SetAccountPlan(ctx, accountID, planID, accountID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to enroll account %s: %w", accountID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("account enrolled in plan",
		slog.String("accountID", accountID),
		slog.String("planID", planID))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves a paginated account listing. Administrator only.
func (s *accountService) ListAccounts(ctx context.Context, callerUserID string, limit int, offset int) ([]domain.Account, error) {
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
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}
