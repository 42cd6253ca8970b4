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
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// accrualService applies daily yield to every enrolled account.
type accrualService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	planRepo    portsrepo.PlanReader
	yieldRepo   portsrepo.YieldRepositoryFacade
}

// NewAccrualService creates a new AccrualService.
func NewAccrualService(accountRepo portsrepo.AccountRepositoryFacade, planRepo portsrepo.PlanReader, yieldRepo portsrepo.YieldRepositoryFacade) portssvc.AccrualSvcFacade {
	return &accrualService{
		accountRepo: accountRepo,
		planRepo:    planRepo,
		yieldRepo:   yieldRepo,
	}
}

var _ portssvc.AccrualSvcFacade = (*accrualService)(nil)

// RunAccrualCycle executes one accrual pass over all enrolled accounts.
//
// Per account: accrued = balance * plan daily rate. A positive accrued amount
// is persisted as one yield record plus the balance update, atomically. A
// missing plan or a persistence failure puts the account on the Failed list
// and the cycle moves on; nothing short of context expiry stops the pass.
// Re-running within the same UTC day is absorbed by the per-day uniqueness of
// yield records and counted as skipped.
func (s *accrualService) RunAccrualCycle(ctx context.Context, triggeredByUserID string) (*domain.AccrualSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireAdmin(ctx, s.accountRepo, triggeredByUserID); err != nil {
		logger.Warn("Accrual cycle rejected", slog.String("triggered_by", triggeredByUserID), slog.String("error", err.Error()))
		return nil, err
	}

	accounts, err := s.accountRepo.ListEnrolledAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled accounts: %w", err)
	}

	planIDs := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if acc.HasPlan() {
			planIDs = append(planIDs, *acc.PlanID)
		}
	}
	plans, err := s.planRepo.FindPlansByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plans: %w", err)
	}

	now := time.Now().UTC()
	accrualDate := now.Truncate(24 * time.Hour)
	summary := &domain.AccrualSummary{Failed: []string{}}

	for _, acc := range accounts {
		// Deadline expiry aborts the cycle; unvisited accounts are neither
		// processed nor marked failed.
		if ctx.Err() != nil {
			logger.Warn("Accrual cycle aborted by context", slog.String("error", ctx.Err().Error()),
				slog.Int("processed", summary.Processed), slog.Int("skipped", summary.Skipped))
			return summary, nil
		}

		if !acc.HasPlan() {
			summary.Skipped++
			continue
		}

		plan, ok := plans[*acc.PlanID]
		if !ok {
			logger.Warn("Plan not found during accrual", slog.String("account_id", acc.AccountID), slog.String("plan_id", *acc.PlanID))
			summary.Failed = append(summary.Failed, acc.AccountID)
			continue
		}

		accrued := acc.Balance.Mul(plan.DailyRate)
		if accrued.Sign() <= 0 {
			summary.Skipped++
			continue
		}

		record := domain.YieldRecord{
			YieldID:     uuid.NewString(),
			AccountID:   acc.AccountID,
			Amount:      accrued,
			Source:      domain.YieldSourceAccrual,
			AccrualDate: accrualDate,
			CreatedAt:   now,
			CreatedBy:   triggeredByUserID,
		}

		if err := s.yieldRepo.SaveYieldRecordAndApply(ctx, record); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Already accrued today; the period key absorbs the re-run.
				summary.Skipped++
				continue
			}
			logger.Error("Failed to apply accrual", slog.String("account_id", acc.AccountID), slog.String("error", err.Error()))
			summary.Failed = append(summary.Failed, acc.AccountID)
			continue
		}

		summary.Processed++
	}

	logger.Info("Accrual cycle completed",
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", len(summary.Failed)),
	)
	return summary, nil
}

// ListOwnYieldRecords retrieves the caller's yield history.
func (s *accrualService) ListOwnYieldRecords(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.yieldRepo.ListYieldRecordsByAccountID(ctx, accountID, limit, nextToken)
}
