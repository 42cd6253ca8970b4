package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

type planService struct {
	planRepo    portsrepo.PlanRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewPlanService creates a new PlanService.
func NewPlanService(planRepo portsrepo.PlanRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.PlanSvcFacade {
	return &planService{
		planRepo:    planRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

// GetPlanByID retrieves a plan.
func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	return s.planRepo.FindPlanByID(ctx, planID)
}

// ListPlans retrieves plans, optionally restricted to active ones.
func (s *planService) ListPlans(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	return s.planRepo.ListPlans(ctx, activeOnly)
}

// CreatePlan persists a new investment plan. Administrator only. The daily
// rate is accepted as-is: zero and negative rates are legal and simply make
// the plan inert during accrual.
func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, creatorUserID string) (*domain.Plan, error) {
	if err := requireAdmin(ctx, s.accountRepo, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := domain.Plan{
		PlanID:    uuid.NewString(),
		Name:      req.Name,
		DailyRate: req.DailyRate,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("plan created",
		slog.String("planID", plan.PlanID),
		slog.String("dailyRate", plan.DailyRate.String()))
	return &plan, nil
}

// UpdatePlan applies partial updates to an existing plan. Administrator only.
func (s *planService) UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, updaterUserID string) (*domain.Plan, error) {
	if err := requireAdmin(ctx, s.accountRepo, updaterUserID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.DailyRate != nil {
		plan.DailyRate = *req.DailyRate
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	plan.LastUpdatedAt = time.Now().UTC()
	plan.LastUpdatedBy = updaterUserID

	if err := s.planRepo.UpdatePlan(ctx, *plan); err != nil {
		return nil, fmt.Errorf("failed to update plan %s: %w", planID, err)
	}
	return plan, nil
}

// DeactivatePlan closes a plan to new enrollment. Accounts already enrolled
// keep accruing; deactivation only blocks future enrollment.
func (s *planService) DeactivatePlan(ctx context.Context, planID string, updaterUserID string) error {
	if err := requireAdmin(ctx, s.accountRepo, updaterUserID); err != nil {
		return err
	}
	if err := s.planRepo.DeactivatePlan(ctx, planID, updaterUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate plan %s: %w", planID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("plan deactivated", slog.String("planID", planID))
	return nil
}
