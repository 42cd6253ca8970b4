package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

// PlanReaderSvc defines read operations for investment plans.
type PlanReaderSvc interface {
	// GetPlanByID retrieves a specific plan.
	GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlans retrieves plans; non-admin callers only see active ones.
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.Plan, error)
}

// PlanWriterSvc defines administrator write operations for investment plans.
type PlanWriterSvc interface {
	// CreatePlan persists a new plan.
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest, creatorUserID string) (*domain.Plan, error)

	// UpdatePlan updates an existing plan's details.
	UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, updaterUserID string) (*domain.Plan, error)

	// DeactivatePlan marks a plan as inactive.
	DeactivatePlan(ctx context.Context, planID string, updaterUserID string) error
}

// PlanSvcFacade combines all plan-related service interfaces.
type PlanSvcFacade interface {
	PlanReaderSvc
	PlanWriterSvc
}
