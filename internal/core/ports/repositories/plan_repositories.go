package repositories

import (
	"context"
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// PlanReader defines read operations for investment plan data.
type PlanReader interface {
	// FindPlanByID retrieves a specific plan by its unique identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// FindPlansByIDs retrieves multiple plans keyed by ID. Missing IDs are
	// simply absent from the result; the caller decides whether that is fatal.
	FindPlansByIDs(ctx context.Context, planIDs []string) (map[string]domain.Plan, error)

	// ListPlans retrieves all plans, optionally restricted to active ones.
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.Plan, error)
}

// PlanWriter defines write operations for investment plan data.
type PlanWriter interface {
	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error

	// UpdatePlan updates an existing plan's details.
	UpdatePlan(ctx context.Context, plan domain.Plan) error

	// DeactivatePlan marks a plan as inactive.
	DeactivatePlan(ctx context.Context, planID string, userID string, now time.Time) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces.
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
}
