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
)

const planColumns = `plan_id, name, daily_rate, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPlanRepository struct {
	pool *pgxpool.Pool
}

// newPgxPlanRepository creates a new repository for investment plan data.
func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{pool: pool}
}

var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var m models.Plan
	err := row.Scan(
		&m.PlanID,
		&m.Name,
		&m.DailyRate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}
	p := mapping.ToDomainPlan(m)
	return &p, nil
}

// SavePlan persists a new plan.
func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	m := mapping.ToModelPlan(plan)
	query := `
		INSERT INTO plans (plan_id, name, daily_rate, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PlanID,
		m.Name,
		m.DailyRate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: plan with ID %s already exists", apperrors.ErrDuplicate, m.PlanID)
		}
		return fmt.Errorf("failed to save plan %s: %w", m.PlanID, err)
	}
	return nil
}

// FindPlanByID retrieves a plan by its ID.
func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1;`
	return scanPlan(r.pool.QueryRow(ctx, query, planID))
}

// FindPlansByIDs retrieves multiple plans keyed by ID. Missing IDs are absent
// from the result map, not an error.
func (r *PgxPlanRepository) FindPlansByIDs(ctx context.Context, planIDs []string) (map[string]domain.Plan, error) {
	result := make(map[string]domain.Plan)
	if len(planIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result[p.PlanID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating plans: %w", err)
	}
	return result, nil
}

// ListPlans retrieves all plans, optionally restricted to active ones.
func (r *PgxPlanRepository) ListPlans(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at, plan_id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan updates an existing plan's details.
func (r *PgxPlanRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, daily_rate = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE plan_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		plan.PlanID,
		plan.Name,
		plan.DailyRate,
		plan.IsActive,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", plan.PlanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePlan marks a plan as inactive.
func (r *PgxPlanRepository) DeactivatePlan(ctx context.Context, planID string, userID string, now time.Time) error {
	query := `
		UPDATE plans
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE plan_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, planID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate plan %s: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
