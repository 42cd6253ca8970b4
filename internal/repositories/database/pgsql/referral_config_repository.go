package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	"github.com/rendaplus/rendaplus_backend/internal/models"
)

type PgxReferralConfigRepository struct {
	pool *pgxpool.Pool
}

// newPgxReferralConfigRepository creates a new repository for referral
// commission configuration.
func newPgxReferralConfigRepository(pool *pgxpool.Pool) portsrepo.ReferralConfigRepositoryFacade {
	return &PgxReferralConfigRepository{pool: pool}
}

var _ portsrepo.ReferralConfigRepositoryFacade = (*PgxReferralConfigRepository)(nil)

// FindReferralConfigs returns the stored per-level percentages keyed by level.
func (r *PgxReferralConfigRepository) FindReferralConfigs(ctx context.Context) (map[int]domain.ReferralConfig, error) {
	query := `SELECT level, percentage, created_at, created_by, last_updated_at, last_updated_by FROM referral_config ORDER BY level;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query referral config: %w", err)
	}
	defer rows.Close()

	result := make(map[int]domain.ReferralConfig)
	for rows.Next() {
		var m models.ReferralConfig
		if err := rows.Scan(&m.Level, &m.Percentage, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan referral config: %w", err)
		}
		result[m.Level] = domain.ReferralConfig{
			Level:      m.Level,
			Percentage: m.Percentage,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating referral config: %w", err)
	}
	return result, nil
}

// UpsertReferralConfig creates or replaces the percentage for one level.
func (r *PgxReferralConfigRepository) UpsertReferralConfig(ctx context.Context, config domain.ReferralConfig) error {
	query := `
		INSERT INTO referral_config (level, percentage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (level) DO UPDATE
		SET percentage = EXCLUDED.percentage,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		config.Level,
		config.Percentage,
		config.CreatedAt,
		config.CreatedBy,
		config.LastUpdatedAt,
		config.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert referral config level %d: %w", config.Level, err)
	}
	return nil
}
