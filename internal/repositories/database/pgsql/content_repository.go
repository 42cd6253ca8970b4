package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	"github.com/rendaplus/rendaplus_backend/internal/models"
)

const pageColumns = `slug, title, body, created_at, created_by, last_updated_at, last_updated_by`

type PgxContentRepository struct {
	pool *pgxpool.Pool
}

// newPgxContentRepository creates a new repository for static page content.
func newPgxContentRepository(pool *pgxpool.Pool) portsrepo.ContentRepositoryFacade {
	return &PgxContentRepository{pool: pool}
}

var _ portsrepo.ContentRepositoryFacade = (*PgxContentRepository)(nil)

func scanPage(row pgx.Row) (*domain.PageContent, error) {
	var m models.PageContent
	err := row.Scan(&m.Slug, &m.Title, &m.Body, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan page content: %w", err)
	}
	return &domain.PageContent{
		Slug:  m.Slug,
		Title: m.Title,
		Body:  m.Body,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// FindPageBySlug retrieves one content page.
func (r *PgxContentRepository) FindPageBySlug(ctx context.Context, slug string) (*domain.PageContent, error) {
	query := `SELECT ` + pageColumns + ` FROM page_contents WHERE slug = $1;`
	return scanPage(r.pool.QueryRow(ctx, query, slug))
}

// ListPages retrieves all content pages.
func (r *PgxContentRepository) ListPages(ctx context.Context) ([]domain.PageContent, error) {
	query := `SELECT ` + pageColumns + ` FROM page_contents ORDER BY slug;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query page contents: %w", err)
	}
	defer rows.Close()

	var pages []domain.PageContent
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating page contents: %w", err)
	}
	return pages, nil
}

// UpsertPage creates or replaces a content page.
func (r *PgxContentRepository) UpsertPage(ctx context.Context, page domain.PageContent) error {
	query := `
		INSERT INTO page_contents (slug, title, body, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE
		SET title = EXCLUDED.title,
		    body = EXCLUDED.body,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		page.Slug,
		page.Title,
		page.Body,
		page.CreatedAt,
		page.CreatedBy,
		page.LastUpdatedAt,
		page.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page %s: %w", page.Slug, err)
	}
	return nil
}
