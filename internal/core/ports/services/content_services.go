package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

// ContentSvcFacade manages administrator-editable static pages.
type ContentSvcFacade interface {
	// GetPageBySlug retrieves one content page.
	GetPageBySlug(ctx context.Context, slug string) (*domain.PageContent, error)

	// ListPages retrieves all content pages.
	ListPages(ctx context.Context) ([]domain.PageContent, error)

	// UpsertPage creates or replaces a content page. Administrator only.
	UpsertPage(ctx context.Context, slug string, req dto.UpsertPageRequest, updaterUserID string) (*domain.PageContent, error)
}
