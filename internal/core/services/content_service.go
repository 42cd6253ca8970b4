package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

type contentService struct {
	contentRepo portsrepo.ContentRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewContentService creates a new ContentService.
func NewContentService(contentRepo portsrepo.ContentRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ContentSvcFacade {
	return &contentService{
		contentRepo: contentRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ContentSvcFacade = (*contentService)(nil)

func (s *contentService) GetPageBySlug(ctx context.Context, slug string) (*domain.PageContent, error) {
	return s.contentRepo.FindPageBySlug(ctx, slug)
}

func (s *contentService) ListPages(ctx context.Context) ([]domain.PageContent, error) {
	return s.contentRepo.ListPages(ctx)
}

// UpsertPage creates or replaces a content page. Administrator only.
func (s *contentService) UpsertPage(ctx context.Context, slug string, req dto.UpsertPageRequest, updaterUserID string) (*domain.PageContent, error) {
	if err := requireAdmin(ctx, s.accountRepo, updaterUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	page := domain.PageContent{
		Slug:  slug,
		Title: req.Title,
		Body:  req.Body,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.contentRepo.UpsertPage(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to upsert page %s: %w", slug, err)
	}
	return &page, nil
}
