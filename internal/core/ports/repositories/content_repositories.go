package repositories

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// ContentReader defines read operations for static page content.
type ContentReader interface {
	// FindPageBySlug retrieves one content page.
	FindPageBySlug(ctx context.Context, slug string) (*domain.PageContent, error)

	// ListPages retrieves all content pages.
	ListPages(ctx context.Context) ([]domain.PageContent, error)
}

// ContentWriter defines write operations for static page content.
type ContentWriter interface {
	// UpsertPage creates or replaces a content page.
	UpsertPage(ctx context.Context, page domain.PageContent) error
}

// ContentRepositoryFacade combines the content repository interfaces.
type ContentRepositoryFacade interface {
	ContentReader
	ContentWriter
}
