package dto

import (
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// UpsertPageRequest creates or replaces a static content page.
type UpsertPageRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// PageContentResponse defines the data returned for a content page.
type PageContentResponse struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToPageContentResponse converts a domain.PageContent to its DTO.
func ToPageContentResponse(p *domain.PageContent) PageContentResponse {
	return PageContentResponse{
		Slug:          p.Slug,
		Title:         p.Title,
		Body:          p.Body,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}
