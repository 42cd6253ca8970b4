package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// contentHandler serves the public static content pages.
type contentHandler struct {
	contentSvc portssvc.ContentSvcFacade
}

func newContentHandler(cs portssvc.ContentSvcFacade) *contentHandler {
	return &contentHandler{contentSvc: cs}
}

// registerContentRoutes registers the public page routes on the engine root.
func registerContentRoutes(r *gin.Engine, contentSvc portssvc.ContentSvcFacade) {
	h := newContentHandler(contentSvc)

	pages := r.Group("/pages")
	{
		pages.GET("", h.listPages)
		pages.GET("/:slug", h.getPage)
	}
}

// listPages godoc
// @Summary List content pages
// @Description Retrieves all published content pages
// @Tags pages
// @Produce  json
// @Success 200 {array} dto.PageContentResponse
// @Router /pages [get]
func (h *contentHandler) listPages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	pages, err := h.contentSvc.ListPages(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list pages")
		return
	}

	out := make([]dto.PageContentResponse, len(pages))
	for i := range pages {
		out[i] = dto.ToPageContentResponse(&pages[i])
	}
	c.JSON(http.StatusOK, out)
}

// getPage godoc
// @Summary Get a content page
// @Description Retrieves one content page by slug
// @Tags pages
// @Produce  json
// @Param   slug path string true "Page slug"
// @Success 200 {object} dto.PageContentResponse
// @Failure 404 {object} map[string]string "Page not found"
// @Router /pages/{slug} [get]
func (h *contentHandler) getPage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	page, err := h.contentSvc.GetPageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve page")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageContentResponse(page))
}
