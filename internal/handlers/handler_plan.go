package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
)

// planHandler handles member-facing plan routes. Plan administration lives in
// the admin handler.
type planHandler struct {
	planSvc portssvc.PlanSvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planSvc: ps}
}

// registerPlanRoutes registers the member plan routes.
func registerPlanRoutes(rg *gin.RouterGroup, planSvc portssvc.PlanSvcFacade) {
	h := newPlanHandler(planSvc)

	plans := rg.Group("/plans")
	{
		plans.GET("", h.listPlans)
		plans.GET("/:id", h.getPlan)
	}
}

// listPlans godoc
// @Summary List investment plans
// @Description Retrieves plans open for enrollment
// @Tags plans
// @Produce  json
// @Success 200 {array} dto.PlanResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Members only see enrollable plans.
	plans, err := h.planSvc.ListPlans(c.Request.Context(), true)
	if err != nil {
		respondError(c, logger, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponses(plans))
}

// getPlan godoc
// @Summary Get a plan
// @Description Retrieves one investment plan
// @Tags plans
// @Produce  json
// @Param   id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	plan, err := h.planSvc.GetPlanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}
