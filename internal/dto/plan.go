package dto

import (
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines the data needed to create an investment plan.
// DailyRate may be zero or negative; such plans are inert during accrual.
type CreatePlanRequest struct {
	Name      string          `json:"name" binding:"required"`
	DailyRate decimal.Decimal `json:"dailyRate" binding:"required"`
}

// UpdatePlanRequest defines the data allowed for updating a plan.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePlanRequest struct {
	Name      *string          `json:"name"`
	DailyRate *decimal.Decimal `json:"dailyRate"`
	IsActive  *bool            `json:"isActive"`
}

// PlanResponse defines the data returned for a plan.
type PlanResponse struct {
	PlanID    string          `json:"planID"`
	Name      string          `json:"name"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToPlanResponse converts a domain.Plan to PlanResponse DTO.
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:    p.PlanID,
		Name:      p.Name,
		DailyRate: p.DailyRate,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// ToPlanResponses converts a slice of plans.
func ToPlanResponses(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = ToPlanResponse(&plans[i])
	}
	return out
}
