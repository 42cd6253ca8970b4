package mapping

import (
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/models"
)

// ToModelPlan converts a domain Plan to a model Plan
func ToModelPlan(d domain.Plan) models.Plan {
	return models.Plan{
		PlanID:      d.PlanID,
		Name:        d.Name,
		DailyRate:   d.DailyRate,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlan converts a model Plan to a domain Plan
func ToDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		PlanID:      m.PlanID,
		Name:        m.Name,
		DailyRate:   m.DailyRate,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlanSlice converts a slice of model Plans to domain Plans
func ToDomainPlanSlice(ms []models.Plan) []domain.Plan {
	ds := make([]domain.Plan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlan(m)
	}
	return ds
}
