package mapping

import (
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/models"
)

// ToModelYieldRecord converts a domain YieldRecord to a model YieldRecord
func ToModelYieldRecord(d domain.YieldRecord) models.YieldRecord {
	return models.YieldRecord{
		YieldID:     d.YieldID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Source:      d.Source,
		AccrualDate: d.AccrualDate,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainYieldRecord converts a model YieldRecord to a domain YieldRecord
func ToDomainYieldRecord(m models.YieldRecord) domain.YieldRecord {
	return domain.YieldRecord{
		YieldID:     m.YieldID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Source:      m.Source,
		AccrualDate: m.AccrualDate,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainYieldRecordSlice converts a slice of model YieldRecords to domain YieldRecords
func ToDomainYieldRecordSlice(ms []models.YieldRecord) []domain.YieldRecord {
	ds := make([]domain.YieldRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainYieldRecord(m)
	}
	return ds
}
