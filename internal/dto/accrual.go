package dto

import (
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccrualSummaryResponse reports the outcome of one accrual cycle.
type AccrualSummaryResponse struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    []string `json:"failed"`
}

// YieldRecordResponse defines the data returned for one yield record.
type YieldRecordResponse struct {
	YieldID     string          `json:"yieldID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	AccrualDate time.Time       `json:"accrualDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListYieldRecordsResponse wraps a page of yield records.
type ListYieldRecordsResponse struct {
	Yields    []YieldRecordResponse `json:"yields"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToAccrualSummaryResponse converts a domain.AccrualSummary to its DTO.
func ToAccrualSummaryResponse(s *domain.AccrualSummary) AccrualSummaryResponse {
	failed := s.Failed
	if failed == nil {
		failed = []string{}
	}
	return AccrualSummaryResponse{Processed: s.Processed, Skipped: s.Skipped, Failed: failed}
}

// ToYieldRecordResponses converts a slice of yield records.
func ToYieldRecordResponses(records []domain.YieldRecord) []YieldRecordResponse {
	out := make([]YieldRecordResponse, len(records))
	for i, r := range records {
		out[i] = YieldRecordResponse{
			YieldID:     r.YieldID,
			AccountID:   r.AccountID,
			Amount:      r.Amount,
			Source:      r.Source,
			AccrualDate: r.AccrualDate,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}
