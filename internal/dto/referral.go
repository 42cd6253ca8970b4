package dto

import (
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertReferralConfigRequest sets the commission percentage for one level.
type UpsertReferralConfigRequest struct {
	Level      int             `json:"level" binding:"required,min=1,max=2"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

// ReferralConfigResponse defines the data returned for one level's config.
type ReferralConfigResponse struct {
	Level      int             `json:"level"`
	Percentage decimal.Decimal `json:"percentage"`
}

// NetworkEntryResponse is one referred account's line in a network report.
type NetworkEntryResponse struct {
	AccountID  string          `json:"accountID"`
	Name       string          `json:"name"`
	Volume     decimal.Decimal `json:"volume"`
	Commission decimal.Decimal `json:"commission"`
}

// NetworkReportResponse is the full two-level commission view.
type NetworkReportResponse struct {
	Level1      []NetworkEntryResponse `json:"level1"`
	Level1Total decimal.Decimal        `json:"level1Total"`
	Level2      []NetworkEntryResponse `json:"level2"`
	Level2Total decimal.Decimal        `json:"level2Total"`
}

// ToReferralConfigResponse converts a domain.ReferralConfig to its DTO.
func ToReferralConfigResponse(c *domain.ReferralConfig) ReferralConfigResponse {
	return ReferralConfigResponse{Level: c.Level, Percentage: c.Percentage}
}

// ToNetworkReportResponse converts a domain.NetworkReport to its DTO.
func ToNetworkReportResponse(r *domain.NetworkReport) NetworkReportResponse {
	return NetworkReportResponse{
		Level1:      toNetworkEntryResponses(r.Level1),
		Level1Total: r.Level1Total,
		Level2:      toNetworkEntryResponses(r.Level2),
		Level2Total: r.Level2Total,
	}
}

func toNetworkEntryResponses(entries []domain.NetworkEntry) []NetworkEntryResponse {
	out := make([]NetworkEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = NetworkEntryResponse{
			AccountID:  e.AccountID,
			Name:       e.Name,
			Volume:     e.Volume,
			Commission: e.Commission,
		}
	}
	return out
}
