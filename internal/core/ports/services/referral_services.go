package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
)

// ReferralSvcFacade computes referral commission views and manages the
// per-level commission configuration.
type ReferralSvcFacade interface {
	// ComputeNetwork walks the root account's referral network two levels deep
	// and returns the full commission report. The call either returns a
	// complete report or an error; a partial network view is never produced.
	ComputeNetwork(ctx context.Context, rootAccountID string) (*domain.NetworkReport, error)

	// GetReferralConfigs returns the stored per-level percentages.
	GetReferralConfigs(ctx context.Context) ([]domain.ReferralConfig, error)

	// UpsertReferralConfig sets the commission percentage for one level.
	// Administrator only.
	UpsertReferralConfig(ctx context.Context, req dto.UpsertReferralConfigRequest, updaterUserID string) (*domain.ReferralConfig, error)
}
