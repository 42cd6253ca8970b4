package repositories

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// ReferralConfigReader defines read operations for referral commission configuration.
type ReferralConfigReader interface {
	// FindReferralConfigs returns the stored per-level commission percentages
	// keyed by level. Missing levels are simply absent; callers treat them as zero.
	FindReferralConfigs(ctx context.Context) (map[int]domain.ReferralConfig, error)
}

// ReferralConfigWriter defines write operations for referral commission configuration.
type ReferralConfigWriter interface {
	// UpsertReferralConfig creates or replaces the percentage for one level.
	UpsertReferralConfig(ctx context.Context, config domain.ReferralConfig) error
}

// ReferralConfigRepositoryFacade combines the referral config repository interfaces.
type ReferralConfigRepositoryFacade interface {
	ReferralConfigReader
	ReferralConfigWriter
}
