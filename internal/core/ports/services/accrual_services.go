package services

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// AccrualSvcFacade is the yield accrual engine. One invocation applies yield to
// every enrolled account: accrued = balance * plan daily rate, persisted as a
// yield record plus balance update atomically per account. A single account's
// failure never blocks the rest of the cycle.
type AccrualSvcFacade interface {
	// RunAccrualCycle executes one accrual pass. The caller must already be
	// verified as an administrator (or the system scheduler actor); the
	// service re-checks the flag and returns apperrors.ErrForbidden otherwise.
	// The returned summary is always complete for the accounts visited, even
	// when some of them failed.
	RunAccrualCycle(ctx context.Context, triggeredByUserID string) (*domain.AccrualSummary, error)

	// ListOwnYieldRecords retrieves the caller's yield history.
	ListOwnYieldRecords(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error)
}
