package repositories

import (
	"context"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
)

// YieldReader defines read operations for yield history.
type YieldReader interface {
	// ListYieldRecordsByAccountID retrieves an account's yield history newest
	// first, with cursor-token pagination.
	ListYieldRecordsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error)
}

// YieldWriter defines write operations for yield records.
type YieldWriter interface {
	// SaveYieldRecordAndApply appends one yield record and adds its amount to
	// the owning account's balance within a single database transaction. The
	// account row is locked for the duration so a concurrent deposit approval
	// cannot produce a lost update. Returns apperrors.ErrDuplicate when a
	// record for the same account and accrual date already exists.
	SaveYieldRecordAndApply(ctx context.Context, record domain.YieldRecord) error
}

// YieldRepositoryFacade combines all yield-related repository interfaces.
type YieldRepositoryFacade interface {
	YieldReader
	YieldWriter
}
