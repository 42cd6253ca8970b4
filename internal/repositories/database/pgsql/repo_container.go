package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories into a single provider.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	planRepo := newPgxPlanRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	yieldRepo := newPgxYieldRepository(dbPool, accountRepo)
	referralConfigRepo := newPgxReferralConfigRepository(dbPool)
	contentRepo := newPgxContentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		PlanRepo:           planRepo,
		TransactionRepo:    transactionRepo,
		YieldRepo:          yieldRepo,
		ReferralConfigRepo: referralConfigRepo,
		ContentRepo:        contentRepo,
	}
}
