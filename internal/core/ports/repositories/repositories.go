package repositories

// RepositoryProvider aggregates all repository facades for dependency injection.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryWithTx
	PlanRepo           PlanRepositoryFacade
	TransactionRepo    TransactionRepositoryFacade
	YieldRepo          YieldRepositoryFacade
	ReferralConfigRepo ReferralConfigRepositoryFacade
	ContentRepo        ContentRepositoryFacade
}
