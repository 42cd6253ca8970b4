package services

// ServiceContainer aggregates all service facades for dependency injection
// into the HTTP layer.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Plan        PlanSvcFacade
	Transaction TransactionSvcFacade
	Accrual     AccrualSvcFacade
	Referral    ReferralSvcFacade
	Auth        AuthSvcFacade
	Content     ContentSvcFacade
}
