package services

import (
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/platform/config"
)

// NewServiceContainer wires every service facade against the repository
// provider. All cross-service collaboration happens through the repository
// layer, never service to service.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo, repos.PlanRepo),
		Plan:        NewPlanService(repos.PlanRepo, repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
		Accrual:     NewAccrualService(repos.AccountRepo, repos.PlanRepo, repos.YieldRepo),
		Referral:    NewReferralService(repos.AccountRepo, repos.TransactionRepo, repos.ReferralConfigRepo),
		Auth:        NewAuthService(repos.AccountRepo, cfg),
		Content:     NewContentService(repos.ContentRepo, repos.AccountRepo),
	}
}
