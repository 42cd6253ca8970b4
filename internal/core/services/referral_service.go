package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// one hundred, for converting stored percentages into fractions
var hundred = decimal.NewFromInt(100)

// referralService computes two-level commission views over the referral tree.
type referralService struct {
	accountRepo        portsrepo.AccountRepositoryFacade
	transactionRepo    portsrepo.TransactionReader
	referralConfigRepo portsrepo.ReferralConfigRepositoryFacade
}

// NewReferralService creates a new ReferralService.
func NewReferralService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionReader, referralConfigRepo portsrepo.ReferralConfigRepositoryFacade) portssvc.ReferralSvcFacade {
	return &referralService{
		accountRepo:        accountRepo,
		transactionRepo:    transactionRepo,
		referralConfigRepo: referralConfigRepo,
	}
}

var _ portssvc.ReferralSvcFacade = (*referralService)(nil)

// ComputeNetwork walks the root account's referral tree breadth-first down to
// domain.MaxReferralDepth and prices every referred account's approved
// commissionable volume at that level's percentage. The computation is a pure
// read of persisted state: no caching, full recomputation per call. Any
// sub-query failure fails the whole call; a partial commission report would
// mislead the member reading it.
func (s *referralService) ComputeNetwork(ctx context.Context, rootAccountID string) (*domain.NetworkReport, error) {
	// The root must exist; a dangling root is a data-integrity failure.
	if _, err := s.accountRepo.FindAccountByID(ctx, rootAccountID); err != nil {
		return nil, fmt.Errorf("failed to resolve network root %s: %w", rootAccountID, err)
	}

	configs, err := s.referralConfigRepo.FindReferralConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load referral config: %w", err)
	}

	report := &domain.NetworkReport{
		Level1:      []domain.NetworkEntry{},
		Level1Total: decimal.Zero,
		Level2:      []domain.NetworkEntry{},
		Level2Total: decimal.Zero,
	}

	parentIDs := []string{rootAccountID}
	for level := 1; level <= domain.MaxReferralDepth; level++ {
		accounts, err := s.fetchLevel(ctx, level, parentIDs)
		if err != nil {
			return nil, err
		}

		entries, total, err := s.priceLevel(ctx, accounts, percentageForLevel(configs, level))
		if err != nil {
			return nil, fmt.Errorf("failed to price level %d: %w", level, err)
		}

		switch level {
		case 1:
			report.Level1, report.Level1Total = entries, total
		case 2:
			report.Level2, report.Level2Total = entries, total
		}

		parentIDs = make([]string, len(accounts))
		for i, acc := range accounts {
			parentIDs[i] = acc.AccountID
		}
		if len(parentIDs) == 0 {
			break
		}
	}

	return report, nil
}

// fetchLevel loads all accounts referred by the given parents. Beyond the
// first level the per-parent sub-queries are independent pure reads, so they
// run concurrently and join before returning.
func (s *referralService) fetchLevel(ctx context.Context, level int, parentIDs []string) ([]domain.Account, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var accounts []domain.Account
	if level == 1 || len(parentIDs) == 1 {
		grouped, err := s.accountRepo.FindAccountsByReferrerIDs(ctx, parentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch level %d referrals: %w", level, err)
		}
		for _, group := range grouped {
			accounts = append(accounts, group...)
		}
	} else {
		var mu sync.Mutex
		g, gCtx := errgroup.WithContext(ctx)
		for _, parentID := range parentIDs {
			parentID := parentID
			g.Go(func() error {
				grouped, err := s.accountRepo.FindAccountsByReferrerIDs(gCtx, []string{parentID})
				if err != nil {
					return fmt.Errorf("failed to fetch level %d referrals of %s: %w", level, parentID, err)
				}
				mu.Lock()
				defer mu.Unlock()
				for _, group := range grouped {
					accounts = append(accounts, group...)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// Stable output regardless of fetch interleaving.
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountID < accounts[j].AccountID
	})
	return accounts, nil
}

// priceLevel sums each account's approved commissionable volume and applies
// the level percentage. Accounts with no approved transactions stay in the
// listing with zero volume and zero commission.
func (s *referralService) priceLevel(ctx context.Context, accounts []domain.Account, percentage decimal.Decimal) ([]domain.NetworkEntry, decimal.Decimal, error) {
	entries := make([]domain.NetworkEntry, 0, len(accounts))
	total := decimal.Zero
	if len(accounts) == 0 {
		return entries, total, nil
	}

	accountIDs := make([]string, len(accounts))
	for i, acc := range accounts {
		accountIDs[i] = acc.AccountID
	}

	volumes, err := s.transactionRepo.SumApprovedAmountsByAccountIDs(ctx, accountIDs, domain.CommissionableTypes())
	if err != nil {
		return nil, decimal.Zero, err
	}

	rate := percentage.Div(hundred)
	for _, acc := range accounts {
		volume, ok := volumes[acc.AccountID]
		if !ok {
			volume = decimal.Zero
		}
		commission := volume.Mul(rate)
		entries = append(entries, domain.NetworkEntry{
			AccountID:  acc.AccountID,
			Name:       acc.Name,
			Volume:     volume,
			Commission: commission,
		})
		total = total.Add(commission)
	}
	return entries, total, nil
}

// percentageForLevel returns the stored percentage, or zero when the level has
// no config. Missing configuration never fails the computation.
func percentageForLevel(configs map[int]domain.ReferralConfig, level int) decimal.Decimal {
	if cfg, ok := configs[level]; ok {
		return cfg.Percentage
	}
	return decimal.Zero
}

// GetReferralConfigs returns the stored per-level percentages ordered by level.
func (s *referralService) GetReferralConfigs(ctx context.Context) ([]domain.ReferralConfig, error) {
	configs, err := s.referralConfigRepo.FindReferralConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load referral config: %w", err)
	}
	out := make([]domain.ReferralConfig, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

// UpsertReferralConfig sets the commission percentage for one level.
func (s *referralService) UpsertReferralConfig(ctx context.Context, req dto.UpsertReferralConfigRequest, updaterUserID string) (*domain.ReferralConfig, error) {
	if err := requireAdmin(ctx, s.accountRepo, updaterUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cfg := domain.ReferralConfig{
		Level:      req.Level,
		Percentage: req.Percentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.referralConfigRepo.UpsertReferralConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
