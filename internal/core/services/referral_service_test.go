package services_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/core/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReferralServiceTestSuite struct {
	suite.Suite
	mockAccountRepo     *MockAccountRepository
	mockTransactionRepo *MockTransactionRepository
	mockConfigRepo      *MockReferralConfigRepository
	service             portssvc.ReferralSvcFacade
}

func (suite *ReferralServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockConfigRepo = new(MockReferralConfigRepository)
	suite.service = services.NewReferralService(suite.mockAccountRepo, suite.mockTransactionRepo, suite.mockConfigRepo)
}

func standardConfigs() map[int]domain.ReferralConfig {
	return map[int]domain.ReferralConfig{
		1: {Level: 1, Percentage: decimal.RequireFromString("5")},
		2: {Level: 2, Percentage: decimal.RequireFromString("2")},
	}
}

func (suite *ReferralServiceTestSuite) TestComputeNetwork_TwoLevels() {
	ctx := context.Background()
	rootID := uuid.NewString()
	root := &domain.Account{AccountID: rootID, Name: "Root", IsActive: true}

	l1a := domain.Account{AccountID: "a-" + uuid.NewString(), Name: "Alice", ReferrerID: &rootID}
	l1b := domain.Account{AccountID: "b-" + uuid.NewString(), Name: "Bruno", ReferrerID: &rootID}
	l2a := domain.Account{AccountID: "c-" + uuid.NewString(), Name: "Carla", ReferrerID: &l1a.AccountID}
	l2b := domain.Account{AccountID: "d-" + uuid.NewString(), Name: "Diego", ReferrerID: &l1b.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(root, nil).Once()
	suite.mockConfigRepo.On("FindReferralConfigs", ctx).Return(standardConfigs(), nil).Once()

	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", ctx, []string{rootID}).Return(map[string][]domain.Account{
		rootID: {l1a, l1b},
	}, nil).Once()

	// Level 2 is fetched per parent, possibly concurrently and with a derived context.
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", mock.Anything, []string{l1a.AccountID}).Return(map[string][]domain.Account{
		l1a.AccountID: {l2a},
	}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", mock.Anything, []string{l1b.AccountID}).Return(map[string][]domain.Account{
		l1b.AccountID: {l2b},
	}, nil).Once()

	// Alice deposited 1000 approved; Bruno has no transactions and must still
	// appear with zero volume.
	suite.mockTransactionRepo.On("SumApprovedAmountsByAccountIDs", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2 && containsAll(ids, l1a.AccountID, l1b.AccountID)
	}), domain.CommissionableTypes()).Return(map[string]decimal.Decimal{
		l1a.AccountID: decimal.RequireFromString("1000"),
	}, nil).Once()
	suite.mockTransactionRepo.On("SumApprovedAmountsByAccountIDs", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2 && containsAll(ids, l2a.AccountID, l2b.AccountID)
	}), domain.CommissionableTypes()).Return(map[string]decimal.Decimal{
		l2a.AccountID: decimal.RequireFromString("500"),
		l2b.AccountID: decimal.RequireFromString("250"),
	}, nil).Once()

	report, err := suite.service.ComputeNetwork(ctx, rootID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Level1, 2)
	suite.Require().Len(report.Level2, 2)

	// Entries come back ordered by account ID.
	suite.True(sort.SliceIsSorted(report.Level1, func(i, j int) bool {
		return report.Level1[i].AccountID < report.Level1[j].AccountID
	}))

	byID := map[string]domain.NetworkEntry{}
	for _, e := range append(report.Level1, report.Level2...) {
		byID[e.AccountID] = e
	}

	// 1000 at 5% -> 50
	suite.True(byID[l1a.AccountID].Commission.Equal(decimal.RequireFromString("50")))
	// No transactions -> zero volume, zero commission, still listed
	suite.True(byID[l1b.AccountID].Volume.IsZero())
	suite.True(byID[l1b.AccountID].Commission.IsZero())
	// 500 at 2% -> 10, 250 at 2% -> 5
	suite.True(byID[l2a.AccountID].Commission.Equal(decimal.RequireFromString("10")))
	suite.True(byID[l2b.AccountID].Commission.Equal(decimal.RequireFromString("5")))

	// Totals equal the sum of their level's commissions.
	suite.True(report.Level1Total.Equal(decimal.RequireFromString("50")))
	suite.True(report.Level2Total.Equal(decimal.RequireFromString("15")))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *ReferralServiceTestSuite) TestComputeNetwork_MissingLevelConfigMeansZeroCommission() {
	ctx := context.Background()
	rootID := uuid.NewString()
	root := &domain.Account{AccountID: rootID, IsActive: true}
	child := domain.Account{AccountID: uuid.NewString(), Name: "Solo", ReferrerID: &rootID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(root, nil).Once()
	// No config stored at all.
	suite.mockConfigRepo.On("FindReferralConfigs", ctx).Return(map[int]domain.ReferralConfig{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", ctx, []string{rootID}).Return(map[string][]domain.Account{
		rootID: {child},
	}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", mock.Anything, []string{child.AccountID}).
		Return(map[string][]domain.Account{}, nil).Once()
	suite.mockTransactionRepo.On("SumApprovedAmountsByAccountIDs", ctx, []string{child.AccountID}, domain.CommissionableTypes()).
		Return(map[string]decimal.Decimal{child.AccountID: decimal.RequireFromString("800")}, nil).Once()

	report, err := suite.service.ComputeNetwork(ctx, rootID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Level1, 1)
	suite.True(report.Level1[0].Volume.Equal(decimal.RequireFromString("800")))
	suite.True(report.Level1[0].Commission.IsZero())
	suite.True(report.Level1Total.IsZero())
}

func (suite *ReferralServiceTestSuite) TestComputeNetwork_EmptyNetwork() {
	ctx := context.Background()
	rootID := uuid.NewString()
	root := &domain.Account{AccountID: rootID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(root, nil).Once()
	suite.mockConfigRepo.On("FindReferralConfigs", ctx).Return(standardConfigs(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", ctx, []string{rootID}).
		Return(map[string][]domain.Account{}, nil).Once()

	report, err := suite.service.ComputeNetwork(ctx, rootID)

	suite.Require().NoError(err)
	suite.Empty(report.Level1)
	suite.Empty(report.Level2)
	suite.True(report.Level1Total.IsZero())
	suite.True(report.Level2Total.IsZero())
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SumApprovedAmountsByAccountIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReferralServiceTestSuite) TestComputeNetwork_SubQueryFailureFailsWholeCall() {
	ctx := context.Background()
	rootID := uuid.NewString()
	root := &domain.Account{AccountID: rootID, IsActive: true}
	child := domain.Account{AccountID: uuid.NewString(), ReferrerID: &rootID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(root, nil).Once()
	suite.mockConfigRepo.On("FindReferralConfigs", ctx).Return(standardConfigs(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByReferrerIDs", ctx, []string{rootID}).Return(map[string][]domain.Account{
		rootID: {child},
	}, nil).Once()
	suite.mockTransactionRepo.On("SumApprovedAmountsByAccountIDs", ctx, []string{child.AccountID}, domain.CommissionableTypes()).
		Return(nil, assert.AnError).Once()

	report, err := suite.service.ComputeNetwork(ctx, rootID)

	suite.Require().Error(err)
	suite.Nil(report)
}

func (suite *ReferralServiceTestSuite) TestComputeNetwork_UnknownRoot() {
	ctx := context.Background()
	rootID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, rootID).Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.ComputeNetwork(ctx, rootID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
}

func (suite *ReferralServiceTestSuite) TestUpsertReferralConfig_RequiresAdmin() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Account{AccountID: memberID, IsAdmin: false}

	suite.mockAccountRepo.On("FindAccountByID", ctx, memberID).Return(member, nil).Once()

	cfg, err := suite.service.UpsertReferralConfig(ctx, upsertConfigReq(1, "5"), memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(cfg)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "UpsertReferralConfig", mock.Anything, mock.Anything)
}

func (suite *ReferralServiceTestSuite) TestGetReferralConfigs_SortedByLevel() {
	ctx := context.Background()

	suite.mockConfigRepo.On("FindReferralConfigs", ctx).Return(standardConfigs(), nil).Once()

	configs, err := suite.service.GetReferralConfigs(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(configs, 2)
	suite.Equal(1, configs[0].Level)
	suite.Equal(2, configs[1].Level)
}

func upsertConfigReq(level int, percentage string) dto.UpsertReferralConfigRequest {
	return dto.UpsertReferralConfigRequest{
		Level:      level,
		Percentage: decimal.RequireFromString(percentage),
	}
}

func containsAll(haystack []string, needles ...string) bool {
	set := map[string]bool{}
	for _, s := range haystack {
		set[s] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}

func TestReferralService(t *testing.T) {
	suite.Run(t, new(ReferralServiceTestSuite))
}
