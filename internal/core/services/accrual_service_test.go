package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccrualServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockPlanRepo    *MockPlanRepository
	mockYieldRepo   *MockYieldRepository
	service         portssvc.AccrualSvcFacade

	adminID string
}

func (suite *AccrualServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPlanRepo = new(MockPlanRepository)
	suite.mockYieldRepo = new(MockYieldRepository)
	suite.service = services.NewAccrualService(suite.mockAccountRepo, suite.mockPlanRepo, suite.mockYieldRepo)
	suite.adminID = uuid.NewString()
}

func (suite *AccrualServiceTestSuite) expectAdmin(ctx context.Context) {
	admin := &domain.Account{AccountID: suite.adminID, IsAdmin: true, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.adminID).Return(admin, nil).Once()
}

func enrolledAccount(planID string, balance string) domain.Account {
	return domain.Account{
		AccountID: uuid.NewString(),
		Balance:   decimal.RequireFromString(balance),
		PlanID:    &planID,
		IsActive:  true,
	}
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_AppliesBalanceTimesRate() {
	ctx := context.Background()
	planID := uuid.NewString()
	account := enrolledAccount(planID, "200")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.RequireFromString("0.01"), IsActive: true},
	}, nil).Once()
	suite.mockYieldRepo.On("SaveYieldRecordAndApply", ctx, mock.MatchedBy(func(r domain.YieldRecord) bool {
		return r.AccountID == account.AccountID &&
			r.Amount.Equal(decimal.RequireFromString("2")) &&
			r.Source == domain.YieldSourceAccrual &&
			r.YieldID != ""
	})).Return(nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Processed)
	suite.Equal(0, summary.Skipped)
	suite.Empty(summary.Failed)
	suite.mockYieldRepo.AssertExpectations(suite.T())
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_ZeroRateIsInert() {
	ctx := context.Background()
	planID := uuid.NewString()
	account := enrolledAccount(planID, "100")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.Zero, IsActive: true},
	}, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.Equal(1, summary.Skipped)
	// No yield record, no balance change
	suite.mockYieldRepo.AssertNotCalled(suite.T(), "SaveYieldRecordAndApply", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_NegativeRateIsInert() {
	ctx := context.Background()
	planID := uuid.NewString()
	account := enrolledAccount(planID, "100")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.RequireFromString("-0.05"), IsActive: true},
	}, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Skipped)
	suite.mockYieldRepo.AssertNotCalled(suite.T(), "SaveYieldRecordAndApply", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_OneFailureDoesNotBlockOthers() {
	ctx := context.Background()
	planID := uuid.NewString()
	failing := enrolledAccount(planID, "100")
	healthy := enrolledAccount(planID, "300")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{failing, healthy}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID, planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.RequireFromString("0.02"), IsActive: true},
	}, nil).Once()
	suite.mockYieldRepo.On("SaveYieldRecordAndApply", ctx, mock.MatchedBy(func(r domain.YieldRecord) bool {
		return r.AccountID == failing.AccountID
	})).Return(assert.AnError).Once()
	suite.mockYieldRepo.On("SaveYieldRecordAndApply", ctx, mock.MatchedBy(func(r domain.YieldRecord) bool {
		return r.AccountID == healthy.AccountID && r.Amount.Equal(decimal.RequireFromString("6"))
	})).Return(nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Processed)
	suite.Equal([]string{failing.AccountID}, summary.Failed)
	suite.mockYieldRepo.AssertExpectations(suite.T())
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_MissingPlanIsFailed() {
	ctx := context.Background()
	planID := uuid.NewString()
	account := enrolledAccount(planID, "100")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID}).Return(map[string]domain.Plan{}, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal([]string{account.AccountID}, summary.Failed)
	suite.mockYieldRepo.AssertNotCalled(suite.T(), "SaveYieldRecordAndApply", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_DuplicateAccrualIsSkipped() {
	ctx := context.Background()
	planID := uuid.NewString()
	account := enrolledAccount(planID, "500")

	suite.expectAdmin(ctx)
	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.RequireFromString("0.01"), IsActive: true},
	}, nil).Once()
	suite.mockYieldRepo.On("SaveYieldRecordAndApply", ctx, mock.AnythingOfType("domain.YieldRecord")).
		Return(apperrors.ErrDuplicate).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.Equal(1, summary.Skipped)
	suite.Empty(summary.Failed)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_NonAdminRejected() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Account{AccountID: memberID, IsAdmin: false, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, memberID).Return(member, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(summary)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListEnrolledAccounts", mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_SystemActorBypassesAdminLookup() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListEnrolledAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", ctx, []string{}).Return(map[string]domain.Plan{}, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, services.SystemActorID)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestRunAccrualCycle_CancelledContextReturnsPartialSummary() {
	ctx, cancel := context.WithCancel(context.Background())
	planID := uuid.NewString()
	account := enrolledAccount(planID, "100")

	admin := &domain.Account{AccountID: suite.adminID, IsAdmin: true, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.adminID).Return(admin, nil).Once()
	suite.mockAccountRepo.On("ListEnrolledAccounts", mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return([]domain.Account{account}, nil).Once()
	suite.mockPlanRepo.On("FindPlansByIDs", mock.Anything, []string{planID}).Return(map[string]domain.Plan{
		planID: {PlanID: planID, DailyRate: decimal.RequireFromString("0.01"), IsActive: true},
	}, nil).Once()

	summary, err := suite.service.RunAccrualCycle(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.mockYieldRepo.AssertNotCalled(suite.T(), "SaveYieldRecordAndApply", mock.Anything, mock.Anything)
}

func TestAccrualService(t *testing.T) {
	suite.Run(t, new(AccrualServiceTestSuite))
}
