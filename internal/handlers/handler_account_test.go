package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
	"github.com/rendaplus/rendaplus_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, callerUserID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, callerUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnrollInPlan(ctx context.Context, accountID string, planID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReferralService ---

type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) ComputeNetwork(ctx context.Context, rootAccountID string) (*domain.NetworkReport, error) {
	args := m.Called(ctx, rootAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NetworkReport), args.Error(1)
}

func (m *MockReferralService) GetReferralConfigs(ctx context.Context) ([]domain.ReferralConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralConfig), args.Error(1)
}

func (m *MockReferralService) UpsertReferralConfig(ctx context.Context, req dto.UpsertReferralConfigRequest, updaterUserID string) (*domain.ReferralConfig, error) {
	args := m.Called(ctx, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralConfig), args.Error(1)
}

var _ portssvc.ReferralSvcFacade = (*MockReferralService)(nil)

// --- Mock AccrualService ---

type MockAccrualService struct {
	mock.Mock
}

func (m *MockAccrualService) RunAccrualCycle(ctx context.Context, triggeredByUserID string) (*domain.AccrualSummary, error) {
	args := m.Called(ctx, triggeredByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualSummary), args.Error(1)
}

func (m *MockAccrualService) ListOwnYieldRecords(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var records []domain.YieldRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.YieldRecord)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return records, token, args.Error(2)
}

var _ portssvc.AccrualSvcFacade = (*MockAccrualService)(nil)

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	jwtSecret           string
	mockAccountService  *MockAccountService
	mockReferralService *MockReferralService
	mockAccrualService  *MockAccrualService
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "test-issuer")
	suite.Require().NoError(err)
	return token
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockReferralService = new(MockReferralService)
	suite.mockAccrualService = new(MockAccrualService)

	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockAccountService, suite.mockReferralService, suite.mockAccrualService)
}

func (suite *AccountHandlerTestSuite) TestGetOwnAccount_Success() {
	userID := uuid.NewString()
	account := &domain.Account{
		AccountID:    userID,
		Name:         "Member",
		Email:        "member@example.com",
		Balance:      decimal.RequireFromString("120.50"),
		ReferralCode: "AB12CD34EF",
		IsActive:     true,
	}

	suite.mockAccountService.On("GetAccountByID", mock.Anything, userID).Return(account, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.AccountID)
	suite.True(resp.Balance.Equal(account.Balance))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetOwnAccount_NoToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetOwnNetwork_Success() {
	userID := uuid.NewString()
	report := &domain.NetworkReport{
		Level1: []domain.NetworkEntry{
			{AccountID: uuid.NewString(), Name: "Alice", Volume: decimal.RequireFromString("1000"), Commission: decimal.RequireFromString("50")},
		},
		Level1Total: decimal.RequireFromString("50"),
		Level2:      []domain.NetworkEntry{},
		Level2Total: decimal.Zero,
	}

	suite.mockReferralService.On("ComputeNetwork", mock.Anything, userID).Return(report, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me/network", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.NetworkReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Level1, 1)
	suite.True(resp.Level1Total.Equal(report.Level1Total))
	suite.mockReferralService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestEnrollInPlan_Success() {
	userID := uuid.NewString()
	planID := uuid.NewString()
	enrolled := &domain.Account{AccountID: userID, PlanID: &planID, IsActive: true}

	suite.mockAccountService.On("EnrollInPlan", mock.Anything, userID, planID).Return(enrolled, nil).Once()

	body := `{"planID":"` + planID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/me/plan", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
