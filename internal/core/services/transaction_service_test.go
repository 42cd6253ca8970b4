package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/core/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockAccountRepo     *MockAccountRepository
	service             portssvc.TransactionSvcFacade

	adminID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTransactionRepo, suite.mockAccountRepo)
	suite.adminID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) expectAdmin(ctx context.Context) {
	admin := &domain.Account{AccountID: suite.adminID, IsAdmin: true, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.adminID).Return(admin, nil).Once()
}

func (suite *TransactionServiceTestSuite) TestRequestTransaction_CreatesPending() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, IsActive: true}
	req := dto.CreateTransactionRequest{
		Type:   domain.Deposit,
		Amount: decimal.RequireFromString("150"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.AccountID == accountID &&
			t.Type == domain.Deposit &&
			t.Status == domain.StatusPending &&
			t.Amount.Equal(req.Amount)
	})).Return(nil).Once()

	txn, err := suite.service.RequestTransaction(ctx, accountID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.NotEmpty(txn.TransactionID)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRequestTransaction_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:   domain.Withdraw,
		Amount: decimal.Zero,
	}

	txn, err := suite.service.RequestTransaction(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRequestTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, IsActive: false}
	req := dto.CreateTransactionRequest{
		Type:   domain.Deposit,
		Amount: decimal.RequireFromString("10"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	txn, err := suite.service.RequestTransaction(ctx, accountID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestReviewTransaction_Approve() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	approved := &domain.Transaction{TransactionID: transactionID, Status: domain.StatusApproved}

	suite.expectAdmin(ctx)
	suite.mockTransactionRepo.On("ApproveTransaction", ctx, transactionID, suite.adminID).Return(approved, nil).Once()

	txn, err := suite.service.ReviewTransaction(ctx, suite.adminID, transactionID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, txn.Status)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "RejectTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestReviewTransaction_Reject() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	rejected := &domain.Transaction{TransactionID: transactionID, Status: domain.StatusRejected}

	suite.expectAdmin(ctx)
	suite.mockTransactionRepo.On("RejectTransaction", ctx, transactionID, suite.adminID).Return(rejected, nil).Once()

	txn, err := suite.service.ReviewTransaction(ctx, suite.adminID, transactionID, false)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestReviewTransaction_NonAdminForbidden() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Account{AccountID: memberID, IsAdmin: false}

	suite.mockAccountRepo.On("FindAccountByID", ctx, memberID).Return(member, nil).Once()

	txn, err := suite.service.ReviewTransaction(ctx, memberID, uuid.NewString(), true)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "ApproveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestReviewTransaction_InsufficientFundsPropagates() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.expectAdmin(ctx)
	suite.mockTransactionRepo.On("ApproveTransaction", ctx, transactionID, suite.adminID).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	txn, err := suite.service.ReviewTransaction(ctx, suite.adminID, transactionID, true)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_OwnerAllowed() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: uuid.NewString(), AccountID: ownerID}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	got, err := suite.service.GetTransactionByID(ctx, ownerID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(txn, got)
	// Ownership matched, no admin lookup needed.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_StrangerSeesNotFound() {
	ctx := context.Background()
	strangerID := uuid.NewString()
	stranger := &domain.Account{AccountID: strangerID, IsAdmin: false}
	txn := &domain.Transaction{TransactionID: uuid.NewString(), AccountID: uuid.NewString()}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, strangerID).Return(stranger, nil).Once()

	got, err := suite.service.GetTransactionByID(ctx, strangerID, txn.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
