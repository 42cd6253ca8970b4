package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByReferrerIDs(ctx context.Context, referrerIDs []string) (map[string][]domain.Account, error) {
	args := m.Called(ctx, referrerIDs)
	var grouped map[string][]domain.Account
	if args.Get(0) != nil {
		grouped = args.Get(0).(map[string][]domain.Account)
	}
	return grouped, args.Error(1)
}

func (m *MockAccountRepository) ListEnrolledAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error {
	args := m.Called(ctx, account, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountPlan(ctx context.Context, accountID string, planID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, planID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) IncrementReferralCount(ctx context.Context, accountID string, now time.Time) error {
	args := m.Called(ctx, accountID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateRefreshToken(ctx context.Context, accountID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, accountID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockAccountRepository) ClearRefreshToken(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindPasswordHashByEmail(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAccountRepository) FindRefreshTokenState(ctx context.Context, accountID string) (string, *time.Time, error) {
	args := m.Called(ctx, accountID)
	var expiresAt *time.Time
	if args.Get(1) != nil {
		expiresAt = args.Get(1).(*time.Time)
	}
	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

// --- Mock PlanRepository ---

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	var plan *domain.Plan
	if args.Get(0) != nil {
		plan = args.Get(0).(*domain.Plan)
	}
	return plan, args.Error(1)
}

func (m *MockPlanRepository) FindPlansByIDs(ctx context.Context, planIDs []string) (map[string]domain.Plan, error) {
	args := m.Called(ctx, planIDs)
	var plans map[string]domain.Plan
	if args.Get(0) != nil {
		plans = args.Get(0).(map[string]domain.Plan)
	}
	return plans, args.Error(1)
}

func (m *MockPlanRepository) ListPlans(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	args := m.Called(ctx, activeOnly)
	var plans []domain.Plan
	if args.Get(0) != nil {
		plans = args.Get(0).([]domain.Plan)
	}
	return plans, args.Error(1)
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) DeactivatePlan(ctx context.Context, planID string, userID string, now time.Time) error {
	args := m.Called(ctx, planID, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, status, limit, offset)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SumApprovedAmountsByAccountIDs(ctx context.Context, accountIDs []string, types []domain.TransactionType) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, accountIDs, types)
	var sums map[string]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[string]decimal.Decimal)
	}
	return sums, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ApproveTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, reviewerUserID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) RejectTransaction(ctx context.Context, transactionID string, reviewerUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, reviewerUserID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

// --- Mock YieldRepository ---

type MockYieldRepository struct {
	mock.Mock
}

func (m *MockYieldRepository) ListYieldRecordsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.YieldRecord, *string, error) {
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

func (m *MockYieldRepository) SaveYieldRecordAndApply(ctx context.Context, record domain.YieldRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock ReferralConfigRepository ---

type MockReferralConfigRepository struct {
	mock.Mock
}

func (m *MockReferralConfigRepository) FindReferralConfigs(ctx context.Context) (map[int]domain.ReferralConfig, error) {
	args := m.Called(ctx)
	var configs map[int]domain.ReferralConfig
	if args.Get(0) != nil {
		configs = args.Get(0).(map[int]domain.ReferralConfig)
	}
	return configs, args.Error(1)
}

func (m *MockReferralConfigRepository) UpsertReferralConfig(ctx context.Context, config domain.ReferralConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}
