package services_test

import (
	"context"
	"testing"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.TransactionDetail, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionDetail), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, companyID string, filter portsrepo.ListTransactionsFilter) ([]domain.TransactionDetail, int64, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionDetail), args.Get(1).(int64), args.Error(2)
}

// MockAccountProvisioner is a mock type for the AccountProvisionerSvc interface
type MockAccountProvisioner struct {
	mock.Mock
}

var _ portssvc.AccountProvisionerSvc = (*MockAccountProvisioner)(nil)

func (m *MockAccountProvisioner) ResolveOrProvisionAccount(ctx context.Context, companyID string, ref string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, ref, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type FinanceServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockProvisioner *MockAccountProvisioner
	service         portssvc.FinanceSvcFacade

	companyID string
	branchID  string
	userID    string
}

func (suite *FinanceServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockProvisioner = new(MockAccountProvisioner)
	suite.service = services.NewFinanceService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockProvisioner)

	suite.companyID = uuid.NewString()
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FinanceServiceTestSuite) cashAccount() *domain.Account {
	return &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Code:           "cash",
		Name:           "Cash",
		Category:       domain.CategoryCash,
		CurrentBalance: decimal.NewFromInt(100),
		IsActive:       true,
	}
}

// --- RecordTransaction ---

func (suite *FinanceServiceTestSuite) TestRecordTransaction_Success() {
	account := suite.cashAccount()
	req := dto.CreateTransactionRequest{
		AccountRef: "cash",
		Type:       domain.TypeIn,
		Category:   domain.CategorySale,
		Amount:     decimal.NewFromInt(100),
	}

	suite.mockProvisioner.On("ResolveOrProvisionAccount", mock.Anything, suite.companyID, "cash", suite.userID).
		Return(account, nil).Once()
	// Emulate the repository assigning the number and post-entry balance.
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == account.AccountID &&
			txn.CompanyID == suite.companyID &&
			txn.BranchID == suite.branchID &&
			txn.Type == domain.TypeIn &&
			txn.Amount.Equal(decimal.NewFromInt(100))
	})).Return(&domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TRX-20250115-0001",
		AccountID:         account.AccountID,
		Type:              domain.TypeIn,
		Category:          domain.CategorySale,
		Amount:            decimal.NewFromInt(100),
		BalanceAfter:      decimal.NewFromInt(200),
	}, nil).Once()

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("TRX-20250115-0001", txn.TransactionNumber)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(200)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockProvisioner.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestRecordTransaction_NonPositiveAmount() {
	req := dto.CreateTransactionRequest{
		AccountRef: "cash",
		Type:       domain.TypeIn,
		Category:   domain.CategorySale,
		Amount:     decimal.Zero,
	}

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// A rejected request must not lazily provision an account.
	suite.mockProvisioner.AssertNotCalled(suite.T(), "ResolveOrProvisionAccount")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *FinanceServiceTestSuite) TestRecordTransaction_UnknownCategoryDoesNotProvision() {
	req := dto.CreateTransactionRequest{
		AccountRef: "cash",
		Type:       domain.TypeIn,
		Category:   "TIPS",
		Amount:     decimal.NewFromInt(10),
	}

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvisioner.AssertNotCalled(suite.T(), "ResolveOrProvisionAccount")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *FinanceServiceTestSuite) TestRecordTransaction_AccountNotFound() {
	req := dto.CreateTransactionRequest{
		AccountRef: "no-such",
		Type:       domain.TypeIn,
		Category:   domain.CategorySale,
		Amount:     decimal.NewFromInt(10),
	}

	suite.mockProvisioner.On("ResolveOrProvisionAccount", mock.Anything, suite.companyID, "no-such", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *FinanceServiceTestSuite) TestRecordTransaction_InactiveAccount() {
	account := suite.cashAccount()
	account.IsActive = false
	req := dto.CreateTransactionRequest{
		AccountRef: "cash",
		Type:       domain.TypeOut,
		Category:   domain.CategoryExpense,
		Amount:     decimal.NewFromInt(10),
	}

	suite.mockProvisioner.On("ResolveOrProvisionAccount", mock.Anything, suite.companyID, "cash", suite.userID).
		Return(account, nil).Once()

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *FinanceServiceTestSuite) TestRecordTransaction_InsufficientBalancePropagates() {
	account := suite.cashAccount()
	req := dto.CreateTransactionRequest{
		AccountRef: "cash",
		Type:       domain.TypeOut,
		Category:   domain.CategoryExpense,
		Amount:     decimal.NewFromInt(500),
	}

	suite.mockProvisioner.On("ResolveOrProvisionAccount", mock.Anything, suite.companyID, "cash", suite.userID).
		Return(account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	txn, err := suite.service.RecordTransaction(context.Background(), suite.companyID, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

// --- WithdrawProfit ---

func (suite *FinanceServiceTestSuite) TestWithdrawProfit_MapsToOutWithdrawal() {
	account := suite.cashAccount()

	suite.mockProvisioner.On("ResolveOrProvisionAccount", mock.Anything, suite.companyID, "cash", suite.userID).
		Return(account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TypeOut &&
			txn.Category == domain.CategoryProfitWithdrawal &&
			txn.Amount.Equal(decimal.NewFromInt(20))
	})).Return(&domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TRX-20250115-0002",
		AccountID:         account.AccountID,
		Type:              domain.TypeOut,
		Category:          domain.CategoryProfitWithdrawal,
		Amount:            decimal.NewFromInt(20),
		BalanceAfter:      decimal.NewFromInt(80),
	}, nil).Once()

	txn, err := suite.service.WithdrawProfit(context.Background(), suite.companyID, suite.branchID, dto.WithdrawProfitRequest{
		AccountRef: "cash",
		Amount:     decimal.NewFromInt(20),
		Notes:      "weekly draw",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryProfitWithdrawal, txn.Category)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(80)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- GetTransactionByID ---

func (suite *FinanceServiceTestSuite) TestGetTransactionByID_MalformedID() {
	detail, err := suite.service.GetTransactionByID(context.Background(), suite.companyID, "garbage")

	suite.Require().Error(err)
	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID")
}

func (suite *FinanceServiceTestSuite) TestGetTransactionByID_Success() {
	transactionID := uuid.NewString()
	expected := &domain.TransactionDetail{
		Transaction: domain.Transaction{TransactionID: transactionID, TransactionNumber: "TRX-20250115-0001"},
		AccountName: "Cash",
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.companyID, transactionID).
		Return(expected, nil).Once()

	detail, err := suite.service.GetTransactionByID(context.Background(), suite.companyID, transactionID)

	suite.Require().NoError(err)
	suite.Equal(expected.TransactionNumber, detail.TransactionNumber)
}

// --- ListTransactions ---

func (suite *FinanceServiceTestSuite) TestListTransactions_UnknownCodeYieldsEmptyPage() {
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "no-such").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, "", "no-such").
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListTransactions(context.Background(), suite.companyID, dto.ListTransactionsParams{
		AccountRef: "no-such",
		Page:       1,
		Limit:      20,
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Zero(resp.Total)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *FinanceServiceTestSuite) TestListTransactions_ResolvesCodeToAccountFilter() {
	account := suite.cashAccount()

	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "cash").
		Return(account, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, suite.companyID, mock.MatchedBy(func(f portsrepo.ListTransactionsFilter) bool {
		return f.AccountID == account.AccountID && f.Page == 1 && f.Limit == 20
	})).Return([]domain.TransactionDetail{
		{Transaction: domain.Transaction{TransactionID: uuid.NewString(), TransactionNumber: "TRX-20250115-0001"}},
	}, int64(1), nil).Once()

	resp, err := suite.service.ListTransactions(context.Background(), suite.companyID, dto.ListTransactionsParams{
		AccountRef: "cash",
		Page:       1,
		Limit:      20,
	})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Equal(int64(1), resp.Total)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestListTransactions_DefaultsPagination() {
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, suite.companyID, mock.MatchedBy(func(f portsrepo.ListTransactionsFilter) bool {
		return f.Page == 1 && f.Limit == 20
	})).Return([]domain.TransactionDetail{}, int64(0), nil).Once()

	resp, err := suite.service.ListTransactions(context.Background(), suite.companyID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Equal(1, resp.Page)
	suite.Equal(20, resp.Limit)
}

// --- GetAccountBalances ---

func (suite *FinanceServiceTestSuite) TestGetAccountBalances_MergesTemplatesAndOverrides() {
	companyCash := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Code:           "cash",
		Name:           "Cash",
		Category:       domain.CategoryCash,
		CurrentBalance: decimal.NewFromInt(150),
		SortOrder:      1,
	}
	templateCash := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: "",
		Code:      "CASH", // Codes merge case-insensitively
		Name:      "Cash",
		Category:  domain.CategoryCash,
		SortOrder: 1,
	}
	templateCard := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: "",
		Code:      "card",
		Name:      "Card",
		Category:  domain.CategoryCard,
		SortOrder: 2,
	}

	suite.mockAccountRepo.On("ListAccountsWithTemplates", mock.Anything, suite.companyID).
		Return([]domain.Account{templateCash, companyCash, templateCard}, nil).Once()

	rows, err := suite.service.GetAccountBalances(context.Background(), suite.companyID)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	suite.Equal(companyCash.AccountID, rows[0].AccountID, "company row overrides the template")
	suite.True(rows[0].CurrentBalance.Equal(decimal.NewFromInt(150)))
	suite.Equal(templateCard.AccountID, rows[1].AccountID, "unprovisioned method appears at zero")
	suite.True(rows[1].CurrentBalance.IsZero())
}

func (suite *FinanceServiceTestSuite) TestGetAccountBalances_SortedBySortOrderThenName() {
	accounts := []domain.Account{
		{AccountID: "c", Code: "bkash", Name: "bKash", SortOrder: 3},
		{AccountID: "a", Code: "cash", Name: "Cash", SortOrder: 1},
		{AccountID: "b", Code: "bank", Name: "Bank", SortOrder: 3},
	}

	suite.mockAccountRepo.On("ListAccountsWithTemplates", mock.Anything, suite.companyID).
		Return(accounts, nil).Once()

	rows, err := suite.service.GetAccountBalances(context.Background(), suite.companyID)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal("a", rows[0].AccountID)
	suite.Equal("b", rows[1].AccountID, "ties break on name")
	suite.Equal("c", rows[2].AccountID)
}

func TestFinanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}
