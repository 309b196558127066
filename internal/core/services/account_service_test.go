package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsWithTemplates(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, balance, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	userID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:     "cash",
		Name:     "Cash",
		Category: domain.CategoryCash,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, companyID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(acc)
	suite.NotEmpty(acc.AccountID)
	suite.Equal(companyID, acc.CompanyID)
	suite.Equal(req.Code, acc.Code)
	suite.Equal(req.Category, acc.Category)
	suite.True(acc.IsActive)
	suite.True(acc.CurrentBalance.IsZero())
	suite.Equal(userID, acc.CreatedBy)
	suite.WithinDuration(time.Now(), acc.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCategory() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "x", Name: "X", Category: "CRYPTO"}

	acc, err := suite.service.CreateAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "cash", Name: "Cash", Category: domain.CategoryCash}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	acc, err := suite.service.CreateAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- GetAccountByID ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_TenantScoped() {
	ctx := context.Background()
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	owned := &domain.Account{AccountID: accountID, CompanyID: companyID, Code: "cash"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(owned, nil).Once()

	acc, err := suite.service.GetAccountByID(ctx, companyID, accountID)

	suite.Require().NoError(err)
	suite.Equal(accountID, acc.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherTenantHidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	foreign := &domain.Account{AccountID: accountID, CompanyID: uuid.NewString(), Code: "cash"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(foreign, nil).Once()

	acc, err := suite.service.GetAccountByID(ctx, uuid.NewString(), accountID)

	suite.Require().Error(err)
	suite.Nil(acc)
	// Another tenant's account is indistinguishable from a missing one.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_TemplateVisible() {
	ctx := context.Background()
	accountID := uuid.NewString()
	tmpl := &domain.Account{AccountID: accountID, CompanyID: "", Code: "cash"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(tmpl, nil).Once()

	acc, err := suite.service.GetAccountByID(ctx, uuid.NewString(), accountID)

	suite.Require().NoError(err)
	suite.True(acc.IsTemplate())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_MalformedID() {
	ctx := context.Background()

	acc, err := suite.service.GetAccountByID(ctx, uuid.NewString(), "not-a-uuid")

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID")
}

// --- ResolveOrProvisionAccount ---

func (suite *AccountServiceTestSuite) TestResolve_ByID() {
	ctx := context.Background()
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	owned := &domain.Account{AccountID: accountID, CompanyID: companyID, Code: "cash"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(owned, nil).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, companyID, accountID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(accountID, acc.AccountID)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByCode")
}

func (suite *AccountServiceTestSuite) TestResolve_ByID_OtherTenant() {
	ctx := context.Background()
	accountID := uuid.NewString()
	foreign := &domain.Account{AccountID: accountID, CompanyID: uuid.NewString()}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(foreign, nil).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, uuid.NewString(), accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestResolve_ByCompanyCode() {
	ctx := context.Background()
	companyID := uuid.NewString()
	owned := &domain.Account{AccountID: uuid.NewString(), CompanyID: companyID, Code: "cash"}

	suite.mockRepo.On("FindAccountByCode", ctx, companyID, "cash").Return(owned, nil).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, companyID, "cash", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(owned.AccountID, acc.AccountID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestResolve_ProvisionsFromTemplate() {
	ctx := context.Background()
	companyID := uuid.NewString()
	userID := uuid.NewString()
	tmpl := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      "",
		Code:           "cash",
		Name:           "Cash",
		Category:       domain.CategoryCash,
		CurrentBalance: decimal.NewFromInt(500),
		IsActive:       true,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, companyID, "cash").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, "", "cash").Return(tmpl, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, companyID, "cash", userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(acc)
	suite.NotEqual(tmpl.AccountID, acc.AccountID)
	suite.Equal(companyID, acc.CompanyID)
	suite.Equal("cash", acc.Code)
	suite.True(acc.CurrentBalance.IsZero(), "provisioned copies start at zero")
	suite.Equal(userID, acc.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolve_ProvisionRaceLoserRefetches() {
	ctx := context.Background()
	companyID := uuid.NewString()
	tmpl := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "cash",
		Category:  domain.CategoryCash,
		IsActive:  true,
	}
	winner := &domain.Account{AccountID: uuid.NewString(), CompanyID: companyID, Code: "cash"}

	suite.mockRepo.On("FindAccountByCode", ctx, companyID, "cash").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, "", "cash").Return(tmpl, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()
	// Losing the insert race falls back to the winner's row.
	suite.mockRepo.On("FindAccountByCode", ctx, companyID, "cash").Return(winner, nil).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, companyID, "cash", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(winner.AccountID, acc.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolve_UnknownCode() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockRepo.On("FindAccountByCode", ctx, companyID, "no-such").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, "", "no-such").
		Return(nil, apperrors.ErrNotFound).Once()

	acc, err := suite.service.ResolveOrProvisionAccount(ctx, companyID, "no-such", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestResolve_EmptyRef() {
	acc, err := suite.service.ResolveOrProvisionAccount(context.Background(), uuid.NewString(), "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesProvidedFields() {
	ctx := context.Background()
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID: accountID,
		CompanyID: companyID,
		Code:      "cash",
		Name:      "Cash",
		SortOrder: 1,
		IsActive:  true,
	}
	newName := "Cash Drawer"
	newSort := 5

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, companyID, accountID, dto.UpdateAccountRequest{
		Name:      &newName,
		SortOrder: &newSort,
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, acc.Name)
	suite.Equal(newSort, acc.SortOrder)
	suite.True(acc.IsActive, "unspecified fields keep their values")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TemplateImmutableForTenants() {
	ctx := context.Background()
	accountID := uuid.NewString()
	tmpl := &domain.Account{AccountID: accountID, CompanyID: "", Code: "cash"}
	newName := "Hijacked"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(tmpl, nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, uuid.NewString(), accountID, dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
