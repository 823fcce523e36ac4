package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, code string, active bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, code, active, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	actorID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1301",
		Name:          "Perlengkapan Kantor",
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1301").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("1301", account.Code)
	suite.True(account.IsActive)
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WrongNormalBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "4102",
		Name:          "Pendapatan Administrasi",
		AccountType:   domain.Revenue,
		NormalBalance: domain.Debit, // revenue carries a credit balance
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNormalSideInvalid)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1001",
		Name:          "Kas",
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
	}
	existing := &domain.Account{Code: "1001"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	active := &domain.Account{Code: "1001", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(active, nil).Once()
	suite.mockAccountRepo.On("SetAccountActive", ctx, "1001", false, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, "1001", suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	inactive := &domain.Account{Code: "1001", IsActive: false}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(inactive, nil).Once()

	err := suite.service.DeactivateAccount(ctx, "1001", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInactiveAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SetAccountActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestNormalBalanceOf() {
	ctx := context.Background()
	account := &domain.Account{Code: "2101", NormalBalance: domain.Credit}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "2101").Return(account, nil).Once()

	side, err := suite.service.NormalBalanceOf(ctx, "2101")

	suite.Require().NoError(err)
	suite.Equal(domain.Credit, side)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
