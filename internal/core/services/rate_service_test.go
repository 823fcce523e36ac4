package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

var _ portsrepo.RateRepositoryFacade = (*MockRateRepository)(nil)

func (m *MockRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.InterestRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context, scopeRef string, txnType domain.RateTransactionType) ([]domain.InterestRate, error) {
	args := m.Called(ctx, scopeRef, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestRate), args.Error(1)
}

func (m *MockRateRepository) SaveRate(ctx context.Context, rate domain.InterestRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) UpdateRate(ctx context.Context, rate domain.InterestRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateRepository
	service      portssvc.RateSvcFacade
	actorID      string
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateRepository)
	suite.service = services.NewRateService(suite.mockRateRepo)
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestScheduleRate_Success() {
	ctx := context.Background()
	req := dto.ScheduleRateRequest{
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateSavings,
		RatePercentage:  decimal.NewFromInt(10),
		EffectiveDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRateRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.InterestRate")).Return(nil).Once()

	rate, err := suite.service.ScheduleRate(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.RateID)
	suite.Equal("KAS-1", rate.ScopeRef)
	suite.True(rate.RatePercentage.Equal(decimal.NewFromInt(10)))
	suite.Equal(suite.actorID, rate.CreatedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestScheduleRate_OutOfRange() {
	ctx := context.Background()
	req := dto.ScheduleRateRequest{
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateLoans,
		RatePercentage:  decimal.NewFromInt(101),
		EffectiveDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.ScheduleRate(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateOutOfRange)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestScheduleRate_EmptyScope() {
	ctx := context.Background()
	req := dto.ScheduleRateRequest{
		ScopeRef:        "   ",
		TransactionType: domain.RateSavings,
		RatePercentage:  decimal.NewFromInt(5),
		EffectiveDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.ScheduleRate(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// savingsRate builds a history row for the resolution tests.
func savingsRate(rateID string, pct int64, effective, createdAt time.Time) domain.InterestRate {
	return domain.InterestRate{
		RateID:          rateID,
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateSavings,
		RatePercentage:  decimal.NewFromInt(pct),
		EffectiveDate:   effective,
		AuditFields:     domain.AuditFields{CreatedAt: createdAt},
	}
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_PicksLatestEffective() {
	ctx := context.Background()
	asOf := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC)
	history := []domain.InterestRate{
		savingsRate(uuid.NewString(), 15, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), created),
		savingsRate(uuid.NewString(), 12, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), created),
		savingsRate(uuid.NewString(), 10, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), created),
	}

	suite.mockRateRepo.On("ListRates", ctx, "KAS-1", domain.RateSavings).Return(history, nil)

	// As of July the June rate is in force; the September one is not yet.
	rate, err := suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, asOf)
	suite.Require().NoError(err)
	suite.True(rate.RatePercentage.Equal(decimal.NewFromInt(12)))

	// Back in March only the January rate qualifies.
	rate, err = suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(rate.RatePercentage.Equal(decimal.NewFromInt(10)))
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_EqualEffectiveDateLatestCreatedWins() {
	ctx := context.Background()
	effective := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	history := []domain.InterestRate{
		savingsRate(uuid.NewString(), 8, effective, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)),
		savingsRate(uuid.NewString(), 9, effective, time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)),
	}

	suite.mockRateRepo.On("ListRates", ctx, "KAS-1", domain.RateSavings).Return(history, nil).Once()

	rate, err := suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(rate.RatePercentage.Equal(decimal.NewFromInt(9)), "the later-created correction supersedes the earlier row")
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_CreatedAtTieFallsToID() {
	ctx := context.Background()
	effective := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	history := []domain.InterestRate{
		savingsRate("b-"+uuid.NewString(), 7, effective, createdAt),
		savingsRate("a-"+uuid.NewString(), 6, effective, createdAt),
	}

	suite.mockRateRepo.On("ListRates", ctx, "KAS-1", domain.RateSavings).Return(history, nil).Once()

	rate, err := suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(rate.RatePercentage.Equal(decimal.NewFromInt(7)))
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_NoneScheduled() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListRates", ctx, "KAS-1", domain.RateSavings).Return([]domain.InterestRate{}, nil)

	_, err := suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_OnlyFutureRates() {
	ctx := context.Background()
	history := []domain.InterestRate{
		savingsRate(uuid.NewString(), 12, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	suite.mockRateRepo.On("ListRates", ctx, "KAS-1", domain.RateSavings).Return(history, nil).Once()

	_, err := suite.service.ResolveActiveRate(ctx, "KAS-1", domain.RateSavings, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateServiceTestSuite) TestUpdateRate_FutureRate() {
	ctx := context.Background()
	rateID := uuid.NewString()
	future := &domain.InterestRate{
		RateID:          rateID,
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateLoans,
		RatePercentage:  decimal.NewFromInt(10),
		EffectiveDate:   time.Now().UTC().AddDate(0, 1, 0),
	}
	newRate := decimal.NewFromInt(11)

	suite.mockRateRepo.On("FindRateByID", ctx, rateID).Return(future, nil).Once()
	suite.mockRateRepo.On("UpdateRate", ctx, mock.AnythingOfType("domain.InterestRate")).Return(nil).Once()

	updated, err := suite.service.UpdateRate(ctx, rateID, dto.UpdateRateRequest{RatePercentage: &newRate}, suite.actorID)

	suite.Require().NoError(err)
	suite.True(updated.RatePercentage.Equal(newRate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestUpdateRate_LiveRejected() {
	ctx := context.Background()
	rateID := uuid.NewString()
	live := &domain.InterestRate{
		RateID:          rateID,
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateLoans,
		RatePercentage:  decimal.NewFromInt(10),
		EffectiveDate:   time.Now().UTC().AddDate(0, -1, 0),
	}
	newRate := decimal.NewFromInt(11)

	suite.mockRateRepo.On("FindRateByID", ctx, rateID).Return(live, nil).Once()

	_, err := suite.service.UpdateRate(ctx, rateID, dto.UpdateRateRequest{RatePercentage: &newRate}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateAlreadyLive)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestUpdateRate_BackdateRejected() {
	ctx := context.Background()
	rateID := uuid.NewString()
	future := &domain.InterestRate{
		RateID:          rateID,
		ScopeRef:        "KAS-1",
		TransactionType: domain.RateLoans,
		RatePercentage:  decimal.NewFromInt(10),
		EffectiveDate:   time.Now().UTC().AddDate(0, 0, 7),
	}
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("FindRateByID", ctx, rateID).Return(future, nil).Once()

	_, err := suite.service.UpdateRate(ctx, rateID, dto.UpdateRateRequest{EffectiveDate: &past}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateAlreadyLive)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestDeleteRate_LiveRejected() {
	ctx := context.Background()
	rateID := uuid.NewString()
	live := &domain.InterestRate{
		RateID:        rateID,
		EffectiveDate: time.Now().UTC(),
	}

	suite.mockRateRepo.On("FindRateByID", ctx, rateID).Return(live, nil).Once()

	err := suite.service.DeleteRate(ctx, rateID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateAlreadyLive)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeleteRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestDeleteRate_FutureRate() {
	ctx := context.Background()
	rateID := uuid.NewString()
	future := &domain.InterestRate{
		RateID:        rateID,
		EffectiveDate: time.Now().UTC().AddDate(0, 0, 7),
	}

	suite.mockRateRepo.On("FindRateByID", ctx, rateID).Return(future, nil).Once()
	suite.mockRateRepo.On("DeleteRate", ctx, rateID).Return(nil).Once()

	err := suite.service.DeleteRate(ctx, rateID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
