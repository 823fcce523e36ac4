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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CountEntriesInRange(ctx context.Context, start, end time.Time, status *domain.EntryStatus) (int, error) {
	args := m.Called(ctx, start, end, status)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, reversing *domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, original, reversing, lines)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorActorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorActorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) NormalBalanceOf(ctx context.Context, code string) (domain.BalanceSide, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.BalanceSide), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string, actorID string) error {
	args := m.Called(ctx, code, actorID)
	return args.Error(0)
}

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) OpenPeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorActorID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, req, creatorActorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, periodID string, actorID string) error {
	args := m.Called(ctx, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, periodID string, actorID string) error {
	args := m.Called(ctx, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) LockPeriod(ctx context.Context, periodID string, actorID string) error {
	args := m.Called(ctx, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) UnlockPeriod(ctx context.Context, periodID string, actorID string) error {
	args := m.Called(ctx, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) DeletePeriod(ctx context.Context, periodID string, actorID string) error {
	args := m.Called(ctx, periodID, actorID)
	return args.Error(0)
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) IsPostable(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodService) AcquirePostingLock(ctx context.Context, date time.Time) (func(), error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockPeriodSvc   *MockPeriodService
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	savingsAccount  domain.Account
	actorID         string
	entryDate       time.Time
	releaseCalled   bool
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockPeriodSvc)

	suite.actorID = uuid.NewString()
	suite.entryDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.releaseCalled = false

	suite.cashAccount = domain.Account{
		Code:          "1001",
		Name:          "Kas",
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
		IsActive:      true,
	}
	suite.savingsAccount = domain.Account{
		Code:          "2101",
		Name:          "Simpanan Anggota",
		AccountType:   domain.Liability,
		NormalBalance: domain.Credit,
		IsActive:      true,
	}
}

func (suite *JournalServiceTestSuite) release() {
	suite.releaseCalled = true
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        suite.entryDate,
		Description: "Setoran simpanan wajib",
		Lines: []dto.CreateLineRequest{
			{AccountCode: "1001", Debit: decimal.NewFromInt(100)},
			{AccountCode: "2101", Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	suite.mockAccountSvc.On("GetAccountsByCodes", mock.Anything, []string{"1001", "2101"}).Return(map[string]domain.Account{
		"1001": suite.cashAccount,
		"2101": suite.savingsAccount,
	}, nil).Once()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAccounts()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNumber = "JE-000001"
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal("JE-000001", entry.EntryNumber)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(suite.actorID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.True(suite.releaseCalled)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PostImmediately() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.PostImmediately = true

	suite.expectAccounts()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientLines)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothSidesSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(100)

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBothSidedLine)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ZeroAmountLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.Zero

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBothSidedLine)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountSvc.On("GetAccountsByCodes", mock.Anything, []string{"1001", "2101"}).Return(map[string]domain.Account{
		"1001": suite.cashAccount,
	}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAccount)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.savingsAccount
	inactive.IsActive = false
	suite.mockAccountSvc.On("GetAccountsByCodes", mock.Anything, []string{"1001", "2101"}).Return(map[string]domain.Account{
		"1001": suite.cashAccount,
		"2101": inactive,
	}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAccount)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PeriodNotOpen() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAccounts()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(nil, services.ErrPeriodClosed).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_IdempotentReplay() {
	ctx := context.Background()
	key := uuid.NewString()
	req := suite.balancedRequest()
	req.IdempotencyKey = &key

	existing := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		EntryNumber:    "JE-000042",
		Status:         domain.Posted,
		IdempotencyKey: &key,
	}
	suite.mockJournalRepo.On("FindEntryByIdempotencyKey", ctx, key).Return(existing, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, existing.EntryID).Return([]domain.JournalLine{}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(existing.EntryID, entry.EntryID)
	suite.Equal("JE-000042", entry.EntryNumber)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_IdempotentReplayAfterRace() {
	ctx := context.Background()
	key := uuid.NewString()
	req := suite.balancedRequest()
	req.IdempotencyKey = &key

	winner := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		EntryNumber:    "JE-000043",
		Status:         domain.Posted,
		IdempotencyKey: &key,
	}

	// The pre-check sees nothing, then a concurrent submission commits first
	// and the insert trips the unique index on the key.
	suite.mockJournalRepo.On("FindEntryByIdempotencyKey", ctx, key).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAccounts()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("FindEntryByIdempotencyKey", ctx, key).Return(winner, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, winner.EntryID).Return([]domain.JournalLine{}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(winner.EntryID, entry.EntryID)
	suite.Equal("JE-000043", entry.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000007",
		EntryDate:   suite.entryDate,
		Status:      domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, entryID, domain.Posted, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	entry, err := suite.service.PostEntry(ctx, entryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.True(suite.releaseCalled)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidState)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestEditEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	_, err := suite.service.EditEntry(ctx, entryID, dto.EditEntryRequest{Lines: suite.balancedRequest().Lines}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceEntryLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestEditEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000009",
		EntryDate:   suite.entryDate,
		Status:      domain.Draft,
	}

	newDesc := "Koreksi setoran"
	req := dto.EditEntryRequest{
		Description: &newDesc,
		Lines: []dto.CreateLineRequest{
			{AccountCode: "1001", Debit: decimal.NewFromInt(250)},
			{AccountCode: "2101", Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, suite.entryDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("ReplaceEntryLines", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.EditEntry(ctx, entryID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(newDesc, entry.Description)
	suite.Len(entry.Lines, 2)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(250)))
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_DraftOnly() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversed := &domain.JournalEntry{EntryID: entryID, Status: domain.Reversed}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversed, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalDate := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000011",
		EntryDate:   suite.entryDate,
		Description: "Setoran simpanan",
		Status:      domain.Posted,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "1001", Debit: decimal.NewFromInt(500)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "2101", Credit: decimal.NewFromInt(500)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockPeriodSvc.On("AcquirePostingLock", ctx, reversalDate).Return(suite.release, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, *original, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			reversing := args.Get(2).(*domain.JournalEntry)
			reversing.EntryNumber = "JE-000012"
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, reversalDate, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Equal(reversalDate, reversal.EntryDate)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entryID, *reversal.OriginalEntryID)
	suite.Contains(reversal.Description, "Reversal of JE-000011")

	// Every line's sides must be swapped.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(reversal.Lines[0].Debit.IsZero())
	suite.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(500)))
	suite.True(reversal.Lines[1].Credit.IsZero())

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.entryDate, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_OfReversalRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	sourceID := uuid.NewString()
	reversalEntry := &domain.JournalEntry{
		EntryID:         entryID,
		Status:          domain.Posted,
		OriginalEntryID: &sourceID,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversalEntry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.entryDate, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListEntries", ctx, 20, 0).Return([]domain.JournalEntry{}, nil).Once()

	entries, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
