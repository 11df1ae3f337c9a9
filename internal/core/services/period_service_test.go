package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/core/services"
	"github.com/meridianlend/ledger/internal/dto"
)

// MockJournalSvcFacade is a mock type for the JournalSvcFacade interface.
type MockJournalSvcFacade struct {
	mock.Mock
}

func (m *MockJournalSvcFacade) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) PreviewEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.PreviewEntryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewEntryResponse), args.Error(1)
}

func (m *MockJournalSvcFacade) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalSvcFacade) ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLinesResponse), args.Error(1)
}

func (m *MockJournalSvcFacade) SubmitEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) ApproveEntry(ctx context.Context, entryID string, approverID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) RejectEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvcFacade) ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockJournalSvc  *MockJournalSvcFacade
	service         portssvc.PeriodSvcFacade
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockJournalSvc = new(MockJournalSvcFacade)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockAccountRepo, suite.mockJournalRepo, suite.mockJournalSvc)
}

func (suite *PeriodServiceTestSuite) periodInStatus(status domain.PeriodStatus) *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID:     uuid.NewString(),
		FiscalYear:   2026,
		PeriodNumber: 3,
		StartDate:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

// --- CreateFiscalYear ---

func (suite *PeriodServiceTestSuite) TestCreateFiscalYear_TwelveCalendarMonths() {
	ctx := context.Background()
	creator := uuid.NewString()

	suite.mockPeriodRepo.On("CountPeriodsByYear", ctx, 2026).Return(0, nil).Once()
	suite.mockPeriodRepo.On("SavePeriods", ctx, mock.MatchedBy(func(periods []domain.AccountingPeriod) bool {
		if len(periods) != 12 {
			return false
		}
		jan := periods[0]
		dec := periods[11]
		return jan.PeriodNumber == 1 &&
			jan.StartDate.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) &&
			jan.EndDate.Equal(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)) &&
			dec.PeriodNumber == 12 &&
			dec.EndDate.Equal(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	periods, err := suite.service.CreateFiscalYear(ctx, 2026, creator)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 12)
	for i, p := range periods {
		suite.Equal(i+1, p.PeriodNumber)
		suite.Equal(domain.PeriodOpen, p.Status)
		suite.Equal(creator, p.CreatedBy)
	}
	// February 2026 is not a leap year.
	suite.True(periods[1].EndDate.Equal(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)))
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalYear_LeapYearFebruary() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("CountPeriodsByYear", ctx, 2024).Return(0, nil).Once()
	suite.mockPeriodRepo.On("SavePeriods", ctx, mock.AnythingOfType("[]domain.AccountingPeriod")).Return(nil).Once()

	periods, err := suite.service.CreateFiscalYear(ctx, 2024, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(periods[1].EndDate.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalYear_AlreadyExists() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("CountPeriodsByYear", ctx, 2026).Return(12, nil).Once()

	periods, err := suite.service.CreateFiscalYear(ctx, 2026, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(periods)
	suite.ErrorIs(err, services.ErrFiscalYearExists)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriods", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalYear_YearOutOfRange() {
	ctx := context.Background()

	periods, err := suite.service.CreateFiscalYear(ctx, 1776, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(periods)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Lifecycle transitions ---

func (suite *PeriodServiceTestSuite) TestSoftClosePeriod_Success() {
	ctx := context.Background()
	actor := uuid.NewString()
	period := suite.periodInStatus(domain.PeriodOpen)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodOpen, domain.PeriodSoftClose, actor, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.SoftClosePeriod(ctx, period.PeriodID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodSoftClose, result.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_FromOpenRejected() {
	ctx := context.Background()
	period := suite.periodInStatus(domain.PeriodOpen)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	result, err := suite.service.LockPeriod(ctx, period.PeriodID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrInvalidPeriodTransition)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_FromClosed() {
	ctx := context.Background()
	actor := uuid.NewString()
	period := suite.periodInStatus(domain.PeriodClosed)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodClosed, domain.PeriodLocked, actor, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.LockPeriod(ctx, period.PeriodID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodLocked, result.Status)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_FromClosed() {
	ctx := context.Background()
	actor := uuid.NewString()
	period := suite.periodInStatus(domain.PeriodClosed)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodClosed, domain.PeriodOpen, actor, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ReopenPeriod(ctx, period.PeriodID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, result.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_LockedNeverReopens() {
	ctx := context.Background()
	period := suite.periodInStatus(domain.PeriodLocked)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	result, err := suite.service.ReopenPeriod(ctx, period.PeriodID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrPeriodLocked)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ClosePeriod ---

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	actor := uuid.NewString()
	period := suite.periodInStatus(domain.PeriodSoftClose)
	closed := *period
	closed.Status = domain.PeriodClosed

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("CountEntriesInStatuses", ctx, period.PeriodID, mock.AnythingOfType("[]domain.EntryStatus")).Return(0, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, period.PeriodID, domain.PeriodSoftClose, mock.AnythingOfType("[]domain.EntryStatus"), actor, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&closed, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, period.PeriodID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, result.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_BlockedByUnresolvedEntries() {
	ctx := context.Background()
	period := suite.periodInStatus(domain.PeriodOpen)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("CountEntriesInStatuses", ctx, period.PeriodID, mock.AnythingOfType("[]domain.EntryStatus")).Return(3, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, period.PeriodID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrUnresolvedEntries)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_RacingSubmitCaughtUnderLock() {
	ctx := context.Background()
	period := suite.periodInStatus(domain.PeriodOpen)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockPeriodRepo.On("CountEntriesInStatuses", ctx, period.PeriodID, mock.AnythingOfType("[]domain.EntryStatus")).Return(0, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, period.PeriodID, domain.PeriodOpen, mock.AnythingOfType("[]domain.EntryStatus"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	result, err := suite.service.ClosePeriod(ctx, period.PeriodID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrUnresolvedEntries)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyLocked() {
	ctx := context.Background()
	period := suite.periodInStatus(domain.PeriodLocked)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, period.PeriodID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrInvalidPeriodTransition)
}

// --- GenerateYearEndClosing ---

func (suite *PeriodServiceTestSuite) TestGenerateYearEndClosing_ProfitCreditsRetainedEarnings() {
	ctx := context.Background()
	actor := uuid.NewString()
	revenueID := uuid.NewString()
	expenseID := uuid.NewString()
	retained := &domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     "3-1000",
		Name:            "Retained Earnings",
		Category:        domain.Equity,
		CurrencyCode:    "USD",
		IsSystemAccount: true,
	}
	totals := []portsrepo.AccountTotals{
		{AccountID: revenueID, Category: domain.Revenue, DebitTotal: decimal.Zero, CreditTotal: decimal.RequireFromString("1000.00")},
		{AccountID: expenseID, Category: domain.Expense, DebitTotal: decimal.RequireFromString("400.00"), CreditTotal: decimal.Zero},
	}
	posted := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: 77, Status: domain.EntryPosted}

	suite.mockJournalRepo.On("AccountTotalsForYear", ctx, 2025, []domain.AccountCategory{domain.Revenue, domain.Expense}).Return(totals, nil).Once()
	suite.mockAccountRepo.On("FindSystemAccount", ctx, domain.Equity, services.RetainedEarningsAccountName).Return(retained, nil).Once()
	suite.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.SourceType != string(domain.SourceClosing) || !req.AutoPost || req.CurrencyCode != "USD" {
			return false
		}
		if !req.EffectiveDate.Equal(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)) {
			return false
		}
		if len(req.Lines) != 3 {
			return false
		}
		// Revenue zeroed with a debit, expense with a credit, profit credited
		// to retained earnings.
		return req.Lines[0].AccountID == revenueID && req.Lines[0].Debit.Equal(decimal.RequireFromString("1000.00")) &&
			req.Lines[1].AccountID == expenseID && req.Lines[1].Credit.Equal(decimal.RequireFromString("400.00")) &&
			req.Lines[2].AccountID == retained.AccountID && req.Lines[2].Credit.Equal(decimal.RequireFromString("600.00"))
	}), actor).Return(posted, nil).Once()

	entry, err := suite.service.GenerateYearEndClosing(ctx, 2025, actor)

	suite.Require().NoError(err)
	suite.Equal(posted, entry)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGenerateYearEndClosing_LossDebitsRetainedEarnings() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	retained := &domain.Account{
		AccountID:    uuid.NewString(),
		Category:     domain.Equity,
		CurrencyCode: "USD",
	}
	totals := []portsrepo.AccountTotals{
		{AccountID: expenseID, Category: domain.Expense, DebitTotal: decimal.RequireFromString("250.00"), CreditTotal: decimal.Zero},
	}
	posted := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.EntryPosted}

	suite.mockJournalRepo.On("AccountTotalsForYear", ctx, 2025, mock.AnythingOfType("[]domain.AccountCategory")).Return(totals, nil).Once()
	suite.mockAccountRepo.On("FindSystemAccount", ctx, domain.Equity, services.RetainedEarningsAccountName).Return(retained, nil).Once()
	suite.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return len(req.Lines) == 2 &&
			req.Lines[0].Credit.Equal(decimal.RequireFromString("250.00")) &&
			req.Lines[1].AccountID == retained.AccountID &&
			req.Lines[1].Debit.Equal(decimal.RequireFromString("250.00"))
	}), mock.AnythingOfType("string")).Return(posted, nil).Once()

	entry, err := suite.service.GenerateYearEndClosing(ctx, 2025, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGenerateYearEndClosing_BreakEvenOmitsBalancingLine() {
	ctx := context.Background()
	revenueID := uuid.NewString()
	expenseID := uuid.NewString()
	retained := &domain.Account{
		AccountID:    uuid.NewString(),
		Category:     domain.Equity,
		CurrencyCode: "USD",
	}
	totals := []portsrepo.AccountTotals{
		{AccountID: revenueID, Category: domain.Revenue, DebitTotal: decimal.Zero, CreditTotal: decimal.RequireFromString("100.00")},
		{AccountID: expenseID, Category: domain.Expense, DebitTotal: decimal.RequireFromString("100.00"), CreditTotal: decimal.Zero},
	}
	posted := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.EntryPosted}

	suite.mockJournalRepo.On("AccountTotalsForYear", ctx, 2025, mock.AnythingOfType("[]domain.AccountCategory")).Return(totals, nil).Once()
	suite.mockAccountRepo.On("FindSystemAccount", ctx, domain.Equity, services.RetainedEarningsAccountName).Return(retained, nil).Once()
	// Net result is zero, so no retained-earnings line is emitted; the two
	// closing lines already balance each other.
	suite.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return len(req.Lines) == 2 &&
			req.Lines[0].AccountID == revenueID && req.Lines[0].Debit.Equal(decimal.RequireFromString("100.00")) &&
			req.Lines[1].AccountID == expenseID && req.Lines[1].Credit.Equal(decimal.RequireFromString("100.00"))
	}), mock.AnythingOfType("string")).Return(posted, nil).Once()

	entry, err := suite.service.GenerateYearEndClosing(ctx, 2025, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGenerateYearEndClosing_NothingToClose() {
	ctx := context.Background()
	totals := []portsrepo.AccountTotals{
		{AccountID: uuid.NewString(), Category: domain.Revenue, DebitTotal: decimal.RequireFromString("50.00"), CreditTotal: decimal.RequireFromString("50.00")},
	}

	suite.mockJournalRepo.On("AccountTotalsForYear", ctx, 2025, mock.AnythingOfType("[]domain.AccountCategory")).Return(totals, nil).Once()

	entry, err := suite.service.GenerateYearEndClosing(ctx, 2025, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestGenerateYearEndClosing_RetainedEarningsMissing() {
	ctx := context.Background()
	totals := []portsrepo.AccountTotals{
		{AccountID: uuid.NewString(), Category: domain.Revenue, DebitTotal: decimal.Zero, CreditTotal: decimal.RequireFromString("10.00")},
	}

	suite.mockJournalRepo.On("AccountTotalsForYear", ctx, 2025, mock.AnythingOfType("[]domain.AccountCategory")).Return(totals, nil).Once()
	suite.mockAccountRepo.On("FindSystemAccount", ctx, domain.Equity, services.RetainedEarningsAccountName).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GenerateYearEndClosing(ctx, 2025, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrRetainedEarningsMissing)
}

// --- Reads ---

func (suite *PeriodServiceTestSuite) TestGetPeriod_NotFound() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(nil, apperrors.ErrNotFound).Once()

	period, err := suite.service.GetPeriod(ctx, periodID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodNotFound)
}

func (suite *PeriodServiceTestSuite) TestPeriodForDate_Success() {
	ctx := context.Background()
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	period := suite.periodInStatus(domain.PeriodOpen)

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, date).Return(period, nil).Once()

	result, err := suite.service.PeriodForDate(ctx, date)

	suite.Require().NoError(err)
	suite.Equal(period.PeriodID, result.PeriodID)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
