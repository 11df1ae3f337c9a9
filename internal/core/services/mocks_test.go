package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
)

// MockCurrencyRepository is a mock type for the CurrencyRepository interface.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepository interface.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListSiblingCodes(ctx context.Context, parentAccountID string, category domain.AccountCategory) ([]string, error) {
	args := m.Called(ctx, parentAccountID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) ListDescendantIDs(ctx context.Context, accountID string) ([]string, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) FindSystemAccount(ctx context.Context, category domain.AccountCategory, name string) (*domain.Account, error) {
	args := m.Called(ctx, category, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, audits []domain.AccountAuditRecord) error {
	args := m.Called(ctx, account, audits)
	return args.Error(0)
}

func (m *MockAccountRepository) ListAuditTrail(ctx context.Context, accountID string) ([]domain.AccountAuditRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAuditRecord), args.Error(1)
}

func (m *MockAccountRepository) HasAnyLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// MockPeriodRepository is a mock type for the PeriodRepository interface.
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error {
	args := m.Called(ctx, periods)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) CountPeriodsByYear(ctx context.Context, fiscalYear int) (int, error) {
	args := m.Called(ctx, fiscalYear)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, actorID string, at time.Time) error {
	args := m.Called(ctx, periodID, from, to, actorID, at)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, from domain.PeriodStatus, unresolved []domain.EntryStatus, actorID string, at time.Time) error {
	args := m.Called(ctx, periodID, from, unresolved, actorID, at)
	return args.Error(0)
}

func (m *MockPeriodRepository) CountEntriesInStatuses(ctx context.Context, periodID string, statuses []domain.EntryStatus) (int, error) {
	args := m.Called(ctx, periodID, statuses)
	return args.Int(0), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface.
// WithTx runs the callback against the mock itself, standing in for the
// transaction-bound repository.
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) WithTx(ctx context.Context, fn func(txRepo portsrepo.JournalRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error) {
	args := m.Called(ctx, entry, lines)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
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

func (m *MockJournalRepository) FindPeriodStatus(ctx context.Context, periodID string) (domain.PeriodStatus, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(domain.PeriodStatus), args.Error(1)
}

func (m *MockJournalRepository) FindAccountStatuses(ctx context.Context, accountIDs []string) (map[string]domain.AccountStatus, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountStatus), args.Error(1)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, params portsrepo.UpdateEntryStatusParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockJournalRepository) SetReversalLinks(ctx context.Context, originalEntryID, reversingEntryID, actorID string, at time.Time) error {
	args := m.Called(ctx, originalEntryID, reversingEntryID, actorID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, query portsrepo.ListEntriesQuery) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, query)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var lines []domain.JournalLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.JournalLine)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return lines, token, args.Error(2)
}

func (m *MockJournalRepository) SumPostedLines(ctx context.Context, query portsrepo.BalanceQuery) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) AccountTotalsForYear(ctx context.Context, fiscalYear int, categories []domain.AccountCategory) ([]portsrepo.AccountTotals, error) {
	args := m.Called(ctx, fiscalYear, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountTotals), args.Error(1)
}

func (m *MockJournalRepository) TrialBalance(ctx context.Context, asOf *time.Time) ([]portsrepo.AccountTotals, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountTotals), args.Error(1)
}
