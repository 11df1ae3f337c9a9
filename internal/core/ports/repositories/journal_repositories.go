package ports

import (
	"context"
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateEntryStatusParams describes a guarded status transition. The repository
// only flips the row when its current status equals From, returning ErrConflict
// otherwise so concurrent transitions cannot both succeed.
type UpdateEntryStatusParams struct {
	EntryID        string
	From           domain.EntryStatus
	To             domain.EntryStatus
	ActorID        string
	At             time.Time
	RejectedReason string // only consulted when To == EntryRejected
}

// ListEntriesQuery filters and paginates entry listings.
type ListEntriesQuery struct {
	PeriodID   string
	Status     domain.EntryStatus
	SourceType domain.SourceType
	Limit      int
	NextToken  *string
}

// BalanceQuery scopes a posted-lines balance aggregation.
type BalanceQuery struct {
	AccountIDs []string
	AsOf       *time.Time // effective-date cutoff, inclusive
	PeriodID   string     // restrict to one period when set
}

// AccountTotals is an aggregation row of posted debits and credits per account.
type AccountTotals struct {
	AccountID   string
	AccountCode string
	Name        string
	Category    domain.AccountCategory
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// JournalRepository defines the persistence operations for journal entries and
// their lines. Saving an entry persists its lines and allocates the entry number
// atomically.
type JournalRepository interface {
	// SaveEntry inserts the entry and its lines in one transaction and returns the
	// allocated entry number (from a database sequence, never reused).
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error)

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// FindEntryByIDForUpdate row-locks the entry; meaningful inside WithTx.
	FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindPeriodStatus and FindAccountStatuses are the posting-time guards; inside
	// WithTx they observe the same snapshot as the status flip.
	FindPeriodStatus(ctx context.Context, periodID string) (domain.PeriodStatus, error)
	FindAccountStatuses(ctx context.Context, accountIDs []string) (map[string]domain.AccountStatus, error)

	UpdateEntryStatus(ctx context.Context, params UpdateEntryStatusParams) error
	// SetReversalLinks marks the original entry Reversed and wires the mutual
	// back-references between original and reversing entry.
	SetReversalLinks(ctx context.Context, originalEntryID, reversingEntryID, actorID string, at time.Time) error

	ListEntries(ctx context.Context, query ListEntriesQuery) ([]domain.JournalEntry, *string, error)
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)

	// SumPostedLines aggregates debit/credit totals over lines of Posted entries only.
	SumPostedLines(ctx context.Context, query BalanceQuery) (debitTotal, creditTotal decimal.Decimal, err error)
	// AccountTotalsForYear aggregates posted totals per account across all periods
	// of a fiscal year, restricted to the given categories.
	AccountTotalsForYear(ctx context.Context, fiscalYear int, categories []domain.AccountCategory) ([]AccountTotals, error)
	// TrialBalance aggregates posted totals for every account with activity.
	TrialBalance(ctx context.Context, asOf *time.Time) ([]AccountTotals, error)
}

// JournalRepositoryWithTx is a JournalRepository that can scope a sequence of
// repository calls to a single database transaction.
type JournalRepositoryWithTx interface {
	JournalRepository
	// WithTx runs fn with a repository bound to one transaction; the transaction
	// commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(txRepo JournalRepository) error) error
}
