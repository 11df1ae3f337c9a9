package ports

import (
	"context"
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
)

// PeriodRepository defines persistence operations for accounting periods.
type PeriodRepository interface {
	// SavePeriods persists a batch of periods (one fiscal year) atomically.
	SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	// FindPeriodForDate resolves the period containing the date, or ErrNotFound.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.AccountingPeriod, error)
	CountPeriodsByYear(ctx context.Context, fiscalYear int) (int, error)

	// UpdatePeriodStatus flips the status guarded by the expected current status.
	// Returns ErrConflict when the row is no longer in the expected status.
	UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, actorID string, at time.Time) error

	// ClosePeriod locks the period row, re-checks that no entry in the period is in
	// one of the given unresolved statuses, and flips the status — all inside one
	// transaction. Returns the unresolved count alongside ErrConflict when blocked.
	ClosePeriod(ctx context.Context, periodID string, from domain.PeriodStatus, unresolved []domain.EntryStatus, actorID string, at time.Time) error

	// CountEntriesInStatuses counts entries of the period in the given statuses.
	CountEntriesInStatuses(ctx context.Context, periodID string, statuses []domain.EntryStatus) (int, error)
}
