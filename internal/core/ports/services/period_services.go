package ports

import (
	"context"
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
)

// PeriodSvcFacade is the accounting period manager boundary.
type PeriodSvcFacade interface {
	CreateFiscalYear(ctx context.Context, fiscalYear int, creatorUserID string) ([]domain.AccountingPeriod, error)
	GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, fiscalYear int) ([]domain.AccountingPeriod, error)
	PeriodForDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	SoftClosePeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)
	ClosePeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)
	LockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)
	ReopenPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)
	GenerateYearEndClosing(ctx context.Context, fiscalYear int, actorID string) (*domain.JournalEntry, error)
}
