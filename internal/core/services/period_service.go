package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/dto"
)

var (
	ErrPeriodNotFound          = errors.New("accounting period not found")
	ErrFiscalYearExists        = errors.New("fiscal year already has periods")
	ErrUnresolvedEntries       = errors.New("period has entries pending resolution")
	ErrPeriodLocked            = errors.New("period is locked and cannot be reopened")
	ErrInvalidPeriodTransition = errors.New("period status transition not allowed")
	ErrRetainedEarningsMissing = errors.New("retained earnings system account not configured")
)

// RetainedEarningsAccountName is the system account that absorbs the net result
// of year-end closing.
const RetainedEarningsAccountName = "Retained Earnings"

// unresolvedStatuses are the entry states that block a hard close.
var unresolvedStatuses = []domain.EntryStatus{
	domain.EntryDraft,
	domain.EntryPendingApproval,
	domain.EntryApproved,
}

// periodService manages the accounting calendar and its close cycle.
type periodService struct {
	BaseService
	periodRepo  portsrepo.PeriodRepository
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
	journalSvc  portssvc.JournalSvcFacade
}

// NewPeriodService creates a new accounting period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepository, accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository, journalSvc portssvc.JournalSvcFacade) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreateFiscalYear generates the twelve calendar-month periods of a fiscal year
// in one batch. Month boundaries come straight from the calendar, so February
// length follows the leap year rule automatically.
func (s *periodService) CreateFiscalYear(ctx context.Context, fiscalYear int, creatorUserID string) ([]domain.AccountingPeriod, error) {
	if fiscalYear < 1900 || fiscalYear > 2200 {
		return nil, fmt.Errorf("%w: fiscal year %d out of range", apperrors.ErrValidation, fiscalYear)
	}

	count, err := s.periodRepo.CountPeriodsByYear(ctx, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to count existing periods", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %d", ErrFiscalYearExists, fiscalYear)
	}

	now := time.Now().UTC()
	periods := make([]domain.AccountingPeriod, 0, 12)
	for month := 1; month <= 12; month++ {
		start := time.Date(fiscalYear, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		// Day zero of the next month is the last day of this one.
		end := time.Date(fiscalYear, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC)
		periods = append(periods, domain.AccountingPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYear:   fiscalYear,
			PeriodNumber: month,
			StartDate:    start,
			EndDate:      end,
			Status:       domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	if err := s.periodRepo.SavePeriods(ctx, periods); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %d", ErrFiscalYearExists, fiscalYear)
		}
		s.LogError(ctx, err, "Failed to save fiscal year periods", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.Int("fiscal_year", fiscalYear), slog.Int("periods", len(periods)))
	return periods, nil
}

func (s *periodService) GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrPeriodNotFound, periodID)
		}
		s.LogError(ctx, err, "Failed to find period", slog.String("period_id", periodID))
		return nil, err
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context, fiscalYear int) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByYear(ctx, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.Int("fiscal_year", fiscalYear))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}

func (s *periodService) PeriodForDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no period covers %s", ErrPeriodNotFound, date.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to resolve period for date", slog.Time("date", date))
		return nil, err
	}
	return period, nil
}

// SoftClosePeriod flags the period as closing soon. Advisory only; postings are
// still accepted.
func (s *periodService) SoftClosePeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, periodID, actorID, domain.PeriodSoftClose)
}

// ClosePeriod hard-closes the period. Blocked while any entry of the period is
// still Draft, PendingApproval or Approved; the repository re-checks that count
// under a row lock so a racing submit cannot slip in.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	period, err := s.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if !period.Status.CanTransitionTo(domain.PeriodClosed) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPeriodTransition, period.Status, domain.PeriodClosed)
	}

	pending, err := s.periodRepo.CountEntriesInStatuses(ctx, periodID, unresolvedStatuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unresolved entries", slog.String("period_id", periodID))
		return nil, err
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: %d unresolved", ErrUnresolvedEntries, pending)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, period.Status, unresolvedStatuses, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %v", ErrUnresolvedEntries, err)
		}
		s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		return nil, err
	}

	s.LogInfo(ctx, "Period closed", slog.String("period_id", periodID))
	return s.GetPeriod(ctx, periodID)
}

// LockPeriod makes the close permanent. Terminal.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, periodID, actorID, domain.PeriodLocked)
}

// ReopenPeriod returns a SoftClose or Closed period to Open. Locked periods
// never reopen.
func (s *periodService) ReopenPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	period, err := s.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %s", ErrPeriodLocked, periodID)
	}
	return s.apply(ctx, period, actorID, domain.PeriodOpen)
}

func (s *periodService) transition(ctx context.Context, periodID, actorID string, to domain.PeriodStatus) (*domain.AccountingPeriod, error) {
	period, err := s.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, period, actorID, to)
}

func (s *periodService) apply(ctx context.Context, period *domain.AccountingPeriod, actorID string, to domain.PeriodStatus) (*domain.AccountingPeriod, error) {
	if !period.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPeriodTransition, period.Status, to)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, period.PeriodID, period.Status, to, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: period %s changed concurrently", apperrors.ErrConflict, period.PeriodID)
		}
		s.LogError(ctx, err, "Failed to update period status", slog.String("period_id", period.PeriodID))
		return nil, err
	}

	period.Status = to
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID
	s.LogInfo(ctx, "Period status changed",
		slog.String("period_id", period.PeriodID),
		slog.String("status", string(to)))
	return period, nil
}

// GenerateYearEndClosing builds and auto-posts the closing entry for a fiscal
// year: every Revenue and Expense account with a non-zero posted balance is
// zeroed out and the net result lands on Retained Earnings. Returns nil when
// there is nothing to close.
func (s *periodService) GenerateYearEndClosing(ctx context.Context, fiscalYear int, actorID string) (*domain.JournalEntry, error) {
	totals, err := s.journalRepo.AccountTotalsForYear(ctx, fiscalYear,
		[]domain.AccountCategory{domain.Revenue, domain.Expense})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate yearly totals", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}

	var lines []dto.CreateLineRequest
	// Net credit the closing lines leave behind; Retained Earnings absorbs it.
	net := decimal.Zero
	for _, row := range totals {
		balance := row.DebitTotal.Sub(row.CreditTotal)
		if balance.IsZero() {
			continue
		}
		line := dto.CreateLineRequest{
			AccountID:   row.AccountID,
			Description: fmt.Sprintf("Year-end closing %d", fiscalYear),
		}
		if balance.IsPositive() {
			// Debit balance, close with a credit.
			line.Credit = balance
			net = net.Sub(balance)
		} else {
			line.Debit = balance.Neg()
			net = net.Add(balance.Neg())
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		s.LogInfo(ctx, "Nothing to close for fiscal year", slog.Int("fiscal_year", fiscalYear))
		return nil, nil
	}

	retained, err := s.accountRepo.FindSystemAccount(ctx, domain.Equity, RetainedEarningsAccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrRetainedEarningsMissing
		}
		s.LogError(ctx, err, "Failed to find retained earnings account")
		return nil, err
	}

	// A break-even year leaves the closing lines already balanced; a zero-amount
	// balancing line would be an invalid journal line.
	if !net.IsZero() {
		balancing := dto.CreateLineRequest{
			AccountID:   retained.AccountID,
			Description: fmt.Sprintf("Net result %d", fiscalYear),
		}
		if net.IsPositive() {
			// Closing lines net to a debit surplus, balance with a credit (profit).
			balancing.Credit = net
		} else {
			balancing.Debit = net.Neg()
		}
		lines = append(lines, balancing)
	}

	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateEntryRequest{
		SourceType:      string(domain.SourceClosing),
		SourceReference: fmt.Sprintf("FY-%d", fiscalYear),
		Description:     fmt.Sprintf("Year-end closing entry for fiscal year %d", fiscalYear),
		EffectiveDate:   time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC),
		CurrencyCode:    retained.CurrencyCode,
		Lines:           lines,
		AutoPost:        true,
	}, actorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to create closing entry", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}

	s.LogInfo(ctx, "Year-end closing posted",
		slog.Int("fiscal_year", fiscalYear),
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber))
	return entry, nil
}
