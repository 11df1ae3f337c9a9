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
	"github.com/meridianlend/ledger/internal/middleware"
	"github.com/meridianlend/ledger/internal/utils/accounting"
)

var (
	ErrEntryNotFound          = errors.New("journal entry not found")
	ErrNoOpenPeriod           = errors.New("no postable accounting period for effective date")
	ErrPeriodNotPostable      = errors.New("accounting period no longer accepts postings")
	ErrAccountUnusable        = errors.New("account cannot accept postings")
	ErrSelfApproval           = errors.New("entry cannot be approved by its own submitter")
	ErrInvalidEntryTransition = errors.New("entry status transition not allowed")
	ErrNotPosted              = errors.New("only posted entries can be reversed")
	ErrAlreadyReversed        = errors.New("entry has already been reversed")
)

// BalanceError reports an unbalanced posting request with the exact delta, so
// callers can surface how far off the request was.
type BalanceError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Delta       decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("entry does not balance: debits %s, credits %s, delta %s",
		e.DebitTotal.String(), e.CreditTotal.String(), e.Delta.String())
}

// Unwrap classifies an unbalanced entry as a validation failure.
func (e *BalanceError) Unwrap() error { return apperrors.ErrValidation }

// journalService is the double-entry journal engine. Every write goes through
// here; lines are never persisted outside an entry and posted entries are never
// mutated in place.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryWithTx
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyReader
	periodRepo   portsrepo.PeriodRepository
	// systemUserID is the machine actor; it bypasses the four-eyes check so
	// automated pipelines can post without a second human.
	systemUserID string
}

// NewJournalService creates a new journal engine service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepository,
	currencyRepo portsrepo.CurrencyReader,
	periodRepo portsrepo.PeriodRepository,
	systemUserID string,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		periodRepo:   periodRepo,
		systemUserID: systemUserID,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatedEntry is the outcome of request validation: rounded lines and their totals.
type validatedEntry struct {
	lines       []domain.JournalLine
	debitTotal  decimal.Decimal
	creditTotal decimal.Decimal
	currency    *domain.Currency
}

// validateLines normalises and validates the lines of a posting request:
// currency-precision rounding, exactly one positive side per line, at least two
// lines over at least two distinct accounts, and account usability.
func (s *journalService) validateLines(ctx context.Context, req dto.CreateEntryRequest) (*validatedEntry, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCurrencyNotFound, req.CurrencyCode)
		}
		s.LogError(ctx, err, "Failed to resolve currency", slog.String("currency_code", req.CurrencyCode))
		return nil, err
	}

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: an entry needs at least two lines", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]struct{}, len(req.Lines))
	for _, line := range req.Lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	if len(accountIDs) < 2 {
		return nil, fmt.Errorf("%w: an entry must touch at least two distinct accounts", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load line accounts")
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for i, lr := range req.Lines {
		account, ok := accounts[lr.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: line %d account ID %s", ErrAccountNotFound, i+1, lr.AccountID)
		}
		switch account.Status {
		case domain.AccountClosed:
			return nil, fmt.Errorf("%w: account %s is closed", ErrAccountUnusable, account.AccountCode)
		case domain.AccountFrozen:
			if !req.AllowFrozen {
				return nil, fmt.Errorf("%w: account %s is frozen", ErrAccountUnusable, account.AccountCode)
			}
		}

		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		debit := accounting.RoundToPrecision(lr.Debit, currency.DecimalPlaces)
		credit := accounting.RoundToPrecision(lr.Credit, currency.DecimalPlaces)
		if debit.IsPositive() == credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}

		lines = append(lines, domain.JournalLine{
			AccountID:     lr.AccountID,
			Debit:         debit,
			Credit:        credit,
			Description:   lr.Description,
			LoanReference: lr.LoanReference,
		})
		debitTotal = debitTotal.Add(debit)
		creditTotal = creditTotal.Add(credit)
	}

	return &validatedEntry{
		lines:       lines,
		debitTotal:  debitTotal,
		creditTotal: creditTotal,
		currency:    currency,
	}, nil
}

func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	sourceType := domain.SourceType(req.SourceType)
	if !sourceType.Valid() {
		return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, req.SourceType)
	}

	exchangeRate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		if !req.ExchangeRate.IsPositive() {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		exchangeRate = *req.ExchangeRate
	}

	period, err := s.periodRepo.FindPeriodForDate(ctx, req.EffectiveDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, req.EffectiveDate.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to resolve period", slog.Time("effective_date", req.EffectiveDate))
		return nil, err
	}
	if !period.Status.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %d-%02d is %s",
			ErrNoOpenPeriod, period.FiscalYear, period.PeriodNumber, period.Status)
	}

	validated, err := s.validateLines(ctx, req)
	if err != nil {
		return nil, err
	}
	// The balance invariant is evaluated in functional-currency terms: the
	// exchange rate multiplies both totals before the comparison. Line amounts
	// stay in the entry currency.
	debitTotal := validated.debitTotal.Mul(exchangeRate)
	creditTotal := validated.creditTotal.Mul(exchangeRate)
	if !debitTotal.Equal(creditTotal) {
		return nil, &BalanceError{
			DebitTotal:  debitTotal,
			CreditTotal: creditTotal,
			Delta:       debitTotal.Sub(creditTotal),
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		Status:          domain.EntryDraft,
		SourceType:      sourceType,
		SourceReference: req.SourceReference,
		PeriodID:        period.PeriodID,
		EffectiveDate:   req.EffectiveDate,
		CurrencyCode:    validated.currency.CurrencyCode,
		ExchangeRate:    exchangeRate,
		Description:     req.Description,
		Narrative:       req.Narrative,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range validated.lines {
		validated.lines[i].LineID = uuid.NewString()
		validated.lines[i].EntryID = entry.EntryID
		validated.lines[i].AuditFields = entry.AuditFields
	}
	entry.Lines = validated.lines

	entryNumber, err := s.journalRepo.SaveEntry(ctx, entry, validated.lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	entry.EntryNumber = entryNumber

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("source_type", string(entry.SourceType)))

	if !req.AutoPost {
		return &entry, nil
	}
	return s.autoPost(ctx, &entry, creatorUserID)
}

// autoPost drives a fresh entry through submit, approve and post in one go.
// Approval is performed by the system actor so the four-eyes rule holds for
// humans while automated pipelines stay single-step.
func (s *journalService) autoPost(ctx context.Context, entry *domain.JournalEntry, creatorUserID string) (*domain.JournalEntry, error) {
	if _, err := s.SubmitEntry(ctx, entry.EntryID, creatorUserID); err != nil {
		return nil, fmt.Errorf("auto-post submit: %w", err)
	}
	if _, err := s.ApproveEntry(ctx, entry.EntryID, s.systemUserID); err != nil {
		return nil, fmt.Errorf("auto-post approve: %w", err)
	}
	posted, err := s.PostEntry(ctx, entry.EntryID, s.systemUserID)
	if err != nil {
		return nil, fmt.Errorf("auto-post post: %w", err)
	}
	return posted, nil
}

func (s *journalService) PreviewEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.PreviewEntryResponse, error) {
	if !domain.SourceType(req.SourceType).Valid() {
		return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, req.SourceType)
	}
	exchangeRate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		if !req.ExchangeRate.IsPositive() {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		exchangeRate = *req.ExchangeRate
	}
	validated, err := s.validateLines(ctx, req)
	if err != nil {
		return nil, err
	}
	// Same functional-currency evaluation as CreateEntry.
	debitTotal := validated.debitTotal.Mul(exchangeRate)
	creditTotal := validated.creditTotal.Mul(exchangeRate)
	return &dto.PreviewEntryResponse{
		Lines:       dto.ToLineResponses(validated.lines),
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Delta:       debitTotal.Sub(creditTotal),
		IsBalanced:  debitTotal.Equal(creditTotal),
	}, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrEntryNotFound, entryID)
		}
		s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		return nil, err
	}
	if entry.Lines == nil {
		lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
			return nil, err
		}
		entry.Lines = lines
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	query := portsrepo.ListEntriesQuery{
		PeriodID:  params.PeriodID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != "" {
		query.Status = domain.EntryStatus(params.Status)
	}
	if params.SourceType != "" {
		st := domain.SourceType(params.SourceType)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, params.SourceType)
		}
		query.SourceType = st
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *journalService) ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, accountID)
		}
		return nil, err
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines by account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	return &dto.ListLinesResponse{
		Lines:     dto.ToLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

func (s *journalService) SubmitEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, entryID, actorID, domain.EntryPendingApproval, "")
}

// ApproveEntry enforces the four-eyes rule: the submitter of an entry cannot be
// its approver, except for the system actor.
func (s *journalService) ApproveEntry(ctx context.Context, entryID string, approverID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if approverID != s.systemUserID && approverID == entry.CreatedBy {
		return nil, fmt.Errorf("%w: entry %d", ErrSelfApproval, entry.EntryNumber)
	}
	return s.transitionFrom(ctx, entry, approverID, domain.EntryApproved, "")
}

// PostEntry makes the entry immutable ledger fact. Inside one transaction it
// row-locks the entry, re-validates the period and account gates against the
// same snapshot, and flips the status guarded on the expected current state.
func (s *journalService) PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.journalRepo.WithTx(ctx, func(txRepo portsrepo.JournalRepository) error {
		entry, err := txRepo.FindEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: ID %s", ErrEntryNotFound, entryID)
			}
			return err
		}
		if !entry.Status.CanTransitionTo(domain.EntryPosted) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidEntryTransition, entry.Status, domain.EntryPosted)
		}

		periodStatus, err := txRepo.FindPeriodStatus(ctx, entry.PeriodID)
		if err != nil {
			return err
		}
		if !periodStatus.AcceptsPostings() {
			return fmt.Errorf("%w: period is %s", ErrPeriodNotPostable, periodStatus)
		}

		lines, err := txRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}
		accountIDs := make([]string, 0, len(lines))
		for _, line := range lines {
			accountIDs = append(accountIDs, line.AccountID)
		}
		statuses, err := txRepo.FindAccountStatuses(ctx, accountIDs)
		if err != nil {
			return err
		}
		for id, status := range statuses {
			if status != domain.AccountActive {
				return fmt.Errorf("%w: account %s is %s", ErrAccountUnusable, id, status)
			}
		}

		now := time.Now().UTC()
		if err := txRepo.UpdateEntryStatus(ctx, portsrepo.UpdateEntryStatusParams{
			EntryID: entryID,
			From:    entry.Status,
			To:      domain.EntryPosted,
			ActorID: actorID,
			At:      now,
		}); err != nil {
			return err
		}

		entry.Status = domain.EntryPosted
		entry.PostedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actorID
		entry.Lines = lines
		posted = entry
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrConflict, entryID)
		}
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, err
	}

	middleware.EntriesPosted.WithLabelValues(string(posted.SourceType)).Inc()
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.Int64("entry_number", posted.EntryNumber))
	return posted, nil
}

func (s *journalService) RejectEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection requires a reason", apperrors.ErrValidation)
	}
	entry, err := s.transition(ctx, entryID, actorID, domain.EntryRejected, reason)
	if err != nil {
		return nil, err
	}
	middleware.EntriesRejected.Inc()
	return entry, nil
}

// ReverseEntry produces the mirror entry for a posted entry and posts it in the
// same transaction that marks the original Reversed. The original is never
// mutated beyond its status and the back-reference.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()

	// The reversal lands in the period covering today, not the original's
	// period, so closed months stay closed.
	period, err := s.periodRepo.FindPeriodForDate(ctx, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, now.Format("2006-01-02"))
		}
		return nil, err
	}
	if !period.Status.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %d-%02d is %s",
			ErrNoOpenPeriod, period.FiscalYear, period.PeriodNumber, period.Status)
	}

	var reversal *domain.JournalEntry
	err = s.journalRepo.WithTx(ctx, func(txRepo portsrepo.JournalRepository) error {
		original, err := txRepo.FindEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: ID %s", ErrEntryNotFound, entryID)
			}
			return err
		}
		if original.Status == domain.EntryReversed || original.ReversedByEntryID != nil {
			return fmt.Errorf("%w: entry %d", ErrAlreadyReversed, original.EntryNumber)
		}
		if original.Status != domain.EntryPosted {
			return fmt.Errorf("%w: entry %d is %s", ErrNotPosted, original.EntryNumber, original.Status)
		}

		originalLines, err := txRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Reversal of entry %d", original.EntryNumber)
		if reason != "" {
			description = fmt.Sprintf("%s: %s", description, reason)
		}
		originalID := original.EntryID
		entry := domain.JournalEntry{
			EntryID:           uuid.NewString(),
			Status:            domain.EntryDraft,
			SourceType:        domain.SourceReversal,
			SourceReference:   original.SourceReference,
			PeriodID:          period.PeriodID,
			EffectiveDate:     now,
			CurrencyCode:      original.CurrencyCode,
			ExchangeRate:      original.ExchangeRate,
			Description:       description,
			Narrative:         original.Narrative,
			ReversalOfEntryID: &originalID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		lines := accounting.MirrorLines(originalLines)
		for i := range lines {
			lines[i].LineID = uuid.NewString()
			lines[i].EntryID = entry.EntryID
			lines[i].AuditFields = entry.AuditFields
		}
		entry.Lines = lines

		entryNumber, err := txRepo.SaveEntry(ctx, entry, lines)
		if err != nil {
			return err
		}
		entry.EntryNumber = entryNumber

		// Drive the reversal through the same status machine as any entry.
		for _, to := range []domain.EntryStatus{domain.EntryPendingApproval, domain.EntryApproved, domain.EntryPosted} {
			if err := txRepo.UpdateEntryStatus(ctx, portsrepo.UpdateEntryStatusParams{
				EntryID: entry.EntryID,
				From:    entry.Status,
				To:      to,
				ActorID: s.systemUserID,
				At:      now,
			}); err != nil {
				return err
			}
			entry.Status = to
		}
		entry.PostedAt = &now

		if err := txRepo.SetReversalLinks(ctx, original.EntryID, entry.EntryID, actorID, now); err != nil {
			return err
		}
		reversal = &entry
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrConflict, entryID)
		}
		s.LogError(ctx, err, "Failed to reverse entry", slog.String("entry_id", entryID))
		return nil, err
	}

	middleware.EntriesPosted.WithLabelValues(string(domain.SourceReversal)).Inc()
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.Int64("reversal_entry_number", reversal.EntryNumber))
	return reversal, nil
}

// transition loads the entry and applies a guarded status flip.
func (s *journalService) transition(ctx context.Context, entryID, actorID string, to domain.EntryStatus, reason string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return s.transitionFrom(ctx, entry, actorID, to, reason)
}

func (s *journalService) transitionFrom(ctx context.Context, entry *domain.JournalEntry, actorID string, to domain.EntryStatus, reason string) (*domain.JournalEntry, error) {
	if !entry.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidEntryTransition, entry.Status, to)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, portsrepo.UpdateEntryStatusParams{
		EntryID:        entry.EntryID,
		From:           entry.Status,
		To:             to,
		ActorID:        actorID,
		At:             now,
		RejectedReason: reason,
	}); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrConflict, entry.EntryID)
		}
		s.LogError(ctx, err, "Failed to update entry status", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	from := entry.Status
	entry.Status = to
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	switch to {
	case domain.EntryPendingApproval:
		entry.SubmittedAt = &now
	case domain.EntryApproved:
		entry.ApprovedAt = &now
		entry.ApprovedBy = actorID
	case domain.EntryRejected:
		entry.RejectedAt = &now
		entry.RejectedReason = reason
	}

	s.LogInfo(ctx, "Entry status changed",
		slog.String("entry_id", entry.EntryID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return entry, nil
}
