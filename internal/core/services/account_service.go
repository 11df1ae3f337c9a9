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
	"github.com/meridianlend/ledger/internal/utils/accounting"
	"github.com/meridianlend/ledger/internal/utils/coacode"
)

var (
	ErrParentNotFound          = errors.New("parent account not found")
	ErrMaxDepthExceeded        = fmt.Errorf("account hierarchy deeper than %d levels", domain.MaxAccountDepth)
	ErrDuplicateCode           = errors.New("account code already exists")
	ErrSystemAccountRestricted = errors.New("only name and description of a system account may change")
	ErrHasPostedTransactions   = errors.New("account has journal lines and cannot be closed")
	ErrAccountNotFound         = errors.New("account not found")
)

// accountService is the chart-of-accounts manager: hierarchy, code allocation,
// freeze/close lifecycle, audit trail and balance aggregation.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyReader
	journalRepo  portsrepo.JournalRepository
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepository, currencyRepo portsrepo.CurrencyReader, journalRepo portsrepo.JournalRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		journalRepo:  journalRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	category := domain.AccountCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCurrencyNotFound, req.CurrencyCode)
		}
		s.LogError(ctx, err, "Failed to resolve currency", slog.String("currency_code", req.CurrencyCode))
		return nil, err
	}

	var parent *domain.Account
	level := int16(1)
	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		found, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrParentNotFound, parentID)
			}
			s.LogError(ctx, err, "Failed to load parent account", slog.String("parent_id", parentID))
			return nil, err
		}
		parent = found
		level = parent.Level + 1
		if level > domain.MaxAccountDepth {
			return nil, fmt.Errorf("%w: parent %s is at level %d", ErrMaxDepthExceeded, parent.AccountCode, parent.Level)
		}
	}

	code, err := s.resolveAccountCode(ctx, category, parent, parentID, req.AccountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		AccountCode:      code,
		Name:             req.Name,
		Description:      req.Description,
		Category:         category,
		NormalSide:       category.NormalSide(),
		CurrencyCode:     req.CurrencyCode,
		ParentAccountID:  parentID,
		Level:            level,
		Status:           domain.AccountActive,
		IsControlAccount: req.IsControlAccount,
		IsSystemAccount:  req.IsSystemAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode),
		slog.Int("level", int(account.Level)))
	return &account, nil
}

// resolveAccountCode validates an explicit code or generates one from the parent
// and its existing siblings.
func (s *accountService) resolveAccountCode(ctx context.Context, category domain.AccountCategory, parent *domain.Account, parentID string, explicit *string) (string, error) {
	if explicit != nil && *explicit != "" {
		if !coacode.Valid(*explicit) {
			return "", fmt.Errorf("%w: malformed account code %q", apperrors.ErrValidation, *explicit)
		}
		if existing, err := s.accountRepo.FindAccountByCode(ctx, *explicit); err == nil && existing != nil {
			return "", fmt.Errorf("%w: %s", ErrDuplicateCode, *explicit)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		return *explicit, nil
	}

	siblings, err := s.accountRepo.ListSiblingCodes(ctx, parentID, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sibling codes", slog.String("parent_id", parentID))
		return "", err
	}
	code, err := coacode.Generate(category, parent, siblings)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return code, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, accountCode)
		}
		s.LogError(ctx, err, "Failed to find account by code", slog.String("account_code", accountCode))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsSystemAccount && req.IsControlAccount != nil {
		return nil, fmt.Errorf("%w: account %s", ErrSystemAccountRestricted, account.AccountCode)
	}

	now := time.Now().UTC()
	var audits []domain.AccountAuditRecord
	appendAudit := func(field, oldVal, newVal string) {
		audits = append(audits, domain.AccountAuditRecord{
			AuditID:      uuid.NewString(),
			AccountID:    account.AccountID,
			FieldChanged: field,
			OldValue:     oldVal,
			NewValue:     newVal,
			ChangedBy:    actorID,
			ChangedAt:    now,
		})
	}

	if req.Name != nil && *req.Name != account.Name {
		appendAudit("name", account.Name, *req.Name)
		account.Name = *req.Name
	}
	if req.Description != nil && *req.Description != account.Description {
		appendAudit("description", account.Description, *req.Description)
		account.Description = *req.Description
	}
	if req.IsControlAccount != nil && *req.IsControlAccount != account.IsControlAccount {
		appendAudit("is_control_account", fmt.Sprintf("%t", account.IsControlAccount), fmt.Sprintf("%t", *req.IsControlAccount))
		account.IsControlAccount = *req.IsControlAccount
	}

	if len(audits) == 0 {
		s.LogDebug(ctx, "No fields changed for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account, audits); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated",
		slog.String("account_id", account.AccountID),
		slog.Int("fields_changed", len(audits)))
	return account, nil
}

// FreezeAccount transitions Active→Frozen. Reversible; not available for
// system accounts.
func (s *accountService) FreezeAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	return s.transitionStatus(ctx, accountID, actorID, domain.AccountActive, domain.AccountFrozen)
}

// ReactivateAccount transitions Frozen→Active.
func (s *accountService) ReactivateAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	return s.transitionStatus(ctx, accountID, actorID, domain.AccountFrozen, domain.AccountActive)
}

// CloseAccount transitions to Closed. Irreversible; requires zero journal history.
func (s *accountService) CloseAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsSystemAccount {
		return nil, fmt.Errorf("%w: account %s", ErrSystemAccountRestricted, account.AccountCode)
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s already closed", apperrors.ErrConflict, account.AccountCode)
	}

	hasLines, err := s.accountRepo.HasAnyLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account history", slog.String("account_id", accountID))
		return nil, err
	}
	if hasLines {
		return nil, fmt.Errorf("%w: account %s", ErrHasPostedTransactions, account.AccountCode)
	}

	return s.applyStatus(ctx, account, actorID, domain.AccountClosed)
}

func (s *accountService) transitionStatus(ctx context.Context, accountID, actorID string, from, to domain.AccountStatus) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	// System accounts stay Active; closing entries and other automated postings
	// depend on them.
	if account.IsSystemAccount {
		return nil, fmt.Errorf("%w: account %s", ErrSystemAccountRestricted, account.AccountCode)
	}
	if account.Status != from {
		return nil, fmt.Errorf("%w: account %s is %s, expected %s", apperrors.ErrConflict, account.AccountCode, account.Status, from)
	}
	return s.applyStatus(ctx, account, actorID, to)
}

func (s *accountService) applyStatus(ctx context.Context, account *domain.Account, actorID string, to domain.AccountStatus) (*domain.Account, error) {
	now := time.Now().UTC()
	audit := domain.AccountAuditRecord{
		AuditID:      uuid.NewString(),
		AccountID:    account.AccountID,
		FieldChanged: "status",
		OldValue:     string(account.Status),
		NewValue:     string(to),
		ChangedBy:    actorID,
		ChangedAt:    now,
	}
	account.Status = to
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account, []domain.AccountAuditRecord{audit}); err != nil {
		s.LogError(ctx, err, "Failed to update account status", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account status changed",
		slog.String("account_id", account.AccountID),
		slog.String("status", string(to)))
	return account, nil
}

// GetBalance sums Posted lines only, optionally rolling up all transitive
// descendants for control accounts. The returned balance honours the account's
// normal side: debit-normal accounts report debits minus credits, credit-normal
// accounts the opposite.
func (s *accountService) GetBalance(ctx context.Context, accountID string, asOfDate *time.Time, periodID string, includeChildren bool) (*domain.AccountBalance, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	accountIDs := []string{account.AccountID}
	if includeChildren {
		descendants, err := s.accountRepo.ListDescendantIDs(ctx, account.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list descendants", slog.String("account_id", accountID))
			return nil, err
		}
		accountIDs = append(accountIDs, descendants...)
	}

	debitTotal, creditTotal, err := s.journalRepo.SumPostedLines(ctx, portsrepo.BalanceQuery{
		AccountIDs: accountIDs,
		AsOf:       asOfDate,
		PeriodID:   periodID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum posted lines", slog.String("account_id", accountID))
		return nil, err
	}

	return &domain.AccountBalance{
		AccountID:   account.AccountID,
		AccountCode: account.AccountCode,
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Balance:     accounting.DirectionalBalance(debitTotal, creditTotal, account.NormalSide),
	}, nil
}

func (s *accountService) ListAuditTrail(ctx context.Context, accountID string) ([]domain.AccountAuditRecord, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	records, err := s.accountRepo.ListAuditTrail(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit trail", slog.String("account_id", accountID))
		return nil, err
	}
	if records == nil {
		return []domain.AccountAuditRecord{}, nil
	}
	return records, nil
}

// GetTrialBalance aggregates posted totals for every account with activity.
// A healthy ledger always reports IsBalanced true; anything else indicates
// data corruption and is logged at the highest severity.
func (s *accountService) GetTrialBalance(ctx context.Context, asOf *time.Time) (*dto.TrialBalanceResponse, error) {
	totals, err := s.journalRepo.TrialBalance(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance")
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{
		Rows:        make([]dto.TrialBalanceRow, len(totals)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	for i, row := range totals {
		side := row.Category.NormalSide()
		resp.Rows[i] = dto.TrialBalanceRow{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.Name,
			Category:    string(row.Category),
			DebitTotal:  row.DebitTotal,
			CreditTotal: row.CreditTotal,
			Balance:     accounting.DirectionalBalance(row.DebitTotal, row.CreditTotal, side),
		}
		resp.DebitTotal = resp.DebitTotal.Add(row.DebitTotal)
		resp.CreditTotal = resp.CreditTotal.Add(row.CreditTotal)
	}
	resp.IsBalanced = resp.DebitTotal.Equal(resp.CreditTotal)

	if !resp.IsBalanced {
		s.LogError(ctx, apperrors.ErrInternal, "Trial balance out of balance",
			slog.String("debit_total", resp.DebitTotal.String()),
			slog.String("credit_total", resp.CreditTotal.String()))
	}
	return resp, nil
}
