package ports

import (
	"context"

	"github.com/meridianlend/ledger/internal/core/domain"
)

// AccountRepository defines the persistence operations for the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListSiblingCodes returns the codes of accounts sharing the same parent
	// (root accounts of a category when parentAccountID is empty). Used by code
	// generation inside the creation transaction.
	ListSiblingCodes(ctx context.Context, parentAccountID string, category domain.AccountCategory) ([]string, error)

	// ListDescendantIDs returns the ids of all transitive children of an account,
	// excluding the account itself.
	ListDescendantIDs(ctx context.Context, accountID string) ([]string, error)

	// FindSystemAccount locates a system account by category, e.g. Retained Earnings.
	FindSystemAccount(ctx context.Context, category domain.AccountCategory, name string) (*domain.Account, error)

	UpdateAccount(ctx context.Context, account domain.Account, audits []domain.AccountAuditRecord) error
	ListAuditTrail(ctx context.Context, accountID string) ([]domain.AccountAuditRecord, error)

	// HasAnyLines reports whether any journal line has ever referenced the account,
	// regardless of entry status. Closing requires this to be false.
	HasAnyLines(ctx context.Context, accountID string) (bool, error)
}
