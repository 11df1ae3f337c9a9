package ports

import (
	"context"
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts manager boundary.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)
	FreezeAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error)
	ReactivateAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error)
	CloseAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID string, asOfDate *time.Time, periodID string, includeChildren bool) (*domain.AccountBalance, error)
	ListAuditTrail(ctx context.Context, accountID string) ([]domain.AccountAuditRecord, error)
	GetTrialBalance(ctx context.Context, asOf *time.Time) (*dto.TrialBalanceResponse, error)
}
