package ports

import (
	"context"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/dto"
)

// CurrencySvcFacade manages the supported currency set.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
