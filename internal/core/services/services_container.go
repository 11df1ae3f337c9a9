package services

import (
	"time"

	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
)

// Repositories bundles every repository the service layer depends on.
type Repositories struct {
	User     portsrepo.UserRepository
	Currency portsrepo.CurrencyRepository
	Account  portsrepo.AccountRepository
	Period   portsrepo.PeriodRepository
	Journal  portsrepo.JournalRepositoryWithTx
}

// AuthConfig carries the token-issuing parameters for the auth service.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewServiceContainer wires all services with their repositories.
func NewServiceContainer(repos Repositories, auth AuthConfig, systemUserID string) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.Journal, repos.Account, repos.Currency, repos.Period, systemUserID)
	return &portssvc.ServiceContainer{
		Auth:     NewAuthService(repos.User, auth.JWTSecret, auth.JWTExpiry, auth.JWTIssuer),
		Currency: NewCurrencyService(repos.Currency),
		Account:  NewAccountService(repos.Account, repos.Currency, repos.Journal),
		Period:   NewPeriodService(repos.Period, repos.Account, repos.Journal, journalSvc),
		Journal:  journalSvc,
	}
}
