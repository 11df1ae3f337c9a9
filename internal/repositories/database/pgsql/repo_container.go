package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
)

// RepositoryContainer bundles all pgsql-backed repositories.
type RepositoryContainer struct {
	User     portsrepo.UserRepository
	Currency portsrepo.CurrencyRepository
	Account  portsrepo.AccountRepository
	Period   portsrepo.PeriodRepository
	Journal  portsrepo.JournalRepositoryWithTx
}

// NewRepositoryContainer creates all repositories sharing one connection pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		User:     newPgxUserRepository(pool),
		Currency: newPgxCurrencyRepository(pool),
		Account:  newPgxAccountRepository(pool),
		Period:   newPgxPeriodRepository(pool),
		Journal:  newPgxJournalRepository(pool),
	}
}
