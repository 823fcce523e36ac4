package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full repository set on a shared pgx pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(pool),
		JournalRepo: newPgxJournalRepository(pool),
		PeriodRepo:  newPgxPeriodRepository(pool),
		RateRepo:    newPgxRateRepository(pool),
	}
}
