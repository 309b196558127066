package pgsql

import (
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository backed by one connection pool.
type Repositories struct {
	Account     portsrepo.AccountRepositoryFacade
	Transaction portsrepo.TransactionRepositoryFacade
	User        portsrepo.UserRepositoryFacade
}

// NewRepositories wires all repositories onto a shared pgx pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	accountRepo := NewAccountRepository(pool)
	return &Repositories{
		Account:     accountRepo,
		Transaction: NewTransactionRepository(pool, accountRepo),
		User:        NewUserRepository(pool),
	}
}
