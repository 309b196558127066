package repositories

import (
	"context"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for payment-method accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code (case-insensitive)
	// within a company scope. An empty companyID targets system-wide rows
	// (templates and legacy single-tenant accounts).
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// ListAccounts retrieves the accounts scoped to a company.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)

	// ListAccountsWithTemplates retrieves the company's accounts together
	// with all system-wide templates, for merged balance reporting.
	ListAccountsWithTemplates(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for payment-method accounts.
type AccountWriter interface {
	// SaveAccount persists a new account. A uniqueness violation on
	// (code, company scope) surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's display fields and flags.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines the operations the ledger write path
// performs against an account while holding its row lock.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for
	// update. Must be called within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx sets the account's balance within the given
	// transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
