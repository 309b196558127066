package repositories

import (
	"context"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing. Zero values mean
// "no filter"; Page is 1-based.
type ListTransactionsFilter struct {
	AccountID string
	Type      domain.TransactionType
	Category  domain.TransactionCategory
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction scoped to a company,
	// denormalized with account and creator display fields.
	FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.TransactionDetail, error)

	// ListTransactions retrieves a filtered page of transactions for a
	// company plus the total count matching the filter.
	ListTransactions(ctx context.Context, companyID string, filter ListTransactionsFilter) ([]domain.TransactionDetail, int64, error)
}

// TransactionWriter persists ledger entries. SaveTransaction executes the
// whole atomic unit in one database transaction: it locks the account row,
// computes the post-entry balance under the lock, mints the day-scoped
// transaction number, updates the account and inserts the entry. The
// returned transaction carries the assigned number and BalanceAfter.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
