package services

import (
	"context"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
)

// LedgerWriterSvc records balance-affecting events.
type LedgerWriterSvc interface {
	// RecordTransaction resolves the target account (provisioning it on
	// first use), applies the balance change atomically and persists the
	// ledger entry. Fails with apperrors.ErrNotFound if the account cannot
	// be resolved and apperrors.ErrValidation for non-positive amounts or
	// unrecognized enum values.
	RecordTransaction(ctx context.Context, companyID string, branchID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// WithdrawProfit records an owner draw: sugar over RecordTransaction
	// with a fixed OUT type and PROFIT_WITHDRAWAL category.
	WithdrawProfit(ctx context.Context, companyID string, branchID string, req dto.WithdrawProfitRequest, userID string) (*domain.Transaction, error)
}

// LedgerReaderSvc exposes the ledger's query and reporting operations.
type LedgerReaderSvc interface {
	// ListTransactions retrieves a filtered, paginated page of transactions.
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetTransactionByID retrieves a single transaction. Fails with
	// apperrors.ErrNotFound on absence or company mismatch and
	// apperrors.ErrValidation on a malformed id.
	GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.TransactionDetail, error)

	// GetAccountBalances returns one row per distinct account code, merging
	// system templates and company accounts (company rows override), sorted
	// by sort order then name.
	GetAccountBalances(ctx context.Context, companyID string) ([]dto.AccountBalanceRow, error)
}

// FinanceSvcFacade combines the ledger service interfaces.
type FinanceSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
