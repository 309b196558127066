package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a ledger entry.
type TransactionType string

// TransactionCategory classifies the business event behind a ledger entry.
type TransactionCategory string

// Transaction is an append-only ledger entry row. Rows are never updated or
// deleted; corrections are new rows.
type Transaction struct {
	TransactionID     string              `db:"transaction_id"`
	TransactionNumber string              `db:"transaction_number"`
	CompanyID         string              `db:"company_id"`
	BranchID          string              `db:"branch_id"` // Nullable
	AccountID         string              `db:"account_id"`
	Type              TransactionType     `db:"type"`
	Category          TransactionCategory `db:"category"`
	Amount            decimal.Decimal     `db:"amount"`
	Date              time.Time           `db:"date"`
	ReferenceID       string              `db:"reference_id"`    // Nullable
	ReferenceModel    string              `db:"reference_model"` // Nullable
	Description       string              `db:"description"`
	Notes             string              `db:"notes"`
	BalanceAfter      decimal.Decimal     `db:"balance_after"`
	AuditFields

	// Denormalized display fields populated by reporting joins only.
	AccountName   string `db:"account_name"`
	AccountCode   string `db:"account_code"`
	CreatedByName string `db:"created_by_name"`
}
