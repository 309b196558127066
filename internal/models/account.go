package models

import (
	"github.com/shopspring/decimal"
)

// AccountCategory classifies a payment-method account.
type AccountCategory string

// Account represents a payment-method ledger account row.
// Note: CompanyID and BranchID are stored as nullable columns; "" in Go maps
// to NULL in the database (NULL company_id marks a system-wide template).
type Account struct {
	AccountID string `db:"account_id"`
	CompanyID string `db:"company_id"` // Nullable
	BranchID  string `db:"branch_id"`  // Nullable

	Code     string          `db:"code"`
	Name     string          `db:"name"`
	Category AccountCategory `db:"category"`

	CurrentBalance decimal.Decimal `db:"current_balance"`
	SortOrder      int             `db:"sort_order"`
	IsActive       bool            `db:"is_active"`

	AllowsPartialPayment bool `db:"allows_partial_payment"`
	AllowsChangeDue      bool `db:"allows_change_due"`
	RequiresReference    bool `db:"requires_reference"`

	Icon     string            `db:"icon"`
	Color    string            `db:"color"`
	Metadata map[string]string `db:"metadata"` // jsonb

	AuditFields
}
