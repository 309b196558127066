package domain

import (
	"fmt"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a ledger entry.
type TransactionType string

const (
	TypeIn  TransactionType = "IN"
	TypeOut TransactionType = "OUT"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIn || t == TypeOut
}

// TransactionCategory classifies the business event behind a ledger entry.
type TransactionCategory string

const (
	CategorySale             TransactionCategory = "SALE"
	CategoryExpense          TransactionCategory = "EXPENSE"
	CategoryPurchase         TransactionCategory = "PURCHASE"
	CategoryRefund           TransactionCategory = "REFUND"
	CategoryProfitWithdrawal TransactionCategory = "PROFIT_WITHDRAWAL"
	CategoryCapitalInjection TransactionCategory = "CAPITAL_INJECTION"
	CategoryTransfer         TransactionCategory = "TRANSFER"
	CategoryOtherEntry       TransactionCategory = "OTHER"
)

// Valid reports whether c is a known transaction category.
func (c TransactionCategory) Valid() bool {
	switch c {
	case CategorySale, CategoryExpense, CategoryPurchase, CategoryRefund,
		CategoryProfitWithdrawal, CategoryCapitalInjection, CategoryTransfer, CategoryOtherEntry:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry recording one balance-affecting
// event against a single account. Corrections are new transactions; there is
// no update or delete path.
type Transaction struct {
	TransactionID     string              `json:"transactionID"`     // Primary key (UUID)
	TransactionNumber string              `json:"transactionNumber"` // Display identifier, e.g. TRX-20250115-0001
	CompanyID         string              `json:"companyID"`
	BranchID          string              `json:"branchID"`
	AccountID         string              `json:"accountID"` // Owning payment-method account
	Type              TransactionType     `json:"type"`
	Category          TransactionCategory `json:"category"`
	Amount            decimal.Decimal     `json:"amount"` // Positive magnitude; sign carried by Type
	Date              time.Time           `json:"date"`
	ReferenceID       string              `json:"referenceID"`    // Optional polymorphic reference
	ReferenceModel    string              `json:"referenceModel"` // e.g. "Order"
	Description       string              `json:"description"`
	Notes             string              `json:"notes"`
	BalanceAfter      decimal.Decimal     `json:"balanceAfter"` // Account balance immediately after this entry
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for IN, negative for OUT.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeOut {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants a transaction must satisfy before it is persisted.
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	return t.ValidateFields()
}

// ValidateFields checks the account-independent invariants, so callers can
// reject bad input before any account resolution happens.
func (t Transaction) ValidateFields() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.Type)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: unknown transaction category %q", apperrors.ErrValidation, t.Category)
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, t.Amount.String())
	}
	if t.ReferenceID != "" && t.ReferenceModel == "" {
		return fmt.Errorf("%w: reference model is required when a reference ID is set", apperrors.ErrValidation)
	}
	return nil
}

// FormatTransactionNumber renders a day-scoped sequence value as the
// display identifier TRX-YYYYMMDD-NNNN. Counters beyond 9999 widen naturally.
func FormatTransactionNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("TRX-%s-%04d", date.UTC().Format("20060102"), seq)
}

// TransactionDetail is a transaction denormalized with the display fields the
// reporting views join in.
type TransactionDetail struct {
	Transaction
	AccountName   string `json:"accountName"`
	AccountCode   string `json:"accountCode"`
	CreatedByName string `json:"createdByName"`
}
