package domain

import (
	"fmt"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountCategory classifies a payment-method account.
type AccountCategory string

const (
	CategoryCash          AccountCategory = "CASH"
	CategoryCard          AccountCategory = "CARD"
	CategoryMobileWallet  AccountCategory = "MOBILE_WALLET"
	CategoryBankTransfer  AccountCategory = "BANK_TRANSFER"
	CategoryDue           AccountCategory = "DUE"
	CategoryComplimentary AccountCategory = "COMPLIMENTARY"
	CategoryOther         AccountCategory = "OTHER"
)

// Valid reports whether c is a known account category.
func (c AccountCategory) Valid() bool {
	switch c {
	case CategoryCash, CategoryCard, CategoryMobileWallet, CategoryBankTransfer,
		CategoryDue, CategoryComplimentary, CategoryOther:
		return true
	}
	return false
}

// AllowsNegativeBalance reports whether accounts of this category may carry a
// balance below zero. Due accounts track money owed to the business, so a
// negative balance is a legitimate state there; the catch-all OTHER category
// keeps the permissive legacy behaviour.
func (c AccountCategory) AllowsNegativeBalance() bool {
	return c == CategoryDue || c == CategoryOther
}

// Account represents a payment-method ledger account.
// A CompanyID of "" marks a system-wide template: templates never hold
// balance and exist only as patterns for per-company provisioning.
type Account struct {
	AccountID string `json:"accountID"` // Primary key (UUID)
	CompanyID string `json:"companyID"` // "" => system-wide template
	BranchID  string `json:"branchID"`  // Optional branch scope

	Code     string          `json:"code"` // Human-facing key, unique per scope (case-insensitive)
	Name     string          `json:"name"`
	Category AccountCategory `json:"category"`

	CurrentBalance decimal.Decimal `json:"currentBalance"` // Signed running total
	SortOrder      int             `json:"sortOrder"`
	IsActive       bool            `json:"isActive"`

	AllowsPartialPayment bool `json:"allowsPartialPayment"`
	AllowsChangeDue      bool `json:"allowsChangeDue"`
	RequiresReference    bool `json:"requiresReference"`

	Icon     string            `json:"icon"`
	Color    string            `json:"color"`
	Metadata map[string]string `json:"metadata"`

	AuditFields
}

// IsTemplate reports whether the account is a system-wide template
// (no company scope).
func (a Account) IsTemplate() bool {
	return a.CompanyID == ""
}

// NextBalance computes the balance the account would hold after applying a
// transaction of the given type and amount. It enforces the per-category
// negative-balance policy; the caller must hold the account's row lock so
// the computed value cannot go stale before it is persisted.
func (a Account) NextBalance(txnType TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	var next decimal.Decimal
	switch txnType {
	case TypeIn:
		next = a.CurrentBalance.Add(amount)
	case TypeOut:
		next = a.CurrentBalance.Sub(amount)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}

	if next.IsNegative() && !a.Category.AllowsNegativeBalance() {
		return decimal.Zero, fmt.Errorf("%w: account %s balance %s cannot cover %s",
			apperrors.ErrInsufficientBalance, a.Code, a.CurrentBalance.String(), amount.String())
	}
	return next, nil
}

// CloneForCompany derives a company-scoped account from a template, copying
// the display fields and starting with a zero balance.
func (a Account) CloneForCompany(accountID, companyID string) Account {
	clone := a
	clone.AccountID = accountID
	clone.CompanyID = companyID
	clone.CurrentBalance = decimal.Zero
	clone.IsActive = true
	if a.Metadata != nil {
		clone.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
