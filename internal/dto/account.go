package dto

import (
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a payment-method
// account (a tenant-scoped account or, from the admin surface, a template).
type CreateAccountRequest struct {
	Code     string                 `json:"code" binding:"required,max=32"`
	Name     string                 `json:"name" binding:"required,max=100"`
	Category domain.AccountCategory `json:"category" binding:"required,accountcategory"`

	BranchID  string `json:"branchID"`
	SortOrder int    `json:"sortOrder"`

	AllowsPartialPayment bool `json:"allowsPartialPayment"`
	AllowsChangeDue      bool `json:"allowsChangeDue"`
	RequiresReference    bool `json:"requiresReference"`

	Icon     string            `json:"icon"`
	Color    string            `json:"color"`
	Metadata map[string]string `json:"metadata"`
}

// UpdateAccountRequest defines the fields allowed to change on an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
	Icon      *string `json:"icon"`
	Color     *string `json:"color"`

	AllowsPartialPayment *bool `json:"allowsPartialPayment"`
	AllowsChangeDue      *bool `json:"allowsChangeDue"`
	RequiresReference    *bool `json:"requiresReference"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID            string                 `json:"accountID"`
	CompanyID            string                 `json:"companyID,omitempty"`
	BranchID             string                 `json:"branchID,omitempty"`
	Code                 string                 `json:"code"`
	Name                 string                 `json:"name"`
	Category             domain.AccountCategory `json:"category"`
	CurrentBalance       decimal.Decimal        `json:"currentBalance"`
	SortOrder            int                    `json:"sortOrder"`
	IsActive             bool                   `json:"isActive"`
	AllowsPartialPayment bool                   `json:"allowsPartialPayment"`
	AllowsChangeDue      bool                   `json:"allowsChangeDue"`
	RequiresReference    bool                   `json:"requiresReference"`
	Icon                 string                 `json:"icon,omitempty"`
	Color                string                 `json:"color,omitempty"`
	Metadata             map[string]string      `json:"metadata,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:            acc.AccountID,
		CompanyID:            acc.CompanyID,
		BranchID:             acc.BranchID,
		Code:                 acc.Code,
		Name:                 acc.Name,
		Category:             acc.Category,
		CurrentBalance:       acc.CurrentBalance,
		SortOrder:            acc.SortOrder,
		IsActive:             acc.IsActive,
		AllowsPartialPayment: acc.AllowsPartialPayment,
		AllowsChangeDue:      acc.AllowsChangeDue,
		RequiresReference:    acc.RequiresReference,
		Icon:                 acc.Icon,
		Color:                acc.Color,
		Metadata:             acc.Metadata,
		CreatedAt:            acc.CreatedAt,
		LastUpdatedAt:        acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceRow is one row of the merged balance report: system
// templates and company accounts merged by code, company rows winning.
type AccountBalanceRow struct {
	AccountID      string                 `json:"id"`
	Name           string                 `json:"name"`
	Category       domain.AccountCategory `json:"type"`
	Code           string                 `json:"code"`
	CurrentBalance decimal.Decimal        `json:"currentBalance"`
	SortOrder      int                    `json:"sortOrder"`
}

// ToAccountBalanceRows converts merged accounts to balance report rows.
func ToAccountBalanceRows(accounts []domain.Account) []AccountBalanceRow {
	rows := make([]AccountBalanceRow, len(accounts))
	for i, acc := range accounts {
		rows[i] = AccountBalanceRow{
			AccountID:      acc.AccountID,
			Name:           acc.Name,
			Category:       acc.Category,
			Code:           acc.Code,
			CurrentBalance: acc.CurrentBalance,
			SortOrder:      acc.SortOrder,
		}
	}
	return rows
}
