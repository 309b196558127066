package dto

import (
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
// AccountRef is either an account ID or a payment-method code ("cash").
type CreateTransactionRequest struct {
	AccountRef string                     `json:"accountRef" binding:"required"`
	Type       domain.TransactionType     `json:"type" binding:"required,oneof=IN OUT"`
	Category   domain.TransactionCategory `json:"category" binding:"required,txncategory"`
	Amount     decimal.Decimal            `json:"amount" binding:"required"`

	Date           *time.Time `json:"date"` // Defaults to now
	ReferenceID    string     `json:"referenceID"`
	ReferenceModel string     `json:"referenceModel"`
	Description    string     `json:"description"`
	Notes          string     `json:"notes"`
}

// WithdrawProfitRequest defines the data for an owner profit withdrawal.
type WithdrawProfitRequest struct {
	AccountRef string          `json:"accountRef" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountRef string                     `form:"accountRef"`
	Type       domain.TransactionType     `form:"type" binding:"omitempty,oneof=IN OUT"`
	Category   domain.TransactionCategory `form:"category" binding:"omitempty,txncategory"`
	DateFrom   *time.Time                 `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time                 `form:"dateTo" time_format:"2006-01-02"`
	Page       int                        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int                        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID     string                     `json:"transactionID"`
	TransactionNumber string                     `json:"transactionNumber"`
	CompanyID         string                     `json:"companyID,omitempty"`
	BranchID          string                     `json:"branchID,omitempty"`
	AccountID         string                     `json:"accountID"`
	AccountName       string                     `json:"accountName,omitempty"`
	AccountCode       string                     `json:"accountCode,omitempty"`
	Type              domain.TransactionType     `json:"type"`
	Category          domain.TransactionCategory `json:"category"`
	Amount            decimal.Decimal            `json:"amount"`
	Date              time.Time                  `json:"date"`
	ReferenceID       string                     `json:"referenceID,omitempty"`
	ReferenceModel    string                     `json:"referenceModel,omitempty"`
	Description       string                     `json:"description,omitempty"`
	Notes             string                     `json:"notes,omitempty"`
	BalanceAfter      decimal.Decimal            `json:"balanceAfter"`
	CreatedBy         string                     `json:"createdBy,omitempty"`
	CreatedByName     string                     `json:"createdByName,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		CompanyID:         txn.CompanyID,
		BranchID:          txn.BranchID,
		AccountID:         txn.AccountID,
		Type:              txn.Type,
		Category:          txn.Category,
		Amount:            txn.Amount,
		Date:              txn.Date,
		ReferenceID:       txn.ReferenceID,
		ReferenceModel:    txn.ReferenceModel,
		Description:       txn.Description,
		Notes:             txn.Notes,
		BalanceAfter:      txn.BalanceAfter,
		CreatedBy:         txn.CreatedBy,
		CreatedAt:         txn.CreatedAt,
	}
}

// ToTransactionDetailResponse converts a denormalized transaction to its response DTO.
func ToTransactionDetailResponse(d *domain.TransactionDetail) TransactionResponse {
	resp := ToTransactionResponse(&d.Transaction)
	resp.AccountName = d.AccountName
	resp.AccountCode = d.AccountCode
	resp.CreatedByName = d.CreatedByName
	return resp
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
