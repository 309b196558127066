package mapping

import (
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/models"
)

// ToModelTransaction converts a domain transaction to its database model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		TransactionNumber: d.TransactionNumber,
		CompanyID:         d.CompanyID,
		BranchID:          d.BranchID,
		AccountID:         d.AccountID,
		Type:              models.TransactionType(d.Type),
		Category:          models.TransactionCategory(d.Category),
		Amount:            d.Amount,
		Date:              d.Date,
		ReferenceID:       d.ReferenceID,
		ReferenceModel:    d.ReferenceModel,
		Description:       d.Description,
		Notes:             d.Notes,
		BalanceAfter:      d.BalanceAfter,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a database transaction model to its domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		CompanyID:         m.CompanyID,
		BranchID:          m.BranchID,
		AccountID:         m.AccountID,
		Type:              domain.TransactionType(m.Type),
		Category:          domain.TransactionCategory(m.Category),
		Amount:            m.Amount,
		Date:              m.Date,
		ReferenceID:       m.ReferenceID,
		ReferenceModel:    m.ReferenceModel,
		Description:       m.Description,
		Notes:             m.Notes,
		BalanceAfter:      m.BalanceAfter,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionDetail converts a model with reporting joins populated
// to its denormalized domain form.
func ToDomainTransactionDetail(m models.Transaction) domain.TransactionDetail {
	return domain.TransactionDetail{
		Transaction:   ToDomainTransaction(m),
		AccountName:   m.AccountName,
		AccountCode:   m.AccountCode,
		CreatedByName: m.CreatedByName,
	}
}

// ToDomainTransactionDetailSlice converts a slice of joined transaction models.
func ToDomainTransactionDetailSlice(ms []models.Transaction) []domain.TransactionDetail {
	ds := make([]domain.TransactionDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionDetail(m)
	}
	return ds
}
