package mapping

import (
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/models"
)

// ToModelAccount converts a domain account to its database model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:            d.AccountID,
		CompanyID:            d.CompanyID,
		BranchID:             d.BranchID,
		Code:                 d.Code,
		Name:                 d.Name,
		Category:             models.AccountCategory(d.Category),
		CurrentBalance:       d.CurrentBalance,
		SortOrder:            d.SortOrder,
		IsActive:             d.IsActive,
		AllowsPartialPayment: d.AllowsPartialPayment,
		AllowsChangeDue:      d.AllowsChangeDue,
		RequiresReference:    d.RequiresReference,
		Icon:                 d.Icon,
		Color:                d.Color,
		Metadata:             d.Metadata,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a database account model to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:            m.AccountID,
		CompanyID:            m.CompanyID,
		BranchID:             m.BranchID,
		Code:                 m.Code,
		Name:                 m.Name,
		Category:             domain.AccountCategory(m.Category),
		CurrentBalance:       m.CurrentBalance,
		SortOrder:            m.SortOrder,
		IsActive:             m.IsActive,
		AllowsPartialPayment: m.AllowsPartialPayment,
		AllowsChangeDue:      m.AllowsChangeDue,
		RequiresReference:    m.RequiresReference,
		Icon:                 m.Icon,
		Color:                m.Color,
		Metadata:             m.Metadata,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of account models to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
