package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/google/uuid"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new service for payment-method accounts.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// visibleTo reports whether an account may be seen by the company: its own
// rows plus system-wide templates.
func visibleTo(acc *domain.Account, companyID string) bool {
	return acc.CompanyID == companyID || acc.IsTemplate()
}

// GetAccountByID retrieves an account, hiding other tenants' rows behind
// ErrNotFound rather than revealing their existence.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, fmt.Errorf("%w: invalid account ID format", apperrors.ErrValidation)
	}

	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(acc, companyID) {
		return nil, apperrors.ErrNotFound
	}
	return acc, nil
}

// ListAccounts retrieves the company's accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, companyID, includeInactive)
}

// CreateAccount persists a new account. An empty companyID creates a
// system-wide template.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}

	now := time.Now()
	acc := domain.Account{
		AccountID:            uuid.NewString(),
		CompanyID:            companyID,
		BranchID:             req.BranchID,
		Code:                 req.Code,
		Name:                 req.Name,
		Category:             req.Category,
		SortOrder:            req.SortOrder,
		IsActive:             true,
		AllowsPartialPayment: req.AllowsPartialPayment,
		AllowsChangeDue:      req.AllowsChangeDue,
		RequiresReference:    req.RequiresReference,
		Icon:                 req.Icon,
		Color:                req.Color,
		Metadata:             req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, acc); err != nil {
		s.LogError(ctx, "failed to create account", "code", req.Code, "error", err)
		return nil, err
	}

	s.LogInfo(ctx, "account created", "accountID", acc.AccountID, "code", acc.Code)
	return &acc, nil
}

// UpdateAccount applies the provided field updates to an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	acc, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}
	if acc.IsTemplate() && companyID != "" {
		// Tenants may use templates but not edit them.
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		acc.Name = *req.Name
	}
	if req.SortOrder != nil {
		acc.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		acc.IsActive = *req.IsActive
	}
	if req.Icon != nil {
		acc.Icon = *req.Icon
	}
	if req.Color != nil {
		acc.Color = *req.Color
	}
	if req.AllowsPartialPayment != nil {
		acc.AllowsPartialPayment = *req.AllowsPartialPayment
	}
	if req.AllowsChangeDue != nil {
		acc.AllowsChangeDue = *req.AllowsChangeDue
	}
	if req.RequiresReference != nil {
		acc.RequiresReference = *req.RequiresReference
	}
	acc.LastUpdatedAt = time.Now()
	acc.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *acc); err != nil {
		s.LogError(ctx, "failed to update account", "accountID", accountID, "error", err)
		return nil, err
	}
	return acc, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	acc, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}
	if acc.IsTemplate() && companyID != "" {
		return apperrors.ErrNotFound
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now())
}

// ResolveOrProvisionAccount resolves an account reference to a concrete
// account for the company. Resolution order:
//
//  1. ref parses as a UUID: direct lookup, visible scopes only.
//  2. Company-scoped row matching ref as a code (case-insensitive).
//  3. System template matching the code: clone it into the company with a
//     zero balance. A concurrent clone of the same template loses the insert
//     race with ErrDuplicate and recovers by re-fetching the winner's row.
//  4. A legacy system-wide row with the code, used as-is.
func (s *accountService) ResolveOrProvisionAccount(ctx context.Context, companyID string, ref string, userID string) (*domain.Account, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: account reference is required", apperrors.ErrValidation)
	}

	if _, err := uuid.Parse(ref); err == nil {
		acc, err := s.accountRepo.FindAccountByID(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !visibleTo(acc, companyID) {
			return nil, apperrors.ErrNotFound
		}
		return acc, nil
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, companyID, ref)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	tmpl, err := s.accountRepo.FindAccountByCode(ctx, "", ref)
	if err != nil {
		return nil, err
	}
	if companyID == "" {
		return tmpl, nil
	}
	if !tmpl.IsActive {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	clone := tmpl.CloneForCompany(uuid.NewString(), companyID)
	clone.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.accountRepo.SaveAccount(ctx, clone); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another request provisioned the same code first; use its row.
			return s.accountRepo.FindAccountByCode(ctx, companyID, ref)
		}
		s.LogError(ctx, "failed to provision account from template", "code", ref, "error", err)
		return nil, err
	}

	s.LogInfo(ctx, "account provisioned from template", "accountID", clone.AccountID, "code", clone.Code, "companyID", companyID)
	return &clone, nil
}
