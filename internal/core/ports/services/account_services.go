package services

import (
	"context"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
)

// AccountReaderSvc defines read operations for payment-method accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account, verifying it is visible to the
	// company (its own accounts plus system-wide rows).
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the company's accounts.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for payment-method accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account. An empty companyID creates a
	// system-wide template (administrative seeding).
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's display fields and flags.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
}

// AccountProvisionerSvc resolves a caller-supplied account reference (id or
// code) to a concrete account for the company, lazily cloning a system
// template into a company-scoped copy on first use. The provisioning write
// is deliberately part of this operation's contract, not hidden inside the
// ledger write path.
type AccountProvisionerSvc interface {
	ResolveOrProvisionAccount(ctx context.Context, companyID string, ref string, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountProvisionerSvc
}
