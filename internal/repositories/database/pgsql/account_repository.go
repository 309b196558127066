package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/models"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, company_id, branch_id, code, name, category, current_balance, sort_order, is_active, allows_partial_payment, allows_change_due, requires_reference, icon, color, metadata, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for payment-method accounts.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// nullIfEmpty maps "" to a NULL text column.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount scans one account row into a model, handling nullable columns.
func scanAccount(row rowScanner) (*models.Account, error) {
	var m models.Account
	var companyID, branchID, icon, color sql.NullString
	var metadata map[string]string

	err := row.Scan(
		&m.AccountID,
		&companyID,
		&branchID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.CurrentBalance,
		&m.SortOrder,
		&m.IsActive,
		&m.AllowsPartialPayment,
		&m.AllowsChangeDue,
		&m.RequiresReference,
		&icon,
		&color,
		&metadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.CompanyID = companyID.String
	m.BranchID = branchID.String
	m.Icon = icon.String
	m.Color = color.String
	m.Metadata = metadata
	return &m, nil
}

// SaveAccount inserts a new account. A uniqueness violation on the
// (code, company scope) constraint surfaces as apperrors.ErrDuplicate so the
// provisioner can recover by re-fetching the winner's row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	metadata := m.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		nullIfEmpty(m.CompanyID),
		nullIfEmpty(m.BranchID),
		m.Code,
		m.Name,
		m.Category,
		m.CurrentBalance,
		m.SortOrder,
		m.IsActive,
		m.AllowsPartialPayment,
		m.AllowsChangeDue,
		m.RequiresReference,
		nullIfEmpty(m.Icon),
		nullIfEmpty(m.Color),
		metadata,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with code %q already exists in this scope", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by code, case-insensitively, within
// a company scope. An empty companyID targets system-wide rows.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	var row pgx.Row
	if companyID == "" {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id IS NULL AND lower(code) = lower($1);`
		row = r.Pool.QueryRow(ctx, query, code)
	} else {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND lower(code) = lower($2);`
		row = r.Pool.QueryRow(ctx, query, companyID, code)
	}

	m, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %q: %w", code, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// ListAccounts retrieves the accounts scoped to a company, ordered for display.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1`
	if companyID == "" {
		query = `SELECT ` + accountColumns + ` FROM accounts WHERE company_id IS NULL`
	}
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY sort_order, name;`

	var rows pgx.Rows
	var err error
	if companyID == "" {
		rows, err = r.Pool.Query(ctx, query)
	} else {
		rows, err = r.Pool.Query(ctx, query, companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListAccountsWithTemplates retrieves the company's active accounts together
// with all active system-wide templates, for merged balance reporting.
func (r *PgxAccountRepository) ListAccountsWithTemplates(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE (company_id = $1 OR company_id IS NULL) AND is_active = TRUE
		ORDER BY sort_order, name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts with templates for company %s: %w", companyID, err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's display fields and flags.
// Code, scope and balance are deliberately immutable here; balances change
// only through the ledger write path.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, sort_order = $3, is_active = $4,
		    allows_partial_payment = $5, allows_change_due = $6, requires_reference = $7,
		    icon = $8, color = $9, metadata = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE account_id = $1;
	`
	metadata := m.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.SortOrder,
		m.IsActive,
		m.AllowsPartialPayment,
		m.AllowsChangeDue,
		m.RequiresReference,
		nullIfEmpty(m.Icon),
		nullIfEmpty(m.Color),
		metadata,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindAccountByID(ctx, accountID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		// Exists but was already inactive.
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// FindAccountByIDForUpdate retrieves an account and locks its row for update.
// Must be called within a transaction; the lock serializes all balance
// mutation against this account.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`

	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s for update: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// UpdateAccountBalanceInTx sets the account's balance within the given
// transaction. The caller must hold the row lock taken by
// FindAccountByIDForUpdate.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}
