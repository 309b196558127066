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
)

const transactionColumns = `t.transaction_id, t.transaction_number, t.company_id, t.branch_id, t.account_id, t.type, t.category, t.amount, t.date, t.reference_id, t.reference_model, t.description, t.notes, t.balance_after, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// maxSaveRetries bounds serialization-failure retries of a ledger write.
const maxSaveRetries = 3

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransactionRepository creates a new repository for ledger entries. It
// needs the account repository to lock and update account rows inside the
// same database transaction as the entry insert.
func NewTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction persists a ledger entry atomically with its account balance
// update. The account row is locked for the duration, the post-entry balance
// is computed under that lock, and the day-scoped transaction number is
// minted from an atomic counter. Serialization failures are retried a bounded
// number of times; a failed commit after the write surfaces as a
// PartialFailureError carrying the account and signed delta so callers can
// reconcile.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		saved, err := r.saveTransactionOnce(ctx, txn)
		if err == nil {
			return saved, nil
		}
		if !isRetryableTxError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: ledger write for account %s kept colliding: %v", apperrors.ErrConflict, txn.AccountID, lastErr)
}

func (r *PgxTransactionRepository) saveTransactionOnce(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for ledger write: %w", err)
	}
	defer r.Rollback(ctx, tx)

	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, err
	}

	balanceAfter, err := account.NextBalance(txn.Type, txn.Amount)
	if err != nil {
		return nil, err
	}
	txn.BalanceAfter = balanceAfter

	seq, err := r.nextTransactionNumber(ctx, tx, txn.CompanyID, txn.Date)
	if err != nil {
		return nil, err
	}
	txn.TransactionNumber = domain.FormatTransactionNumber(txn.Date, seq)

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, txn.AccountID, balanceAfter, txn.CreatedBy, txn.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		if isRetryableTxError(err) {
			return nil, err
		}
		// The commit outcome is unknown; report what was in flight so the
		// caller can reconcile the account against its ledger.
		return nil, apperrors.NewPartialFailureError(txn.AccountID, txn.SignedAmount(), err)
	}

	return &txn, nil
}

// nextTransactionNumber atomically increments and returns the per-company,
// per-day sequence counter. The upsert makes concurrent writers serialize on
// the counter row rather than racing a scan for the current maximum.
func (r *PgxTransactionRepository) nextTransactionNumber(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (int64, error) {
	query := `
		INSERT INTO transaction_sequences (company_id, seq_date, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, seq_date)
		DO UPDATE SET counter = transaction_sequences.counter + 1
		RETURNING counter;
	`
	var counter int64
	err := tx.QueryRow(ctx, query, companyID, date.UTC().Truncate(24*time.Hour)).Scan(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to mint transaction number for company %s: %w", companyID, err)
	}
	return counter, nil
}

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (
			transaction_id, transaction_number, company_id, branch_id, account_id,
			type, category, amount, date, reference_id, reference_model,
			description, notes, balance_after,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionNumber,
		m.CompanyID,
		nullIfEmpty(m.BranchID),
		m.AccountID,
		m.Type,
		m.Category,
		m.Amount,
		m.Date,
		nullIfEmpty(m.ReferenceID),
		nullIfEmpty(m.ReferenceModel),
		m.Description,
		m.Notes,
		m.BalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction number %s already taken", apperrors.ErrDuplicate, m.TransactionNumber)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// scanTransactionDetail scans a joined transaction row including account and
// creator display fields.
func scanTransactionDetail(row rowScanner) (*models.Transaction, error) {
	var m models.Transaction
	var branchID, referenceID, referenceModel, createdByName sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.CompanyID,
		&branchID,
		&m.AccountID,
		&m.Type,
		&m.Category,
		&m.Amount,
		&m.Date,
		&referenceID,
		&referenceModel,
		&m.Description,
		&m.Notes,
		&m.BalanceAfter,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.AccountName,
		&m.AccountCode,
		&createdByName,
	)
	if err != nil {
		return nil, err
	}

	m.BranchID = branchID.String
	m.ReferenceID = referenceID.String
	m.ReferenceModel = referenceModel.String
	m.CreatedByName = createdByName.String
	return &m, nil
}

// FindTransactionByID retrieves a transaction by ID within a company scope,
// joined with its account and creator for display.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.TransactionDetail, error) {
	query := `
		SELECT ` + transactionColumns + `, a.name AS account_name, a.code AS account_code, u.name AS created_by_name
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		LEFT JOIN users u ON u.user_id = t.created_by
		WHERE t.transaction_id = $1 AND t.company_id = $2;
	`
	m, err := scanTransactionDetail(r.Pool.QueryRow(ctx, query, transactionID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	detail := mapping.ToDomainTransactionDetail(*m)
	return &detail, nil
}

// ListTransactions retrieves a page of transactions for a company matching
// the filter, newest first, plus the total count for pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, filter portsrepo.ListTransactionsFilter) ([]domain.TransactionDetail, int64, error) {
	where := `WHERE t.company_id = $1`
	args := []any{companyID}

	addCond := func(cond string, val any) {
		args = append(args, val)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}

	if filter.AccountID != "" {
		addCond("t.account_id = $%d", filter.AccountID)
	}
	if filter.Type != "" {
		addCond("t.type = $%d", string(filter.Type))
	}
	if filter.Category != "" {
		addCond("t.category = $%d", string(filter.Category))
	}
	if filter.DateFrom != nil {
		addCond("t.date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCond("t.date <= $%d", *filter.DateTo)
	}

	countQuery := `SELECT COUNT(*) FROM transactions t ` + where + `;`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for company %s: %w", companyID, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	pageQuery := `
		SELECT ` + transactionColumns + `, a.name AS account_name, a.code AS account_code, u.name AS created_by_name
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		LEFT JOIN users u ON u.user_id = t.created_by
		` + where + `
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d;", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for company %s: %w", companyID, err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionDetailSlice(ms), total, nil
}
