package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/google/uuid"
)

const defaultOperationTimeout = 10 * time.Second

type financeService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	provisioner portssvc.AccountProvisionerSvc
	opTimeout   time.Duration
}

// FinanceServiceOption customizes a finance service.
type FinanceServiceOption func(*financeService)

// WithOperationTimeout caps how long a single ledger write may run.
func WithOperationTimeout(d time.Duration) FinanceServiceOption {
	return func(s *financeService) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// NewFinanceService creates the ledger service.
func NewFinanceService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	provisioner portssvc.AccountProvisionerSvc,
	opts ...FinanceServiceOption,
) portssvc.FinanceSvcFacade {
	s := &financeService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		provisioner: provisioner,
		opTimeout:   defaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

// RecordTransaction validates the entry, resolves the target account
// (provisioning it on first use), then hands the entry to the repository
// which applies the balance change and entry insert in one database
// transaction.
func (s *financeService) RecordTransaction(ctx context.Context, companyID string, branchID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		CompanyID:      companyID,
		BranchID:       branchID,
		Type:           req.Type,
		Category:       req.Category,
		Amount:         req.Amount,
		Date:           date,
		ReferenceID:    req.ReferenceID,
		ReferenceModel: req.ReferenceModel,
		Description:    req.Description,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	// Reject bad input before resolution so a failed request can never
	// lazily provision an account as a side effect.
	if err := txn.ValidateFields(); err != nil {
		return nil, err
	}

	account, err := s.provisioner.ResolveOrProvisionAccount(ctx, companyID, req.AccountRef, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %q not found", apperrors.ErrNotFound, req.AccountRef)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %q is inactive", apperrors.ErrValidation, account.Code)
	}

	txn.AccountID = account.AccountID
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, "ledger write failed",
			"accountID", account.AccountID, "type", req.Type, "amount", req.Amount.String(), "error", err)
		return nil, err
	}

	s.LogInfo(ctx, "transaction recorded",
		"transactionNumber", saved.TransactionNumber,
		"accountID", saved.AccountID,
		"balanceAfter", saved.BalanceAfter.String())
	return saved, nil
}

// WithdrawProfit records an owner draw against the given account.
func (s *financeService) WithdrawProfit(ctx context.Context, companyID string, branchID string, req dto.WithdrawProfitRequest, userID string) (*domain.Transaction, error) {
	return s.RecordTransaction(ctx, companyID, branchID, dto.CreateTransactionRequest{
		AccountRef:  req.AccountRef,
		Type:        domain.TypeOut,
		Category:    domain.CategoryProfitWithdrawal,
		Amount:      req.Amount,
		Description: "Profit withdrawal",
		Notes:       req.Notes,
	}, userID)
}

// ListTransactions retrieves a filtered page of the company's transactions.
// An account reference that resolves to nothing yields an empty page rather
// than an error so dashboards render cleanly for never-used payment methods.
func (s *financeService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.ListTransactionsFilter{
		Type:     params.Type,
		Category: params.Category,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
		Page:     params.Page,
		Limit:    params.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	if params.AccountRef != "" {
		if _, err := uuid.Parse(params.AccountRef); err == nil {
			filter.AccountID = params.AccountRef
		} else {
			acc, err := s.accountRepo.FindAccountByCode(ctx, companyID, params.AccountRef)
			if errors.Is(err, apperrors.ErrNotFound) {
				acc, err = s.accountRepo.FindAccountByCode(ctx, "", params.AccountRef)
			}
			if errors.Is(err, apperrors.ErrNotFound) {
				return &dto.ListTransactionsResponse{
					Transactions: []dto.TransactionResponse{},
					Total:        0,
					Page:         filter.Page,
					Limit:        filter.Limit,
				}, nil
			}
			if err != nil {
				return nil, err
			}
			filter.AccountID = acc.AccountID
		}
	}

	details, total, err := s.txnRepo.ListTransactions(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(details)),
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}
	for i := range details {
		resp.Transactions[i] = dto.ToTransactionDetailResponse(&details[i])
	}
	return resp, nil
}

// GetTransactionByID retrieves one transaction for the company.
func (s *financeService) GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.TransactionDetail, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, fmt.Errorf("%w: invalid transaction ID format", apperrors.ErrValidation)
	}
	return s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
}

// GetAccountBalances returns one balance row per distinct account code. The
// company's accounts and the system templates are merged by lowercased code
// with the company's row winning, so a tenant that has provisioned "cash"
// sees its own balance while unprovisioned methods still appear at zero.
func (s *financeService) GetAccountBalances(ctx context.Context, companyID string) ([]dto.AccountBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccountsWithTemplates(ctx, companyID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		key := strings.ToLower(acc.Code)
		existing, ok := merged[key]
		if !ok || (existing.IsTemplate() && !acc.IsTemplate()) {
			merged[key] = acc
		}
	}

	result := make([]domain.Account, 0, len(merged))
	for _, acc := range merged {
		result = append(result, acc)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})

	return dto.ToAccountBalanceRows(result), nil
}
