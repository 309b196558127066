package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financeHandler handles HTTP requests for the transaction ledger.
type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: fs}
}

// registerFinanceRoutes registers routes for the ledger and balance report.
func registerFinanceRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(financeService)

	finance := rg.Group("/finance")
	{
		finance.POST("/transactions", h.createTransaction)
		finance.GET("/transactions", h.listTransactions)
		finance.GET("/transactions/:id", h.getTransaction)
		finance.POST("/withdrawals", h.withdrawProfit)
		finance.GET("/account-balances", h.getAccountBalances)
	}
}

// identity pulls the authenticated caller out of the request context. A
// missing user ID aborts with 401.
func identity(c *gin.Context) (userID, companyID, branchID string, ok bool) {
	ctx := c.Request.Context()
	userID, ok = middleware.GetUserIDFromCtx(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", "", false
	}
	companyID, _ = middleware.GetCompanyIDFromCtx(ctx)
	branchID = middleware.GetBranchIDFromCtx(ctx)
	return userID, companyID, branchID, true
}

// writeLedgerError maps a ledger service error to an HTTP response.
func writeLedgerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var partial *apperrors.PartialFailureError
	switch {
	case errors.As(err, &partial):
		logger.Error("Ledger write in unknown commit state",
			slog.String("account_id", partial.AccountID),
			slog.String("delta", partial.Delta.String()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Transaction state unknown; reconcile before retrying",
			"accountID": partial.AccountID,
			"delta":     partial.Delta,
		})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Write conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update conflict, please retry"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createTransaction godoc
// @Summary Record a financial transaction
// @Description Records a balance-affecting ledger entry against a payment-method account, provisioning the account from a system template on first use
// @Tags finance
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Concurrent update conflict"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /finance/transactions [post]
func (h *financeHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, branchID, ok := identity(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_ref", req.AccountRef), slog.String("type", string(req.Type)))
	logger.Info("Received request to record transaction", slog.String("amount", req.Amount.String()))

	txn, err := h.financeService.RecordTransaction(c.Request.Context(), companyID, branchID, req, userID)
	if err != nil {
		writeLedgerError(c, logger, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_number", txn.TransactionNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdrawProfit godoc
// @Summary Withdraw profit
// @Description Records an owner profit withdrawal from a payment-method account
// @Tags finance
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawProfitRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Failure 500 {object} map[string]string "Failed to record withdrawal"
// @Security BearerAuth
// @Router /finance/withdrawals [post]
func (h *financeHandler) withdrawProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for WithdrawProfit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, branchID, ok := identity(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_ref", req.AccountRef))
	logger.Info("Received request to withdraw profit", slog.String("amount", req.Amount.String()))

	txn, err := h.financeService.WithdrawProfit(c.Request.Context(), companyID, branchID, req, userID)
	if err != nil {
		writeLedgerError(c, logger, err, "Failed to record withdrawal")
		return
	}

	logger.Info("Profit withdrawal recorded", slog.String("transaction_number", txn.TransactionNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a filtered, paginated list of the company's ledger entries, newest first
// @Tags finance
// @Produce  json
// @Param   accountRef query string false "Account ID or code to filter by"
// @Param   type query string false "Transaction type (IN or OUT)"
// @Param   category query string false "Transaction category"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /finance/transactions [get]
func (h *financeHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, _, ok := identity(c)
	if !ok {
		return
	}

	resp, err := h.financeService.ListTransactions(c.Request.Context(), companyID, params)
	if err != nil {
		writeLedgerError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves one ledger entry with its account and creator details
// @Tags finance
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Malformed transaction ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /finance/transactions/{id} [get]
func (h *financeHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	_, companyID, _, ok := identity(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))

	detail, err := h.financeService.GetTransactionByID(c.Request.Context(), companyID, transactionID)
	if err != nil {
		writeLedgerError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionDetailResponse(detail))
}

// getAccountBalances godoc
// @Summary Get account balances
// @Description Returns the current balance of every payment method visible to the company, merging system templates with company accounts
// @Tags finance
// @Produce  json
// @Success 200 {array} dto.AccountBalanceRow
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /finance/account-balances [get]
func (h *financeHandler) getAccountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, _, ok := identity(c)
	if !ok {
		return
	}

	rows, err := h.financeService.GetAccountBalances(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to get account balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
