package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a concurrent writer interfered and the operation
// could not be safely retried within bounds.
var ErrConflict = errors.New("concurrent update conflict")

// ErrInsufficientBalance indicates that a withdrawal would drive an account
// below zero when its category does not permit negative balances.
var ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrValidation)

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// PartialFailureError reports a ledger write whose outcome is unknown: the
// account balance may have been updated without its transaction record (or
// vice versa). It carries enough information for reconciliation and must
// never be presented to the caller as "nothing happened".
type PartialFailureError struct {
	AccountID string
	Delta     decimal.Decimal
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("ledger write outcome unknown for account %s (delta %s): %v", e.AccountID, e.Delta.String(), e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// NewPartialFailureError creates a PartialFailureError for the given account and attempted delta.
func NewPartialFailureError(accountID string, delta decimal.Decimal, err error) *PartialFailureError {
	return &PartialFailureError{AccountID: accountID, Delta: delta, Err: err}
}

// IsPartialFailure reports whether err (or anything it wraps) is a PartialFailureError.
func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}
