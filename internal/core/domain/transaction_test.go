package domain_test

import (
	"testing"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionValidate(t *testing.T) {
	valid := domain.Transaction{
		AccountID: "acc-1",
		Type:      domain.TypeIn,
		Category:  domain.CategorySale,
		Amount:    decimal.NewFromInt(100),
	}

	testCases := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr error
	}{
		{
			name:   "valid transaction",
			mutate: func(t *domain.Transaction) {},
		},
		{
			name:    "missing account",
			mutate:  func(t *domain.Transaction) { t.AccountID = "" },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown type",
			mutate:  func(t *domain.Transaction) { t.Type = "SIDEWAYS" },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown category",
			mutate:  func(t *domain.Transaction) { t.Category = "LOTTERY" },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "zero amount",
			mutate:  func(t *domain.Transaction) { t.Amount = decimal.Zero },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "negative amount",
			mutate:  func(t *domain.Transaction) { t.Amount = decimal.NewFromInt(-5) },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "reference id without model",
			mutate:  func(t *domain.Transaction) { t.ReferenceID = "order-1" },
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "reference id with model",
			mutate: func(t *domain.Transaction) {
				t.ReferenceID = "order-1"
				t.ReferenceModel = "Order"
			},
		},
	}

	t.Run("fields validate without an account", func(t *testing.T) {
		txn := valid
		txn.AccountID = ""
		assert.NoError(t, txn.ValidateFields())

		txn.Amount = decimal.Zero
		assert.ErrorIs(t, txn.ValidateFields(), apperrors.ErrValidation)
	})

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn := valid
			tc.mutate(&txn)
			err := txn.Validate()
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	in := domain.Transaction{Type: domain.TypeIn, Amount: decimal.NewFromInt(75)}
	out := domain.Transaction{Type: domain.TypeOut, Amount: decimal.NewFromInt(75)}

	assert.True(t, in.SignedAmount().Equal(decimal.NewFromInt(75)))
	assert.True(t, out.SignedAmount().Equal(decimal.NewFromInt(-75)))
}

func TestFormatTransactionNumber(t *testing.T) {
	date := time.Date(2025, time.January, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "TRX-20250115-0001", domain.FormatTransactionNumber(date, 1))
	assert.Equal(t, "TRX-20250115-0042", domain.FormatTransactionNumber(date, 42))
	assert.Equal(t, "TRX-20250115-9999", domain.FormatTransactionNumber(date, 9999))
	// The counter widens past four digits instead of wrapping.
	assert.Equal(t, "TRX-20250115-10000", domain.FormatTransactionNumber(date, 10000))
}

func TestFormatTransactionNumberUsesUTCDay(t *testing.T) {
	dhaka := time.FixedZone("BST", 6*60*60)
	// 03:00 on the 16th in Dhaka is still the 15th in UTC.
	date := time.Date(2025, time.January, 16, 3, 0, 0, 0, dhaka)

	assert.Equal(t, "TRX-20250115-0007", domain.FormatTransactionNumber(date, 7))
}
