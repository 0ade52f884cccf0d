package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formLookup(values map[string]string) domain.FieldLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParsePurchaseInput(t *testing.T) {
	set := domain.DefaultDenominations()

	tests := []struct {
		name       string
		form       map[string]string
		wantErrMsg string
		wantQty    int
		wantCounts map[int64]int64
		wantIssues []string
	}{
		{
			name:       "full form",
			form:       map[string]string{"product_id": "3", "quantity": "2", "denom_50": "2", "denom_1": "4"},
			wantQty:    2,
			wantCounts: map[int64]int64{50: 2, 1: 4},
		},
		{
			name:       "quantity defaults to one",
			form:       map[string]string{"product_id": "3", "denom_100": "1"},
			wantQty:    1,
			wantCounts: map[int64]int64{100: 1},
		},
		{
			name:       "missing product id",
			form:       map[string]string{"quantity": "1"},
			wantErrMsg: domain.MsgInvalidIDOrQuantity,
		},
		{
			name:       "non numeric product id",
			form:       map[string]string{"product_id": "abc"},
			wantErrMsg: domain.MsgInvalidIDOrQuantity,
		},
		{
			name:       "non numeric quantity",
			form:       map[string]string{"product_id": "1", "quantity": "two"},
			wantErrMsg: domain.MsgInvalidIDOrQuantity,
		},
		{
			name:       "empty quantity is invalid",
			form:       map[string]string{"product_id": "1", "quantity": ""},
			wantErrMsg: domain.MsgInvalidIDOrQuantity,
		},
		{
			name:       "zero quantity",
			form:       map[string]string{"product_id": "1", "quantity": "0"},
			wantErrMsg: domain.MsgQuantityTooSmall,
		},
		{
			name:       "negative quantity",
			form:       map[string]string{"product_id": "1", "quantity": "-3"},
			wantErrMsg: domain.MsgQuantityTooSmall,
		},
		{
			name: "malformed denominations are tolerated",
			form: map[string]string{
				"product_id": "1",
				"denom_100":  "x",
				"denom_50":   "-2",
				"denom_20":   "",
				"denom_10":   " 3 ",
			},
			wantQty:    1,
			wantCounts: map[int64]int64{10: 3},
			wantIssues: []string{"denom_100", "denom_50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := domain.ParsePurchaseInput(set, formLookup(tt.form))
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
				var perr *domain.PurchaseError
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, domain.PurchaseInvalidInput, perr.Kind)
				assert.Equal(t, tt.wantErrMsg, perr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, input.Quantity)
			require.Len(t, input.Inserted, set.Len())
			for i, d := range set.Values() {
				assert.Equal(t, d, input.Inserted[i].Denomination)
				assert.Equal(t, tt.wantCounts[d], input.Inserted[i].Count, "denomination %d", d)
			}
			fields := make([]string, 0, len(input.Issues))
			for _, issue := range input.Issues {
				fields = append(fields, issue.Field)
			}
			if len(tt.wantIssues) == 0 {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.wantIssues, fields)
			}
		})
	}
}

func TestParsePurchaseInput_InsertedFormatsInSetOrder(t *testing.T) {
	input, err := domain.ParsePurchaseInput(domain.DefaultDenominations(), formLookup(map[string]string{
		"product_id": "1",
		"denom_1":    "2",
		"denom_100":  "1",
		"denom_20":   "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "1x100, 1x20, 2x1", input.Inserted.Format())
	assert.True(t, input.Inserted.Total().Equal(decimal.NewFromInt(122)))
}

func TestParsePurchaseInput_HugeCountsKeepExactTotal(t *testing.T) {
	input, err := domain.ParsePurchaseInput(domain.DefaultDenominations(), formLookup(map[string]string{
		"product_id": "1",
		"denom_100":  "184467440737095517",
		"denom_1":    "16",
	}))
	require.NoError(t, err)

	total := input.Inserted.Total()
	assert.Equal(t, "18446744073709551716", total.String())
	assert.True(t, total.GreaterThan(domain.MaxRecordableAmount))
}

func TestPaymentSources(t *testing.T) {
	note := domain.SingleNote(100)
	assert.Equal(t, "1x100", note.Inserted().Format())

	cash := domain.CountedCash{{Denomination: 50, Count: 2}}
	assert.True(t, cash.Inserted().Total().Equal(decimal.NewFromInt(100)))
}

func TestPurchaseError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, domain.NewProductNotFoundError(9), apperrors.ErrNotFound)
	assert.ErrorIs(t, domain.NewInsufficientStockError(1, 5, 2), apperrors.ErrInsufficientStock)

	stockErr := domain.NewInsufficientStockError(1, 5, 2)
	assert.Equal(t, "Not enough stock. Available: 2", stockErr.Error())

	fundsErr := &domain.PurchaseError{
		Kind:     domain.PurchaseInsufficientFunds,
		Inserted: domain.Breakdown{{Denomination: 20, Count: 2}},
	}
	assert.ErrorIs(t, fundsErr, apperrors.ErrInsufficientFunds)
	assert.True(t, fundsErr.InsertedAmount().Equal(decimal.NewFromInt(40)))
}
