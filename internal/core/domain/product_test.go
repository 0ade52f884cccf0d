package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		wantErr bool
	}{
		{
			name:    "valid cake",
			product: domain.Product{Name: "Brownie", Category: domain.CategoryCake, Price: decimal.RequireFromString("45.00"), QuantityLeft: 3},
		},
		{
			name:    "free drink out of stock",
			product: domain.Product{Name: "Water", Category: domain.CategoryDrink, Price: decimal.Zero, QuantityLeft: 0},
		},
		{
			name:    "missing name",
			product: domain.Product{Category: domain.CategoryCake, Price: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "unknown category",
			product: domain.Product{Name: "Chips", Category: "snack", Price: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "negative price",
			product: domain.Product{Name: "Cola", Category: domain.CategoryDrink, Price: decimal.NewFromInt(-1)},
			wantErr: true,
		},
		{
			name:    "negative stock",
			product: domain.Product{Name: "Cola", Category: domain.CategoryDrink, Price: decimal.NewFromInt(1), QuantityLeft: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_Stock(t *testing.T) {
	p := domain.Product{Name: "Cola", Category: domain.CategoryDrink, QuantityLeft: 2}

	assert.True(t, p.InStock())
	assert.True(t, p.CanSupply(2))
	assert.False(t, p.CanSupply(3))
	assert.False(t, domain.Product{}.InStock())
	assert.Equal(t, "Cola (drink)", p.String())
	assert.Equal(t, "Soft Drink", p.Category.Label())
}

func TestNewTransactionLog(t *testing.T) {
	completed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	inserted := domain.Breakdown{{Denomination: 100, Count: 0}, {Denomination: 50, Count: 2}}
	change := domain.Breakdown{{Denomination: 10, Count: 1}}

	log := domain.NewTransactionLog(4, 2, completed, inserted, decimal.RequireFromString("10"), change)

	assert.Equal(t, int64(4), log.ProductID)
	assert.Equal(t, 2, log.Quantity)
	assert.Equal(t, "2026-03-14", log.Date())
	assert.Equal(t, "09:26:53", log.Time())
	assert.Equal(t, "100.00", log.AmountInserted.StringFixed(2))
	assert.Equal(t, "2x50", log.InsertedDetails)
	assert.Equal(t, "10.00", log.ChangeReturned.StringFixed(2))
	assert.Equal(t, "1x10", log.ChangeDetails)
	assert.Equal(t, "2026-03-14 - 100.00 -> Change: 10.00", log.String())
}
