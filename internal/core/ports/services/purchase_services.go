package services

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
)

// PurchaseSvc runs the purchase workflow. Failures are *domain.PurchaseError values
// (errors.Is-compatible with the apperrors sentinels); anything else is infrastructure.
type PurchaseSvc interface {
	// Purchase validates stock and funds, computes change, and records the sale.
	Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseReceipt, error)

	// PurchaseFromForm parses product_id, quantity and denom_<value> fields, then purchases.
	PurchaseFromForm(ctx context.Context, lookup domain.FieldLookup) (*domain.PurchaseReceipt, error)

	// QuickBuy purchases one unit paid with a single fixed note. An out-of-stock product
	// yields an uncompleted receipt rather than an error.
	QuickBuy(ctx context.Context, productID int64) (*domain.PurchaseReceipt, error)

	// Denominations returns the accepted denomination set.
	Denominations() domain.DenominationSet
}
