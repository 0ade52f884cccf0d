package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Form field names accepted by the purchase workflow.
const (
	FieldProductID          = "product_id"
	FieldQuantity           = "quantity"
	DenominationFieldPrefix = "denom_"
)

// Messages shown for input validation failures.
const (
	MsgInvalidIDOrQuantity = "Invalid product id or quantity."
	MsgQuantityTooSmall    = "Quantity must be 1 or more."
	MsgAmountTooLarge      = "Amount inserted is too large for one purchase."
)

// MaxRecordableAmount is the largest amount a transaction log row can hold (NUMERIC(10,2)).
var MaxRecordableAmount = decimal.RequireFromString("99999999.99")

// DenominationField returns the form field carrying the count for denomination d, e.g. "denom_50".
func DenominationField(d int64) string {
	return DenominationFieldPrefix + strconv.FormatInt(d, 10)
}

// FieldLookup returns the raw value of a form field and whether it was present.
// gin's (*Context).GetPostForm and url.Values lookups both fit.
type FieldLookup func(key string) (string, bool)

// FieldIssue records a denomination field that was coerced to 0.
type FieldIssue struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// PurchaseInput is a parsed purchase form.
type PurchaseInput struct {
	ProductID int64
	Quantity  int
	Inserted  Breakdown
	Issues    []FieldIssue
}

// ParsePurchaseInput parses product_id, quantity (default 1) and one denom_<value> field per
// denomination in set. product_id and quantity must be integers and quantity at least 1;
// otherwise a *PurchaseError of kind PurchaseInvalidInput is returned. Denomination counts are
// tolerant: a missing or empty field is 0, and an unparsable or negative value is 0 with a
// FieldIssue recorded. The inserted breakdown lists every denomination, in set order.
func ParsePurchaseInput(set DenominationSet, lookup FieldLookup) (PurchaseInput, error) {
	rawID, ok := lookup(FieldProductID)
	if !ok {
		return PurchaseInput{}, NewInvalidInputError(MsgInvalidIDOrQuantity)
	}
	productID, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return PurchaseInput{}, NewInvalidInputError(MsgInvalidIDOrQuantity)
	}

	quantity := 1
	if rawQty, ok := lookup(FieldQuantity); ok {
		quantity, err = strconv.Atoi(strings.TrimSpace(rawQty))
		if err != nil {
			return PurchaseInput{}, NewInvalidInputError(MsgInvalidIDOrQuantity)
		}
	}
	if quantity < 1 {
		return PurchaseInput{}, NewInvalidInputError(MsgQuantityTooSmall)
	}

	inserted, issues := ParseInsertedCounts(set, lookup)
	return PurchaseInput{
		ProductID: productID,
		Quantity:  quantity,
		Inserted:  inserted,
		Issues:    issues,
	}, nil
}

// ParseInsertedCounts reads the denom_<value> fields for every denomination in set.
func ParseInsertedCounts(set DenominationSet, lookup FieldLookup) (Breakdown, []FieldIssue) {
	var issues []FieldIssue
	inserted := make(Breakdown, 0, set.Len())
	for _, d := range set.Values() {
		field := DenominationField(d)
		raw, _ := lookup(field)
		raw = strings.TrimSpace(raw)

		var count int64
		if raw != "" {
			c, err := strconv.ParseInt(raw, 10, 64)
			switch {
			case err != nil:
				issues = append(issues, FieldIssue{Field: field, Value: raw, Reason: "not a whole number, counted as 0"})
			case c < 0:
				issues = append(issues, FieldIssue{Field: field, Value: raw, Reason: "negative count, counted as 0"})
			default:
				count = c
			}
		}
		inserted = append(inserted, DenominationCount{Denomination: d, Count: count})
	}
	return inserted, issues
}

// PaymentSource supplies the cash inserted for a purchase.
type PaymentSource interface {
	Inserted() Breakdown
}

// CountedCash is cash counted per denomination, as entered on the purchase form.
type CountedCash Breakdown

// Inserted implements PaymentSource.
func (c CountedCash) Inserted() Breakdown {
	return Breakdown(c)
}

// SingleNote is one note of the given denomination, used by quick buy.
type SingleNote int64

// Inserted implements PaymentSource.
func (n SingleNote) Inserted() Breakdown {
	return Breakdown{{Denomination: int64(n), Count: 1}}
}

// PurchaseErrorKind enumerates the recoverable and hard failures of a purchase.
type PurchaseErrorKind string

const (
	PurchaseInvalidInput      PurchaseErrorKind = "INVALID_INPUT"
	PurchaseNotFound          PurchaseErrorKind = "NOT_FOUND"
	PurchaseInsufficientStock PurchaseErrorKind = "INSUFFICIENT_STOCK"
	PurchaseInsufficientFunds PurchaseErrorKind = "INSUFFICIENT_FUNDS"
)

// PurchaseError is a failed purchase. It carries enough of the request for the form to be
// shown again: the selection, the available stock, and for insufficient funds the price and
// the cash the customer entered.
type PurchaseError struct {
	Kind      PurchaseErrorKind
	Message   string
	ProductID int64
	Quantity  int
	Available int
	Price     decimal.Decimal
	Inserted  Breakdown
}

func (e *PurchaseError) Error() string {
	return e.Message
}

// Unwrap maps the kind onto the apperrors sentinel so callers can use errors.Is.
func (e *PurchaseError) Unwrap() error {
	switch e.Kind {
	case PurchaseInvalidInput:
		return apperrors.ErrInvalidInput
	case PurchaseNotFound:
		return apperrors.ErrNotFound
	case PurchaseInsufficientStock:
		return apperrors.ErrInsufficientStock
	case PurchaseInsufficientFunds:
		return apperrors.ErrInsufficientFunds
	}
	return nil
}

// InsertedAmount returns the total of the entered cash.
func (e *PurchaseError) InsertedAmount() decimal.Decimal {
	return e.Inserted.Total()
}

// NewInvalidInputError reports an unparsable product id or quantity.
func NewInvalidInputError(msg string) *PurchaseError {
	return &PurchaseError{Kind: PurchaseInvalidInput, Message: msg}
}

// NewProductNotFoundError reports an unknown product id.
func NewProductNotFoundError(productID int64) *PurchaseError {
	return &PurchaseError{
		Kind:      PurchaseNotFound,
		Message:   fmt.Sprintf("Product %d not found.", productID),
		ProductID: productID,
	}
}

// NewInsufficientStockError reports a quantity above the remaining stock.
func NewInsufficientStockError(productID int64, quantity, available int) *PurchaseError {
	return &PurchaseError{
		Kind:      PurchaseInsufficientStock,
		Message:   fmt.Sprintf("Not enough stock. Available: %d", available),
		ProductID: productID,
		Quantity:  quantity,
		Available: available,
	}
}

// PurchaseReceipt is the outcome of a purchase that did not fail. Completed is false only
// for a quick buy of an out-of-stock product, which is reported rather than rejected.
type PurchaseReceipt struct {
	Completed       bool
	Message         string
	Product         Product
	Quantity        int
	TotalPrice      decimal.Decimal
	AmountInserted  decimal.Decimal
	InsertedDetails string
	ChangeReturned  decimal.Decimal
	ChangeDetails   string
	ChangeBreakdown Breakdown
	Issues          []FieldIssue
	Log             *TransactionLog
}

// PurchaseRequest is the single entry point input for both the purchase form and quick buy.
type PurchaseRequest struct {
	ProductID int64
	Quantity  int
	Payment   PaymentSource
	// Issues carries denomination fields that were coerced while parsing the form.
	Issues []FieldIssue
	// ReportOutOfStock turns an empty shelf into an uncompleted receipt instead of an error.
	ReportOutOfStock bool
}
