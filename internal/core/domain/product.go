package domain

import (
	"fmt"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Category is the product category shown on the machine.
type Category string

const (
	CategoryCake  Category = "cake"
	CategoryDrink Category = "drink"
)

// Label returns the human readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryCake:
		return "Cake"
	case CategoryDrink:
		return "Soft Drink"
	default:
		return string(c)
	}
}

// Product is an item stocked in the machine.
type Product struct {
	ProductID    int64           `json:"productID"`
	Name         string          `json:"name" validate:"required,max=100"`
	Category     Category        `json:"category" validate:"required,oneof=cake drink"`
	Price        decimal.Decimal `json:"price"`
	QuantityLeft int             `json:"quantityLeft" validate:"gte=0"`
	AuditFields
}

var productValidator = validator.New()

// Validate checks the product invariants: non-empty name, known category,
// non-negative price and stock.
func (p Product) Validate() error {
	if err := productValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// InStock reports whether at least one unit is left.
func (p Product) InStock() bool {
	return p.QuantityLeft > 0
}

// CanSupply reports whether qty units can be sold.
func (p Product) CanSupply(qty int) bool {
	return qty <= p.QuantityLeft
}

// String mirrors the admin listing label, e.g. "Cola (drink)".
func (p Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Category)
}
