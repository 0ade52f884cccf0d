package models

import "github.com/shopspring/decimal"

// Product is the row shape of the products table.
type Product struct {
	ProductID    int64           `db:"product_id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	Price        decimal.Decimal `db:"price"` // NUMERIC(10,2)
	QuantityLeft int             `db:"quantity_left"`
	AuditFields
}
