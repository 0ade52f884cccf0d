package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount renders a cash amount for customer-facing messages, e.g. "Rs 90.00".
// An empty symbol yields just the number.
func FormatAmount(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		return FormatWithPrecision(amount, 2)
	}
	return symbol + " " + FormatWithPrecision(amount, 2)
}
