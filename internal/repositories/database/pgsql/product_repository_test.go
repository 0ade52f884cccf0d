package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecrementStockSQL(t *testing.T) {
	sql := strings.Join(strings.Fields(decrementStockSQL), " ")

	assert.Contains(t, sql, "SET quantity_left = quantity_left - $1, last_updated_at = NOW()")
	assert.Contains(t, sql, "WHERE product_id = $2 AND quantity_left >= $1")
}
