package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLog is the row shape of the transaction_logs table.
// LogDate and LogTime are the local calendar date and time of day of the sale,
// CompletedAt the full instant. CreatedAt is the insert time and orders the log.
type TransactionLog struct {
	LogID           int64           `db:"log_id"`
	ProductID       int64           `db:"product_id"`
	Quantity        int             `db:"quantity"`
	LogDate         string          `db:"log_date"`
	LogTime         string          `db:"log_time"`
	CompletedAt     time.Time       `db:"completed_at"`
	AmountInserted  decimal.Decimal `db:"amount_inserted"`
	InsertedDetails string          `db:"inserted_details"`
	ChangeReturned  decimal.Decimal `db:"change_returned"`
	ChangeDetails   string          `db:"change_details"`
	CreatedAt       time.Time       `db:"created_at"`
}
