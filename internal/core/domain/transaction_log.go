package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	logDateLayout = "2006-01-02"
	logTimeLayout = "15:04:05"
)

// TransactionLog is the append-only record of one completed purchase.
type TransactionLog struct {
	LogID           int64           `json:"logID"`
	ProductID       int64           `json:"productID"`
	Quantity        int             `json:"quantity"`
	CompletedAt     time.Time       `json:"completedAt"`
	AmountInserted  decimal.Decimal `json:"amountInserted"`
	InsertedDetails string          `json:"insertedDetails"`
	ChangeReturned  decimal.Decimal `json:"changeReturned"`
	ChangeDetails   string          `json:"changeDetails"`
}

// NewTransactionLog builds the log entry for a completed sale. Amounts are stored at 2 dp.
func NewTransactionLog(productID int64, quantity int, completedAt time.Time, inserted Breakdown, change decimal.Decimal, changeBreakdown Breakdown) TransactionLog {
	return TransactionLog{
		ProductID:       productID,
		Quantity:        quantity,
		CompletedAt:     completedAt,
		AmountInserted:  inserted.Total().Round(2),
		InsertedDetails: inserted.Format(),
		ChangeReturned:  change.Round(2),
		ChangeDetails:   changeBreakdown.Format(),
	}
}

// Date returns the completion date as YYYY-MM-DD.
func (l TransactionLog) Date() string {
	return l.CompletedAt.Format(logDateLayout)
}

// Time returns the completion time of day as HH:MM:SS.
func (l TransactionLog) Time() string {
	return l.CompletedAt.Format(logTimeLayout)
}

func (l TransactionLog) String() string {
	return fmt.Sprintf("%s - %s -> Change: %s", l.Date(), l.AmountInserted.StringFixed(2), l.ChangeReturned.StringFixed(2))
}
