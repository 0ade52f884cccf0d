package mapping

import (
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/SscSPs/vending_machine_app/internal/models"
)

// ToModelTransactionLog converts a domain TransactionLog to a model TransactionLog,
// splitting the completion instant into the date and time columns.
func ToModelTransactionLog(d domain.TransactionLog) models.TransactionLog {
	return models.TransactionLog{
		LogID:           d.LogID,
		ProductID:       d.ProductID,
		Quantity:        d.Quantity,
		LogDate:         d.Date(),
		LogTime:         d.Time(),
		CompletedAt:     d.CompletedAt,
		AmountInserted:  d.AmountInserted,
		InsertedDetails: d.InsertedDetails,
		ChangeReturned:  d.ChangeReturned,
		ChangeDetails:   d.ChangeDetails,
	}
}

// ToDomainTransactionLog converts a model TransactionLog to a domain TransactionLog
func ToDomainTransactionLog(m models.TransactionLog) domain.TransactionLog {
	return domain.TransactionLog{
		LogID:           m.LogID,
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		CompletedAt:     m.CompletedAt,
		AmountInserted:  m.AmountInserted,
		InsertedDetails: m.InsertedDetails,
		ChangeReturned:  m.ChangeReturned,
		ChangeDetails:   m.ChangeDetails,
	}
}

// ToDomainTransactionLogSlice converts a slice of model TransactionLogs to domain TransactionLogs
func ToDomainTransactionLogSlice(ms []models.TransactionLog) []domain.TransactionLog {
	ds := make([]domain.TransactionLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionLog(m)
	}
	return ds
}
