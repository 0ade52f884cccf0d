package repositories

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
)

// TransactionLogReader defines read operations for the transaction log
type TransactionLogReader interface {
	// FindTransactionLogByID retrieves a single log entry.
	FindTransactionLogByID(ctx context.Context, logID int64) (*domain.TransactionLog, error)

	// ListTransactionLogs returns newest entries first using token-based pagination.
	// It returns the entries and a token for the next page (nil on the last page).
	ListTransactionLogs(ctx context.Context, limit int, nextToken *string) ([]domain.TransactionLog, *string, error)
}

// TransactionLogWriter appends entries. Entries are never updated or deleted.
type TransactionLogWriter interface {
	// SaveTransactionLog appends a log entry and returns its assigned id.
	SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (int64, error)
}

// TransactionLogRepositoryFacade combines all transaction log repository interfaces
type TransactionLogRepositoryFacade interface {
	TransactionLogReader
	TransactionLogWriter
}
