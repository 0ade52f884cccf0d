package services

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/SscSPs/vending_machine_app/internal/dto"
)

// TransactionLogSvcFacade exposes the read side of the sales log
type TransactionLogSvcFacade interface {
	// GetTransactionLog retrieves one log entry.
	GetTransactionLog(ctx context.Context, logID int64) (*domain.TransactionLog, error)

	// ListTransactionLogs retrieves a page of log entries, newest first.
	ListTransactionLogs(ctx context.Context, params dto.ListTransactionLogsParams) (*dto.ListTransactionLogsResponse, error)
}
