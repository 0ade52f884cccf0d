package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
)

const defaultLogPageSize = 20

type transactionLogService struct {
	BaseService
	logRepo portsrepo.TransactionLogReader
}

// NewTransactionLogService creates a new transaction log service.
func NewTransactionLogService(logRepo portsrepo.TransactionLogReader) portssvc.TransactionLogSvcFacade {
	return &transactionLogService{logRepo: logRepo}
}

var _ portssvc.TransactionLogSvcFacade = (*transactionLogService)(nil)

func (s *transactionLogService) GetTransactionLog(ctx context.Context, logID int64) (*domain.TransactionLog, error) {
	entry, err := s.logRepo.FindTransactionLogByID(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction log %d in service: %w", logID, err)
	}
	return entry, nil
}

func (s *transactionLogService) ListTransactionLogs(ctx context.Context, params dto.ListTransactionLogsParams) (*dto.ListTransactionLogsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLogPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	logs, next, err := s.logRepo.ListTransactionLogs(ctx, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction logs")
		return nil, fmt.Errorf("failed to list transaction logs in service: %w", err)
	}

	res := dto.ToListTransactionLogsResponse(logs, next)
	return &res, nil
}
