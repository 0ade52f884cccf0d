package dto

import (
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
)

// ListTransactionLogsParams defines query parameters for listing the sales log.
type ListTransactionLogsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// TransactionLogResponse defines the data returned for a log entry.
type TransactionLogResponse struct {
	LogID           int64  `json:"logID"`
	ProductID       int64  `json:"productID"`
	Quantity        int    `json:"quantity"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	AmountInserted  string `json:"amountInserted"`
	InsertedDetails string `json:"insertedDetails"`
	ChangeReturned  string `json:"changeReturned"`
	ChangeDetails   string `json:"changeDetails"`
}

// ListTransactionLogsResponse wraps a page of log entries.
type ListTransactionLogsResponse struct {
	Logs      []TransactionLogResponse `json:"logs"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToTransactionLogResponse converts a domain.TransactionLog to its response DTO
func ToTransactionLogResponse(l *domain.TransactionLog) TransactionLogResponse {
	return TransactionLogResponse{
		LogID:           l.LogID,
		ProductID:       l.ProductID,
		Quantity:        l.Quantity,
		Date:            l.Date(),
		Time:            l.Time(),
		AmountInserted:  l.AmountInserted.StringFixed(2),
		InsertedDetails: l.InsertedDetails,
		ChangeReturned:  l.ChangeReturned.StringFixed(2),
		ChangeDetails:   l.ChangeDetails,
	}
}

// ToListTransactionLogsResponse converts a page of logs to its response DTO
func ToListTransactionLogsResponse(logs []domain.TransactionLog, nextToken *string) ListTransactionLogsResponse {
	res := make([]TransactionLogResponse, len(logs))
	for i := range logs {
		res[i] = ToTransactionLogResponse(&logs[i])
	}
	return ListTransactionLogsResponse{Logs: res, NextToken: nextToken}
}
