package services_test

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) RecordSale(ctx context.Context, productID int64, quantity int, log domain.TransactionLog) (*domain.TransactionLog, error) {
	args := m.Called(ctx, productID, quantity, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionLog), args.Error(1)
}

// --- Mock TransactionLogRepository ---
type MockTransactionLogRepository struct {
	mock.Mock
}

func (m *MockTransactionLogRepository) FindTransactionLogByID(ctx context.Context, logID int64) (*domain.TransactionLog, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionLog), args.Error(1)
}

func (m *MockTransactionLogRepository) ListTransactionLogs(ctx context.Context, limit int, nextToken *string) ([]domain.TransactionLog, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var logs []domain.TransactionLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.TransactionLog)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return logs, next, args.Error(2)
}

func (m *MockTransactionLogRepository) SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (int64, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(int64), args.Error(1)
}
