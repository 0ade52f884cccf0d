package repositories

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by its id. Returns apperrors.ErrNotFound when absent.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts retrieves every product, ordered by category then name.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data. There is no delete.
type ProductWriter interface {
	// SaveProduct inserts a new product and returns its assigned id.
	SaveProduct(ctx context.Context, product domain.Product) (int64, error)

	// UpdateProduct overwrites name, category, price and stock of an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// SaleRecorder applies the side effects of a completed purchase.
type SaleRecorder interface {
	// RecordSale decrements stock by quantity and appends the transaction log in one
	// database transaction. The decrement only applies while quantity_left >= quantity;
	// otherwise apperrors.ErrInsufficientStock is returned and nothing is written.
	// The returned log carries its assigned id.
	RecordSale(ctx context.Context, productID int64, quantity int, log domain.TransactionLog) (*domain.TransactionLog, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	SaleRecorder
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with transaction capabilities
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	TransactionManager
}
