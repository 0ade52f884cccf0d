package services

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/SscSPs/vending_machine_app/internal/dto"
)

// ProductReaderSvc defines read operations for products
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product.
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts retrieves every product on the machine.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriterSvc defines admin write operations for products
type ProductWriterSvc interface {
	// CreateProduct adds a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, adminID string) (*domain.Product, error)

	// UpdateProduct changes name, category, price or stock of a product.
	UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest, adminID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
