package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/utils/clock"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	clock       clock.Clock
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, c clock.Clock) portssvc.ProductSvcFacade {
	if c == nil {
		c = clock.NewSystemClock(nil)
	}
	return &productService{productRepo: productRepo, clock: c}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, adminID string) (*domain.Product, error) {
	now := s.clock.Now()
	product := domain.Product{
		Name:         req.Name,
		Category:     domain.Category(req.Category),
		Price:        req.Price.Round(2),
		QuantityLeft: req.QuantityLeft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := product.Validate(); err != nil {
		s.LogWarn(ctx, "Invalid product", slog.String("error", err.Error()))
		return nil, err
	}

	id, err := s.productRepo.SaveProduct(ctx, product)
	if err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("name", product.Name))
		return nil, fmt.Errorf("failed to create product in service: %w", err)
	}
	product.ProductID = id

	s.LogInfo(ctx, "Product created", slog.Int64("product_id", id))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d in service: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products in service: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest, adminID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d for update: %w", productID, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = domain.Category(*req.Category)
	}
	if req.Price != nil {
		product.Price = req.Price.Round(2)
	}
	if req.QuantityLeft != nil {
		product.QuantityLeft = *req.QuantityLeft
	}
	product.LastUpdatedAt = s.clock.Now()
	product.LastUpdatedBy = adminID

	if err := product.Validate(); err != nil {
		s.LogWarn(ctx, "Invalid product update", slog.Int64("product_id", productID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.Int64("product_id", productID))
		return nil, fmt.Errorf("failed to update product %d in service: %w", productID, err)
	}

	s.LogInfo(ctx, "Product updated", slog.Int64("product_id", productID), slog.Int("quantity_left", product.QuantityLeft))
	return product, nil
}
