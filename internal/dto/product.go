package dto

import (
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to stock a new product.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Category     string          `json:"category" binding:"required,oneof=cake drink"`
	Price        decimal.Decimal `json:"price"`
	QuantityLeft int             `json:"quantityLeft" binding:"gte=0"`
}

// UpdateProductRequest defines the fields an admin may change.
// Pointers differentiate between omitted fields and zero values.
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Category     *string          `json:"category" binding:"omitempty,oneof=cake drink"`
	Price        *decimal.Decimal `json:"price"`
	QuantityLeft *int             `json:"quantityLeft" binding:"omitempty,gte=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     int64  `json:"productID"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Price         string `json:"price"`
	QuantityLeft  int    `json:"quantityLeft"`
	InStock       bool   `json:"inStock"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Category:      string(p.Category),
		CategoryLabel: p.Category.Label(),
		Price:         p.Price.StringFixed(2),
		QuantityLeft:  p.QuantityLeft,
		InStock:       p.InStock(),
	}
}

// ToListProductResponse converts a slice of domain.Product to ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
