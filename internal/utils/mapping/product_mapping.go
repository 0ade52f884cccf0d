package mapping

import (
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	"github.com/SscSPs/vending_machine_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		Category:     string(d.Category),
		Price:        d.Price,
		QuantityLeft: d.QuantityLeft,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		Category:     domain.Category(m.Category),
		Price:        m.Price,
		QuantityLeft: m.QuantityLeft,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
