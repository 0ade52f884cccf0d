package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	"github.com/SscSPs/vending_machine_app/internal/models"
	"github.com/SscSPs/vending_machine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `product_id, name, category, price, quantity_left, created_at, created_by, last_updated_at, last_updated_by`

// decrementStockSQL sells $1 units of product $2. The guard keeps quantity_left >= 0 under
// concurrent purchases.
const decrementStockSQL = `
	UPDATE products
	SET quantity_left = quantity_left - $1, last_updated_at = NOW()
	WHERE product_id = $2 AND quantity_left >= $1;
`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.QuantityLeft,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveProduct inserts a new product and returns its id.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) (int64, error) {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (name, category, price, quantity_left, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.Name,
		m.Category,
		m.Price,
		m.QuantityLeft,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save product %s: %w", m.Name, err)
	}
	return id, nil
}

// FindProductByID retrieves a product by its id.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %d: %w", productID, err)
	}

	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// ListProducts retrieves all products, cakes first then drinks, each by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY category, name, product_id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// UpdateProduct overwrites the mutable columns of a product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $1, category = $2, price = $3, quantity_left = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Category,
		m.Price,
		m.QuantityLeft,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordSale decrements stock and appends the transaction log atomically.
func (r *PgxProductRepository) RecordSale(ctx context.Context, productID int64, quantity int, log domain.TransactionLog) (*domain.TransactionLog, error) {
	var saved *domain.TransactionLog
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, decrementStockSQL, quantity, productID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock of product %d: %w", productID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrInsufficientStock
		}

		log.ProductID = productID
		log.Quantity = quantity
		saved, err = insertTransactionLog(ctx, tx, log)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
