package pgsql

import (
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	transactionLogRepo := newPgxTransactionLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:        productRepo,
		TransactionLogRepo: transactionLogRepo,
	}
}
