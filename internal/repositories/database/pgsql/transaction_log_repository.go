package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	"github.com/SscSPs/vending_machine_app/internal/models"
	"github.com/SscSPs/vending_machine_app/internal/utils/mapping"
	"github.com/SscSPs/vending_machine_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transactionLogColumns = `log_id, product_id, quantity, log_date::text, log_time::text, completed_at,
		amount_inserted, inserted_details, change_returned, change_details, created_at`
	defaultLogLimit = 20
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgxTransactionLogRepository struct {
	BaseRepository
}

// newPgxTransactionLogRepository creates a new repository for the sales log.
func newPgxTransactionLogRepository(pool *pgxpool.Pool) portsrepo.TransactionLogRepositoryFacade {
	return &PgxTransactionLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionLogRepositoryFacade = (*PgxTransactionLogRepository)(nil)

func scanTransactionLog(row pgx.Row) (models.TransactionLog, error) {
	var m models.TransactionLog
	err := row.Scan(
		&m.LogID,
		&m.ProductID,
		&m.Quantity,
		&m.LogDate,
		&m.LogTime,
		&m.CompletedAt,
		&m.AmountInserted,
		&m.InsertedDetails,
		&m.ChangeReturned,
		&m.ChangeDetails,
		&m.CreatedAt,
	)
	return m, err
}

// insertTransactionLog appends a log row through q, which may be a transaction.
func insertTransactionLog(ctx context.Context, q querier, log domain.TransactionLog) (*domain.TransactionLog, error) {
	m := mapping.ToModelTransactionLog(log)

	query := `
		INSERT INTO transaction_logs (product_id, quantity, log_date, log_time, completed_at,
			amount_inserted, inserted_details, change_returned, change_details)
		VALUES ($1, $2, $3::text::date, $4::text::time, $5, $6, $7, $8, $9)
		RETURNING log_id;
	`
	err := q.QueryRow(ctx, query,
		m.ProductID,
		m.Quantity,
		m.LogDate,
		m.LogTime,
		m.CompletedAt,
		m.AmountInserted,
		m.InsertedDetails,
		m.ChangeReturned,
		m.ChangeDetails,
	).Scan(&m.LogID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction log for product %d: %w", m.ProductID, err)
	}

	saved := mapping.ToDomainTransactionLog(m)
	return &saved, nil
}

// SaveTransactionLog appends a log entry outside of a sale.
func (r *PgxTransactionLogRepository) SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (int64, error) {
	saved, err := insertTransactionLog(ctx, r.Pool, log)
	if err != nil {
		return 0, err
	}
	return saved.LogID, nil
}

// FindTransactionLogByID retrieves a single log entry.
func (r *PgxTransactionLogRepository) FindTransactionLogByID(ctx context.Context, logID int64) (*domain.TransactionLog, error) {
	query := `SELECT ` + transactionLogColumns + ` FROM transaction_logs WHERE log_id = $1;`

	m, err := scanTransactionLog(r.Pool.QueryRow(ctx, query, logID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction log %d: %w", logID, err)
	}

	entry := mapping.ToDomainTransactionLog(m)
	return &entry, nil
}

// ListTransactionLogs retrieves a page of log entries, newest first, using token-based pagination.
func (r *PgxTransactionLogRepository) ListTransactionLogs(ctx context.Context, limit int, nextToken *string) ([]domain.TransactionLog, *string, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionLogColumns + ` FROM transaction_logs`
	orderByClause := `ORDER BY created_at DESC, log_id DESC`

	var args []any
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` WHERE (created_at, log_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transaction logs", err)
	}
	defer rows.Close()

	modelLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TransactionLog, error) {
		return scanTransactionLog(row)
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transaction logs", err)
	}

	var nextTokenVal *string
	results := modelLogs
	if len(modelLogs) > limit {
		last := modelLogs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.LogID)
		nextTokenVal = &token
		results = modelLogs[:limit]
	}

	return mapping.ToDomainTransactionLogSlice(results), nextTokenVal, nil
}
