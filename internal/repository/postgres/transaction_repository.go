package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
)

// TransactionRepository implements transaction.Repository using PostgreSQL.
// The UNIQUE constraint on unique_ref is what makes replayed processor
// responses harmless across instances.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Create inserts a settled transaction record.
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO nuvei_transactions (order_id, unique_ref, payload, settled_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		tx.OrderID, tx.UniqueRef, tx.Payload, tx.SettledAt, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDuplicateTransaction
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByOrderID lists all settled transactions for an order, oldest first.
func (r *TransactionRepository) GetByOrderID(ctx context.Context, orderID int64) ([]*transaction.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, unique_ref, payload, settled_at, created_at
		 FROM nuvei_transactions WHERE order_id = $1 ORDER BY created_at ASC`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetByUniqueRef retrieves the transaction holding a processor reference.
func (r *TransactionRepository) GetByUniqueRef(ctx context.Context, uniqueRef string) (*transaction.Transaction, error) {
	return r.scanTransaction(r.pool.QueryRow(ctx,
		`SELECT id, order_id, unique_ref, payload, settled_at, created_at
		 FROM nuvei_transactions WHERE unique_ref = $1`, uniqueRef))
}

func (r *TransactionRepository) scanTransaction(s scanner) (*transaction.Transaction, error) {
	tx := &transaction.Transaction{}
	err := s.Scan(&tx.ID, &tx.OrderID, &tx.UniqueRef, &tx.Payload, &tx.SettledAt, &tx.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return tx, nil
}
