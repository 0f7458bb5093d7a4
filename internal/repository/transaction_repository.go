package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type transactionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTransactionRepository creates a new PostgreSQL-backed transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool, logger zerolog.Logger) TransactionRepository {
	return &transactionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "transaction").Logger(),
	}
}

// Create inserts a transaction record.
func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, order_id, order_code, reference, account_number, amount,
		                          counter_account_bank_id, counter_account_name, counter_account_number,
		                          description, transaction_datetime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.OrderID, t.OrderCode, t.Reference, t.AccountNumber, t.Amount,
		t.CounterAccountBankID, t.CounterAccountName, t.CounterAccountNumber,
		t.Description, t.TransactionDateTime,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", t.ID).Msg("failed to create transaction")
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListByOrder retrieves the transactions attached to an order.
func (r *transactionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Transaction, error) {
	query := `
		SELECT id, order_id, order_code, reference, account_number, amount,
		       counter_account_bank_id, counter_account_name, counter_account_number,
		       description, transaction_datetime
		FROM transactions
		WHERE order_id = $1
		ORDER BY transaction_datetime
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(&t.ID, &t.OrderID, &t.OrderCode, &t.Reference, &t.AccountNumber, &t.Amount,
			&t.CounterAccountBankID, &t.CounterAccountName, &t.CounterAccountNumber,
			&t.Description, &t.TransactionDateTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}
