package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, shipping_address, status, payment_method, total_price, total_cost, user_id, restaurant_id, transaction_id, COALESCE(order_code, 0), date_ordered`

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, shipping_address, status, payment_method, total_price, total_cost,
		                    user_id, restaurant_id, transaction_id, date_ordered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.ShippingAddress, order.Status, order.PaymentMethod,
		order.TotalPrice, order.TotalCost, order.UserID, order.RestaurantID,
		order.TransactionID, order.DateOrdered,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, quantity, excluded, drink, attribute_ids, product_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.Quantity, item.Excluded, item.Drink, item.AttributeIDs, item.ProductID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.ShippingAddress, &order.Status, &order.PaymentMethod,
		&order.TotalPrice, &order.TotalCost, &order.UserID, &order.RestaurantID,
		&order.TransactionID, &order.OrderCode, &order.DateOrdered,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return &order, items, nil
}

// GetItems retrieves the items of one order.
func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, quantity, excluded, drink, attribute_ids, product_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.Quantity, &item.Excluded, &item.Drink, &item.AttributeIDs, &item.ProductID)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// List retrieves orders, optionally filtered by status, newest first.
func (r *orderRepository) List(ctx context.Context, status string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY date_ordered DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("status", status).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListByUser retrieves a user's orders, optionally filtered by status.
func (r *orderRepository) ListByUser(ctx context.Context, userID, status string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY date_ordered DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// UpdateStatus sets the status of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	query := `
		UPDATE orders SET status = $2 WHERE id = $1
		RETURNING ` + orderColumns

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id, status).Scan(
		&order.ID, &order.ShippingAddress, &order.Status, &order.PaymentMethod,
		&order.TotalPrice, &order.TotalCost, &order.UserID, &order.RestaurantID,
		&order.TransactionID, &order.OrderCode, &order.DateOrdered,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// SetOrderCode attaches the payment-gateway order code to an order.
func (r *orderRepository) SetOrderCode(ctx context.Context, id uuid.UUID, orderCode int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET order_code = $2 WHERE id = $1`, id, orderCode)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to set order code")
		return fmt.Errorf("failed to set order code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// GetByOrderCode retrieves the order carrying a payment order code.
func (r *orderRepository) GetByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, orderCode).Scan(
		&order.ID, &order.ShippingAddress, &order.Status, &order.PaymentMethod,
		&order.TotalPrice, &order.TotalCost, &order.UserID, &order.RestaurantID,
		&order.TransactionID, &order.OrderCode, &order.DateOrdered,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_code", orderCode).Msg("failed to query order by code")
		return nil, fmt.Errorf("failed to query order by code: %w", err)
	}

	return &order, nil
}

// Delete removes an order and its items.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order items")
		return false, fmt.Errorf("failed to delete order items: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit order delete: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// SalesReport aggregates Success orders into day/week/month buckets.
func (r *orderRepository) SalesReport(ctx context.Context, groupBy string) ([]model.SalesBucket, error) {
	var periodExpr, orderExpr string
	switch groupBy {
	case "day":
		periodExpr = `to_char(date_ordered, 'YYYY-MM-DD')`
		orderExpr = `period DESC`
	case "week":
		periodExpr = `to_char(date_ordered, 'IYYY-"W"IW')`
		orderExpr = `period ASC`
	case "month":
		periodExpr = `to_char(date_ordered, 'YYYY-MM')`
		orderExpr = `period ASC`
	default:
		return nil, model.NewDomainError(model.ErrCodeValidation, "Invalid type parameter. Use 'day', 'week', or 'month'.")
	}

	query := fmt.Sprintf(`
		SELECT %s AS period,
		       COALESCE(SUM(total_price), 0),
		       COALESCE(SUM(total_cost), 0),
		       COALESCE(SUM(total_price - total_cost), 0)
		FROM orders
		WHERE status = $1
		GROUP BY period
		ORDER BY %s
	`, periodExpr, orderExpr)

	rows, err := r.pool.Query(ctx, query, model.OrderStatusSuccess)
	if err != nil {
		r.logger.Error().Err(err).Str("group_by", groupBy).Msg("failed to query sales report")
		return nil, fmt.Errorf("failed to query sales report: %w", err)
	}
	defer rows.Close()

	var buckets []model.SalesBucket
	for rows.Next() {
		var b model.SalesBucket
		if err := rows.Scan(&b.Period, &b.TotalSales, &b.TotalCost, &b.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan sales bucket: %w", err)
		}
		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales buckets: %w", err)
	}

	return buckets, nil
}

// ProfitByIDs computes per-order profit for the given ids; an empty id list
// means all orders.
func (r *orderRepository) ProfitByIDs(ctx context.Context, ids []uuid.UUID) ([]model.OrderProfit, error) {
	query := `SELECT id, total_price, total_cost, total_price - total_cost FROM orders`
	args := []interface{}{}

	if len(ids) > 0 {
		idStrs := make([]string, len(ids))
		for i, id := range ids {
			idStrs[i] = id.String()
		}
		query += ` WHERE id = ANY($1::uuid[])`
		args = append(args, idStrs)
	}
	query += ` ORDER BY date_ordered DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order profits")
		return nil, fmt.Errorf("failed to query order profits: %w", err)
	}
	defer rows.Close()

	var profits []model.OrderProfit
	for rows.Next() {
		var p model.OrderProfit
		if err := rows.Scan(&p.OrderID, &p.TotalPrice, &p.TotalCost, &p.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan order profit: %w", err)
		}
		profits = append(profits, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order profits: %w", err)
	}

	return profits, nil
}

// scanOrders collects order rows.
func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID, &order.ShippingAddress, &order.Status, &order.PaymentMethod,
			&order.TotalPrice, &order.TotalCost, &order.UserID, &order.RestaurantID,
			&order.TransactionID, &order.OrderCode, &order.DateOrdered,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
