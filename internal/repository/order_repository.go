package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hinglaj-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
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

const orderColumns = `id, user_id, order_number, status, customer_name,
	customer_details, items, total, payment_method, order_date, created_at, updated_at`

// sortColumns maps the API sort keys to actual columns. Unknown keys fall
// back to createdAt upstream.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"orderNumber":  "order_number",
	"status":       "status",
	"customerName": "customer_name",
	"total":        "total",
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var details, items []byte
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderNumber,
		&o.Status,
		&o.CustomerName,
		&details,
		&items,
		&o.Total,
		&o.PaymentMethod,
		&o.OrderDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &o.CustomerDetails); err != nil {
		return nil, fmt.Errorf("failed to decode customer details: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return &o, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	details, err := json.Marshal(order.CustomerDetails)
	if err != nil {
		return fmt.Errorf("failed to encode customer details: %w", err)
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (user_id, order_number, status, customer_name,
			customer_details, items, total, payment_method, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		order.UserID,
		order.OrderNumber,
		order.Status,
		order.CustomerName,
		details,
		items,
		order.Total,
		order.PaymentMethod,
		order.OrderDate,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id int) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

// ListByCustomerName retrieves orders whose snapshot customer name matches
// exactly, newest first. The match is case-sensitive.
func (r *orderRepository) ListByCustomerName(ctx context.Context, name string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_name = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, name)
}

// List retrieves orders matching the normalised filter, sort and pagination
// parameters. Callers must pass params through service-level normalisation;
// the sort key is mapped through an allow-list here as a second guard.
func (r *orderRepository) List(ctx context.Context, params model.OrderListParams) ([]model.Order, int, error) {
	where := ""
	args := []any{}

	if params.Status != "" && params.Status != "all" {
		args = append(args, params.Status)
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		clause := fmt.Sprintf("(order_number ILIKE $%d OR customer_name ILIKE $%d)", len(args), len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	column, ok := sortColumns[params.Sort]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if params.Dir == "asc" {
		dir = "ASC"
	}

	offset := (params.Page - 1) * params.Limit
	args = append(args, params.Limit, offset)
	query := fmt.Sprintf(
		`SELECT `+orderColumns+` FROM orders`+where+` ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		column, dir, len(args)-1, len(args),
	)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus sets the status of an order and returns the updated row.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

// Delete removes an order by ID.
func (r *orderRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("order_id", id).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountByCustomerName counts orders whose snapshot customer name matches
// exactly.
func (r *orderRepository) CountByCustomerName(ctx context.Context, name string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE customer_name = $1`, name).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders by customer name")
		return 0, fmt.Errorf("failed to count orders by customer name: %w", err)
	}
	return count, nil
}

// DeleteByCustomerName removes all orders whose snapshot customer name
// matches exactly.
func (r *orderRepository) DeleteByCustomerName(ctx context.Context, name string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE customer_name = $1`, name)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete orders by customer name")
		return 0, fmt.Errorf("failed to delete orders by customer name: %w", err)
	}
	return tag.RowsAffected(), nil
}
