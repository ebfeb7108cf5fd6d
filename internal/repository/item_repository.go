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

// itemRepository implements the ItemRepository interface using PostgreSQL.
type itemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) ItemRepository {
	return &itemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "item").Logger(),
	}
}

const itemColumns = `id, name, COALESCE(description, ''), COALESCE(category, ''),
	base_quantity, quantity_unit, variants, COALESCE(photo_url, ''), created_at, updated_at`

// scanItem scans one item row, decoding the variants JSONB document.
func scanItem(row pgx.Row) (*model.Item, error) {
	var item model.Item
	var variants []byte
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.BaseQuantity,
		&item.QuantityUnit,
		&variants,
		&item.PhotoURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(variants, &item.Variants); err != nil {
		return nil, fmt.Errorf("failed to decode variants: %w", err)
	}
	return &item, nil
}

// List retrieves items, newest first, optionally filtered by category.
func (r *itemRepository) List(ctx context.Context, category string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}
	if category != "" && category != "all" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating item rows")
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Categories retrieves the distinct non-empty categories.
func (r *itemRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM items
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single item by its ID.
func (r *itemRepository) GetByID(ctx context.Context, id int) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}

// GetByIDTx retrieves a single item within the provided transaction.
func (r *itemRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int("item_id", id).Msg("failed to query item in transaction")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}

// Create inserts a new item and fills its generated ID and timestamps.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	variants, err := json.Marshal(item.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	query := `
		INSERT INTO items (name, description, category, base_quantity, quantity_unit, variants, photo_url)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Category,
		item.BaseQuantity,
		item.QuantityUnit,
		variants,
		item.PhotoURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Debug().Int("item_id", item.ID).Msg("item created successfully")

	return nil
}

// Update persists the writable fields of an existing item.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	variants, err := json.Marshal(item.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	query := `
		UPDATE items
		SET name = $2,
		    description = NULLIF($3, ''),
		    category = NULLIF($4, ''),
		    base_quantity = $5,
		    quantity_unit = $6,
		    variants = $7,
		    photo_url = NULLIF($8, ''),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.BaseQuantity,
		item.QuantityUnit,
		variants,
		item.PhotoURL,
	).Scan(&item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int("item_id", item.ID).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// Delete removes an item by ID.
func (r *itemRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
