package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full table layout. Variants, order line items and customer
// details are stored as JSONB documents; order line items reference catalogue
// rows weakly (display only), so no foreign keys are declared on them.
const Schema = `
	CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT,
		base_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		quantity_unit TEXT NOT NULL DEFAULT 'kg',
		variants JSONB NOT NULL DEFAULT '[]',
		photo_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER,
		order_number TEXT UNIQUE,
		status TEXT NOT NULL DEFAULT 'pending',
		customer_name TEXT NOT NULL,
		customer_details JSONB NOT NULL DEFAULT '{}',
		items JSONB NOT NULL DEFAULT '[]',
		total NUMERIC(10, 2) NOT NULL DEFAULT 0,
		payment_method TEXT NOT NULL DEFAULT 'cash',
		order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_customer_name ON orders (customer_name);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
	CREATE INDEX IF NOT EXISTS idx_items_category ON items (category);
`

// CreateSchema applies the schema to the database. It is idempotent and runs
// at server startup.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
