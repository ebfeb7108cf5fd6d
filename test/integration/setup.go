package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hinglaj-store/internal/database"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema, same path the server takes at startup
	if err := database.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedItems inserts test catalogue data into the database.
func SeedItems(t *testing.T, pool *pgxpool.Pool) []model.Item {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewItemRepository(pool, zerolog.Nop())

	items := []model.Item{
		{
			Name:         "Rasgulla",
			Category:     "sweets",
			BaseQuantity: 10,
			QuantityUnit: model.UnitKg,
			Variants: []model.Variant{
				{Size: "500g", Price: 150, Available: true},
				{Size: "1kg", Price: 280, Available: true},
			},
		},
		{
			Name:         "Kaju Katli",
			Category:     "sweets",
			BaseQuantity: 5,
			QuantityUnit: model.UnitKg,
			Variants: []model.Variant{
				{Size: "250g", Price: 220, Available: true},
				{Size: "500g", Price: 420, Available: false},
			},
		},
		{
			Name:         "Samosa",
			Category:     "snacks",
			BaseQuantity: 100,
			QuantityUnit: model.UnitPcs,
			Variants: []model.Variant{
				{Size: "1pc", Price: 15, Available: true},
			},
		},
	}

	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			t.Fatalf("failed to seed item %s: %v", items[i].Name, err)
		}
	}

	return items
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "users", "items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
