package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
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

	// Create schema
	createSchema(t, pool)

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

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			icon VARCHAR(100),
			color VARCHAR(50)
		);

		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			image VARCHAR(500),
			category_id VARCHAR(50) REFERENCES categories(id),
			price DECIMAL(12, 2),
			cost DECIMAL(12, 2),
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS attributes (
			id VARCHAR(50) PRIMARY KEY,
			size VARCHAR(50) NOT NULL,
			price DECIMAL(12, 2),
			cost DECIMAL(12, 2),
			product_id VARCHAR(50) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			image VARCHAR(500),
			address VARCHAR(500),
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			cart JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			shipping_address VARCHAR(500),
			status VARCHAR(50) NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			total_price DECIMAL(12, 2) NOT NULL,
			total_cost DECIMAL(12, 2) NOT NULL,
			user_id VARCHAR(50) NOT NULL REFERENCES users(id),
			restaurant_id VARCHAR(50) NOT NULL REFERENCES restaurants(id),
			transaction_id VARCHAR(50) NOT NULL,
			order_code BIGINT,
			date_ordered TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS orders_transaction_id_idx ON orders (transaction_id);
		CREATE UNIQUE INDEX IF NOT EXISTS orders_order_code_idx ON orders (order_code) WHERE order_code IS NOT NULL;

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL,
			excluded TEXT[],
			drink VARCHAR(100),
			attribute_ids TEXT[],
			product_id VARCHAR(50)
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(50) PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			order_code BIGINT NOT NULL,
			reference VARCHAR(255),
			account_number VARCHAR(100),
			amount DECIMAL(12, 2) NOT NULL,
			counter_account_bank_id VARCHAR(100),
			counter_account_name VARCHAR(255),
			counter_account_number VARCHAR(100),
			description TEXT,
			transaction_datetime TIMESTAMPTZ NOT NULL
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB removes all data from the test database tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"transactions", "order_items", "orders", "attributes", "products", "categories", "restaurants", "users"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("failed to clean up table %s: %v", table, err)
		}
	}
}

// SeedCatalog inserts a minimal catalogue for order tests: one category,
// one product with two size variants, one restaurant and one customer.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	statements := []struct {
		sql  string
		args []interface{}
	}{
		{`INSERT INTO categories (id, name) VALUES ($1, $2)`,
			[]interface{}{"cat-1", "Pizza"}},
		{`INSERT INTO products (id, name, category_id, price, cost) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"prod-1", "Margherita", "cat-1", 5.0, 2.0}},
		{`INSERT INTO attributes (id, size, price, cost, product_id) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"attr-1", "L", 5.0, 3.0, "prod-1"}},
		{`INSERT INTO attributes (id, size, price, cost, product_id) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"attr-2", "S", 2.0, 1.0, "prod-1"}},
		{`INSERT INTO restaurants (id, name, latitude, longitude) VALUES ($1, $2, $3, $4)`,
			[]interface{}{"rest-1", "District 1 Branch", 10.7747, 106.7020}},
		{`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
			[]interface{}{"user-1", "Jane", "jane@example.com", "x"}},
	}

	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			t.Fatalf("failed to seed catalogue: %v", err)
		}
	}
}
