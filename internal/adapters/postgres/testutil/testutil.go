// Package testutil opens a Postgres pool for adapter contract tests.
// Tests are skipped unless TEST_DATABASE_URL points at a disposable database.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id  text PRIMARY KEY,
    doc jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS logins (
    id       text PRIMARY KEY,
    password text NOT NULL
);
CREATE TABLE IF NOT EXISTS trips (
    id       text PRIMARY KEY,
    revision bigint NOT NULL DEFAULT 1,
    doc      jsonb NOT NULL
);
`

// OpenMigratedPool connects to TEST_DATABASE_URL, applies the schema and
// truncates all tables so each test starts clean.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{ConnectTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE users, logins, trips`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
