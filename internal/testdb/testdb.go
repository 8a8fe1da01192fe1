//go:build integration

// Package testdb provides a migrated PostgreSQL database for integration
// tests. Tests using it run only with the integration build tag and are
// skipped when PAGAMENTOS_TEST_DB_URL is not set.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/pagamentos-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// EnvTestDatabaseURL names the variable holding the test database URL.
const EnvTestDatabaseURL = "PAGAMENTOS_TEST_DB_URL"

// TestTimeout bounds connection and migration setup.
const TestTimeout = 30 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// DatabaseURL returns the configured test database URL or "".
func DatabaseURL() string {
	return os.Getenv(EnvTestDatabaseURL)
}

// Open connects to the test database, applying the embedded migrations the
// first time it is called in a test binary. The pool is closed when the test
// finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set; skipping integration test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	migrateOnce.Do(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		migrator, err := postgres.NewMigrator(db, logger)
		if err != nil {
			migrateErr = err
			return
		}
		migrateErr = migrator.Up(ctx)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind and can run in parallel.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
