//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pantry-api/internal/config"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection and migration work done by Setup.
const TestTimeout = 30 * time.Second

// Setup opens a migrated test database. The pool is closed when the test ends.
func Setup(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		if isCIEnvironment() {
			t.Fatalf("no database URL set in CI; set %s", EnvDatabaseURL)
		}
		t.Skipf("%s not set; skipping database test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	l, _ := logger.NewTestLogger()
	db, err := postgres.Open(ctx, config.DatabaseConfig{
		URL:             url,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}, l)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, l), "failed to apply migrations")
	return db
}

// Collection returns a collection name unique to this test. Its documents are
// deleted when the test ends.
func Collection(t *testing.T, db *sql.DB) string {
	t.Helper()

	name := "test_" + uuid.NewString()
	t.Cleanup(func() {
		if _, err := db.ExecContext(context.Background(),
			"DELETE FROM documents WHERE collection = $1", name); err != nil {
			t.Logf("failed to clean up collection %s: %v", name, err)
		}
	})
	return name
}
