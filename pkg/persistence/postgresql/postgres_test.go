package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/persistence/persistencetest"
	"github.com/dukex/codeeasy/pkg/persistence/postgresql"
	"github.com/dukex/codeeasy/pkg/testutil"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"projects", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context, string) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("codeeasy_test"),
			postgres.WithUsername("codeeasy"),
			postgres.WithPassword("codeeasy"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = store.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return store, ctx, databaseURL
}

func TestNewPersistence_Migrations(t *testing.T) {
	_, ctx, databaseURL := setupTestDB(t)

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer db.Close()

	var version int
	err = db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	var exists bool
	err = db.QueryRowContext(ctx, "SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'projects')").Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPersistence(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.Persistence {
		t.Helper()

		store, _, _ := setupTestDB(t)

		return store
	})
}

func TestPersistence_SoftDelete(t *testing.T) {
	store, ctx, databaseURL := setupTestDB(t)
	project := testutil.CreateTestProject()

	require.NoError(t, store.SaveProject(ctx, project))
	require.NoError(t, store.DeleteProject(ctx, project.ID))

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer db.Close()

	var deleted bool
	err = db.QueryRowContext(ctx, "SELECT deleted_at IS NOT NULL FROM projects WHERE id = $1", project.ID).Scan(&deleted)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, store.SaveProject(ctx, project))

	restored, err := store.ProjectByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, restored.ID)
}
