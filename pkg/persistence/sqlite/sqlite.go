// Package sqlite provides SQLite persistence for projects, for single user and embedded deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/codeeasy/pkg/persistence/sqlbase"
	_ "github.com/mattn/go-sqlite3"
)

// Persistence implements the persistence layer for SQLite.
type Persistence struct {
	*sqlbase.ProjectRepository

	db     *sql.DB
	logger *slog.Logger
}

// NewPersistence opens the database at databaseURL (sqlite://path or a plain path, ":memory:" allowed).
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	dsn := strings.TrimPrefix(databaseURL, "sqlite://")

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// A single connection keeps in-memory databases alive and serializes writers.
	database.SetMaxOpenConns(1)

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, sqlbase.SQLite, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		ProjectRepository: sqlbase.NewProjectRepository(database, logger, sqlbase.SQLite),
		db:                database,
		logger:            logger,
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE projects (
				id TEXT PRIMARY KEY,
				label TEXT NOT NULL,
				document TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL,
				deleted_at TIMESTAMP
			);

			CREATE INDEX idx_projects_created_at ON projects(created_at);
			CREATE INDEX idx_projects_deleted_at ON projects(deleted_at);
		`,
	}
}
