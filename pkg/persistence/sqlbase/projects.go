package sqlbase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/schema"
)

// ProjectRepository stores project documents in the projects table created by the backend migrations.
type ProjectRepository struct {
	db      *sql.DB
	logger  *slog.Logger
	dialect Dialect
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB, logger *slog.Logger, dialect Dialect) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger, dialect: dialect}
}

// Projects returns every live project, most recently created first.
func (r *ProjectRepository) Projects(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT
			id
		  , document
		FROM projects
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	projects := make([]*models.Project, 0)

	for rows.Next() {
		var (
			id       string
			document []byte
		)

		if err := rows.Scan(&id, &document); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		project, err := schema.Decode(document)
		if err != nil {
			return nil, persistence.NewProjectError("Projects", id, err)
		}

		projects = append(projects, project)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// ProjectByID returns the live project with the given ID.
func (r *ProjectRepository) ProjectByID(ctx context.Context, id string) (*models.Project, error) {
	query := r.dialect.Rebind(`SELECT document FROM projects WHERE id = ? AND deleted_at IS NULL`)

	var document []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewProjectError("ProjectByID", id, persistence.ErrProjectNotFound)
		}

		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}

	project, err := schema.Decode(document)
	if err != nil {
		return nil, persistence.NewProjectError("ProjectByID", id, err)
	}

	return project, nil
}

// SaveProject inserts or replaces the project document. Saving a deleted project restores it.
func (r *ProjectRepository) SaveProject(ctx context.Context, project *models.Project) error {
	if err := persistence.Stamp(project); err != nil {
		return err
	}

	document, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}

	query := r.dialect.Rebind(`
		INSERT INTO projects (id, label, document, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)
		ON CONFLICT (id) DO UPDATE SET
			label = excluded.label,
			document = excluded.document,
			updated_at = excluded.updated_at,
			deleted_at = NULL
	`)

	_, err = r.db.ExecContext(ctx, query,
		project.ID,
		project.Configuration.Label,
		string(document),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", project.ID, err)
	}

	return nil
}

// DeleteProject soft deletes a project by setting deleted_at timestamp.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	query := r.dialect.Rebind(`UPDATE projects SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`)

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.NewProjectError("DeleteProject", id, persistence.ErrProjectNotFound)
	}

	return nil
}
