// Package persistence provides the storage abstraction for Code Easy projects.
package persistence

import (
	"context"

	"github.com/dukex/codeeasy/pkg/models"
)

// Persistence stores whole project documents. Diagnostics are never stored.
type Persistence interface {
	Projects(ctx context.Context) ([]*models.Project, error)
	ProjectByID(ctx context.Context, id string) (*models.Project, error)
	SaveProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
