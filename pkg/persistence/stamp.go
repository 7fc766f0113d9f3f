package persistence

import (
	"fmt"
	"time"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/google/uuid"
)

// Stamp prepares a project for storage: it assigns an ID to new projects,
// sets CreatedAt once and refreshes UpdatedAt.
func Stamp(project *models.Project) error {
	if project.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate project ID: %w", err)
		}

		project.ID = id.String()
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}

	project.UpdatedAt = now

	return nil
}
