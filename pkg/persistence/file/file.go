// Package file provides file-based persistence for projects: one JSON document per project.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/schema"
)

const projectsDir = "projects"

// Persistence implements the persistence.Persistence interface using the file system.
type Persistence struct {
	root string
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) persistence.Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Projects returns every stored project, most recently created first.
func (fp *Persistence) Projects(ctx context.Context) ([]*models.Project, error) {
	jsonFiles, err := fs.Glob(os.DirFS(fp.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list project files: %w", err)
	}

	projects := make([]*models.Project, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		project, err := fp.ProjectByID(ctx, strings.TrimSuffix(file, ".json"))
		if err != nil {
			return nil, err
		}

		projects = append(projects, project)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

// ProjectByID reads and decodes the document of the given project.
func (fp *Persistence) ProjectByID(_ context.Context, id string) (*models.Project, error) {
	body, err := os.ReadFile(fp.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persistence.NewProjectError("ProjectByID", id, persistence.ErrProjectNotFound)
		}

		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}

	project, err := schema.Decode(body)
	if err != nil {
		return nil, persistence.NewProjectError("ProjectByID", id, err)
	}

	return project, nil
}

// SaveProject writes the project document, replacing any previous version.
func (fp *Persistence) SaveProject(_ context.Context, project *models.Project) error {
	err := os.MkdirAll(fp.dir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create projects directory: %w", err)
	}

	if err := persistence.Stamp(project); err != nil {
		return err
	}

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}

	// Write then rename so readers never observe a truncated document.
	tmp := fp.path(project.ID) + ".tmp"

	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write project %s: %w", project.ID, err)
	}

	if err := os.Rename(tmp, fp.path(project.ID)); err != nil {
		return fmt.Errorf("failed to write project %s: %w", project.ID, err)
	}

	return nil
}

// DeleteProject removes the project document.
func (fp *Persistence) DeleteProject(_ context.Context, id string) error {
	err := os.Remove(fp.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return persistence.NewProjectError("DeleteProject", id, persistence.ErrProjectNotFound)
		}

		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}

	return nil
}

func (fp *Persistence) dir() string {
	return path.Join(fp.root, projectsDir)
}

func (fp *Persistence) path(id string) string {
	return filepath.Clean(path.Join(fp.dir(), filepath.Base(id)+".json"))
}
