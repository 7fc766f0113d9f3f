// Package services implements the project use cases on top of the mutation engine, the store and the event bus.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/eventbus"
	"github.com/dukex/codeeasy/pkg/events"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/otelhelper"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/project"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Project exposes project operations. Every mutation goes through the engine,
// stores the resulting snapshot and publishes a project event.
type Project struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	engine      *project.Engine
	tracer      trace.Tracer
	logger      *slog.Logger
	validate    *validator.Validate
}

// NewProject creates a new project service. publisher may be nil when no event bus is configured.
func NewProject(
	logger *slog.Logger,
	persistence persistence.Persistence,
	publisher eventbus.EventPublisher,
	tracer trace.Tracer,
	provider defaults.Provider,
) *Project {
	if tracer == nil {
		tracer = otelhelper.NoopTracer("codeeasy")
	}

	return &Project{
		persistence: persistence,
		publisher:   publisher,
		engine:      project.NewEngine(provider),
		tracer:      tracer,
		logger:      logger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Result is a project snapshot together with its diagnostics.
type Result struct {
	Project  *models.Project
	Problems []models.Diagnostic
}

// CreateProjectRequest holds the settings of a new project.
type CreateProjectRequest struct {
	Label       string
	Description string
	Type        string
}

// HealthCheck checks the health of the persistence layer.
func (s *Project) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every stored project.
func (s *Project) List(ctx context.Context) ([]*models.Project, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "project.list")
	defer span.End()

	projects, err := s.persistence.Projects(ctx)
	if err != nil {
		otelhelper.SetError(span, "list", err)

		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Fetch loads a project and synchronizes it. The synchronized snapshot is not stored.
func (s *Project) Fetch(ctx context.Context, id string) (*Result, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "project.fetch", attribute.String(otelhelper.ProjectIDKey, id))
	defer span.End()

	stored, err := s.persistence.ProjectByID(ctx, id)
	if err != nil {
		otelhelper.SetError(span, "load", err)

		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	snapshot, problems := s.engine.SetProject(stored)

	return &Result{Project: snapshot, Problems: problems}, nil
}

// UnitResult is a unit of a synchronized project together with the problems it raised.
type UnitResult struct {
	Project  *models.Project
	Unit     *models.TreeItem
	Problems []models.Diagnostic
}

// Unit returns a unit of a stored project. An empty tabType searches every tab.
func (s *Project) Unit(ctx context.Context, id, unitID string, tabType models.TabType) (*UnitResult, error) {
	result, err := s.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	unit, err := project.UnitByID(result.Project, unitID, tabType)
	if err != nil {
		return nil, err
	}

	return &UnitResult{
		Project:  result.Project,
		Unit:     unit,
		Problems: project.UnitProblems(result.Project, unit.ID, result.Problems),
	}, nil
}

// Windows returns the opened editor windows of a stored project.
func (s *Project) Windows(ctx context.Context, id string) ([]models.OpenedWindow, error) {
	result, err := s.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	return project.OpenedWindows(result.Project), nil
}

// Create scaffolds a project with empty actions, routes and dates tabs and stores it.
func (s *Project) Create(ctx context.Context, req CreateProjectRequest) (*Result, error) {
	configuration := models.Configuration{
		Label:       req.Label,
		Description: req.Description,
		Type:        req.Type,
		Version:     "1.0.0",
	}

	if err := s.validate.Struct(configuration); err != nil {
		return nil, NewValidationError("Create", "INVALID_CONFIGURATION", err.Error(), ErrInvalidRequest)
	}

	scaffold := &models.Project{
		Configuration: configuration,
		CurrentFocus:  models.FocusTree,
		Tabs: []*models.Tab{
			newTab(models.TabTypeActions, "Actions", "Actions of the project"),
			newTab(models.TabTypeRoutes, "Routes", "Routes exposed and consumed by the project"),
			newTab(models.TabTypeDates, "Data", "Data structures of the project"),
		},
		Windows: []*models.Window{},
	}

	return s.apply(ctx, "project.create", scaffold)
}

func newTab(tabType models.TabType, label, description string) *models.Tab {
	return &models.Tab{
		ID:          uuid.NewString(),
		Type:        tabType,
		Label:       label,
		Description: description,
		IsExpanded:  true,
		Items:       []*models.TreeItem{},
	}
}

// Update replaces the stored project with the synchronized version of p.
func (s *Project) Update(ctx context.Context, id string, p *models.Project) (*Result, error) {
	if p == nil {
		return nil, ErrProjectNil
	}

	stored, err := s.persistence.ProjectByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	candidate := p.Clone()
	candidate.ID = stored.ID
	candidate.CreatedAt = stored.CreatedAt

	return s.apply(ctx, "project.update", candidate)
}

// SelectWindow brings the window of a unit to front and stores the project.
func (s *Project) SelectWindow(ctx context.Context, id, windowID string) (*Result, error) {
	return s.mutate(ctx, "project.select_window", id, windowID, project.SelectWindowByID)
}

// RemoveWindow closes the window of a unit and stores the project.
func (s *Project) RemoveWindow(ctx context.Context, id, windowID string) (*Result, error) {
	return s.mutate(ctx, "project.remove_window", id, windowID, project.RemoveWindowByID)
}

func (s *Project) mutate(
	ctx context.Context,
	operation, id, windowID string,
	change func(*models.Project, string) (*models.Project, error),
) (*Result, error) {
	loadCtx, span := otelhelper.StartSpan(ctx, s.tracer, "project.load",
		attribute.String(otelhelper.ProjectIDKey, id),
		attribute.String(otelhelper.WindowIDKey, windowID),
	)

	stored, err := s.persistence.ProjectByID(loadCtx, id)
	if err != nil {
		otelhelper.SetError(span, "load", err)
		span.End()

		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	span.End()

	changed, err := change(stored, windowID)
	if err != nil {
		s.logger.DebugContext(ctx, "Window operation rejected", "project_id", id, "window_id", windowID, "error", err)

		return nil, err
	}

	return s.apply(ctx, operation, changed)
}

// Delete removes a stored project.
func (s *Project) Delete(ctx context.Context, id string) error {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "project.delete", attribute.String(otelhelper.ProjectIDKey, id))
	defer span.End()

	if err := s.persistence.DeleteProject(ctx, id); err != nil {
		otelhelper.SetError(span, "delete", err)

		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.publish(ctx, id, events.NewProjectDeleted(id))

	return nil
}

// Import synchronizes and stores a decoded project document, keeping its ID when present.
func (s *Project) Import(ctx context.Context, p *models.Project) (*Result, error) {
	if p == nil {
		return nil, ErrProjectNil
	}

	return s.apply(ctx, "project.import", p)
}

func (s *Project) apply(ctx context.Context, operation string, candidate *models.Project) (*Result, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, operation, attribute.String(otelhelper.ProjectIDKey, candidate.ID))
	defer span.End()

	snapshot, problems := s.engine.SetProject(candidate)

	if err := s.persistence.SaveProject(ctx, snapshot); err != nil {
		otelhelper.SetError(span, "save", err)

		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	errorCount, warningCount := models.CountBySeverity(problems)

	span.SetAttributes(
		attribute.String(otelhelper.ProjectIDKey, snapshot.ID),
		attribute.String(otelhelper.ProjectLabelKey, snapshot.Configuration.Label),
		attribute.Int(otelhelper.ErrorCountKey, errorCount),
		attribute.Int(otelhelper.WarningCountKey, warningCount),
	)

	s.logger.InfoContext(ctx, "Project saved",
		"operation", operation,
		"project_id", snapshot.ID,
		"errors", errorCount,
		"warnings", warningCount,
	)

	s.publish(ctx, snapshot.ID, events.NewProjectSaved(snapshot.ID, snapshot.Configuration.Label, errorCount, warningCount))

	return &Result{Project: snapshot, Problems: problems}, nil
}

// publish never fails the operation: the snapshot is already stored.
func (s *Project) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish project event", "project_id", key, "event_type", event.GetType(), "error", err)
	}
}
