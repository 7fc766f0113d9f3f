package testutil

import (
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/google/uuid"
)

// CreateTestUnit creates a local action unit holding a connected START -> END graph.
func CreateTestUnit(overrides ...func(*models.TreeItem)) *models.TreeItem {
	endID := uuid.New().String()

	unit := &models.TreeItem{
		ID:         uuid.New().String(),
		Type:       models.ComponentTypeLocalAction,
		Label:      "Create user",
		Name:       "Createuser",
		Properties: []*models.Property{},
		Items: []*models.FlowItem{
			CreateTestFlowItem(WithName("begin"), WithConnections(endID)),
			CreateTestFlowItem(WithID(endID), WithType(models.ItemTypeEnd), WithName("finish"), WithoutConnections()),
		},
	}

	for _, override := range overrides {
		override(unit)
	}

	return unit
}

// WithUnitType sets the unit category.
func WithUnitType(componentType models.ComponentType) func(*models.TreeItem) {
	return func(u *models.TreeItem) {
		u.Type = componentType
	}
}

// WithUnitID sets the unit ID.
func WithUnitID(id string) func(*models.TreeItem) {
	return func(u *models.TreeItem) {
		u.ID = id
	}
}

// WithLabel sets the unit label.
func WithLabel(label string) func(*models.TreeItem) {
	return func(u *models.TreeItem) {
		u.Label = label
	}
}

// WithItems replaces the flow graph of the unit.
func WithItems(items ...*models.FlowItem) func(*models.TreeItem) {
	return func(u *models.TreeItem) {
		u.Items = items
	}
}

// Editing marks the unit as open in the editor.
func Editing() func(*models.TreeItem) {
	return func(u *models.TreeItem) {
		u.IsEditing = true
	}
}

// CreateTestProject creates a project with an actions tab and a routes tab holding one route.
func CreateTestProject(overrides ...func(*models.Project)) *models.Project {
	project := &models.Project{
		ID: uuid.New().String(),
		Configuration: models.Configuration{
			Label:   "Sample project",
			Type:    "api",
			Version: "1.0.0",
		},
		CurrentFocus: models.FocusTree,
		Tabs: []*models.Tab{
			{ID: uuid.New().String(), Type: models.TabTypeActions, Label: "Actions", Items: []*models.TreeItem{CreateTestUnit()}},
			{
				ID:    uuid.New().String(),
				Type:  models.TabTypeRoutes,
				Label: "Routes",
				Items: []*models.TreeItem{
					CreateTestUnit(WithUnitType(models.ComponentTypeRouterExpose), WithLabel("Get users")),
				},
			},
		},
		Windows: []*models.Window{},
	}

	for _, override := range overrides {
		override(project)
	}

	return project
}

// WithRoutes replaces the units of the routes tab.
func WithRoutes(units ...*models.TreeItem) func(*models.Project) {
	return func(p *models.Project) {
		p.TabByType(models.TabTypeRoutes).Items = units
	}
}

// WithActions replaces the units of the actions tab.
func WithActions(units ...*models.TreeItem) func(*models.Project) {
	return func(p *models.Project) {
		p.TabByType(models.TabTypeActions).Items = units
	}
}

// WithWindows replaces the window set.
func WithWindows(windows ...*models.Window) func(*models.Project) {
	return func(p *models.Project) {
		p.Windows = windows
	}
}
