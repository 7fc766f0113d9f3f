package project

import (
	"fmt"

	"github.com/dukex/codeeasy/pkg/models"
)

// syncWindows drops windows whose unit no longer exists and opens a window for every unit being edited.
// The last editing unit found in scan order ends up as the only selected window.
func syncWindows(p *models.Project, index *Index) {
	windows := make([]*models.Window, 0, len(p.Windows))

	for _, window := range p.Windows {
		if _, ok := index.Unit(window.ID); ok {
			windows = append(windows, window)
		}
	}

	for _, unit := range index.Units() {
		if !unit.IsEditing || unit.ID == "" {
			continue
		}

		if !hasWindow(windows, unit.ID) {
			windows = append(windows, &models.Window{ID: unit.ID})
		}

		for _, window := range windows {
			window.IsSelected = window.ID == unit.ID
		}
	}

	p.Windows = windows
}

func hasWindow(windows []*models.Window, id string) bool {
	for _, window := range windows {
		if window.ID == id {
			return true
		}
	}

	return false
}

// SelectWindowByID returns a copy of p where only the window of unit id is selected
// and only that unit is being edited.
func SelectWindowByID(p *models.Project, id string) (*models.Project, error) {
	if !hasWindow(p.Windows, id) {
		return nil, fmt.Errorf("select window %s: %w", id, ErrWindowNotFound)
	}

	snapshot := p.Clone()
	selectWindow(snapshot, id)

	return snapshot, nil
}

func selectWindow(p *models.Project, id string) {
	for _, window := range p.Windows {
		window.IsSelected = window.ID == id
	}

	for _, tab := range p.Tabs {
		for _, unit := range tab.Items {
			unit.IsEditing = unit.ID == id
		}
	}
}

// RemoveWindowByID returns a copy of p without the window of unit id.
// When windows remain, the last one becomes selected. The unit of the removed window stops being edited.
func RemoveWindowByID(p *models.Project, id string) (*models.Project, error) {
	if !hasWindow(p.Windows, id) {
		return nil, fmt.Errorf("remove window %s: %w", id, ErrWindowNotFound)
	}

	snapshot := p.Clone()

	remaining := make([]*models.Window, 0, len(snapshot.Windows))

	for _, window := range snapshot.Windows {
		if window.ID != id {
			remaining = append(remaining, window)
		}
	}

	snapshot.Windows = remaining

	if len(remaining) > 0 {
		selectWindow(snapshot, remaining[len(remaining)-1].ID)
	}

	for _, tab := range snapshot.Tabs {
		for _, unit := range tab.Items {
			if unit.ID == id {
				unit.IsEditing = false
			}
		}
	}

	return snapshot, nil
}

// OpenedWindows resolves every window against its unit, in window order.
// Windows whose unit does not exist are skipped.
func OpenedWindows(p *models.Project) []models.OpenedWindow {
	index := NewIndex(p)
	opened := make([]models.OpenedWindow, 0, len(p.Windows))

	for _, window := range p.Windows {
		unit, ok := index.Unit(window.ID)
		if !ok {
			continue
		}

		view := models.OpenedWindow{
			ID:          unit.ID,
			Title:       unit.Label,
			Description: unit.Description,
			IsSelected:  window.IsSelected,
		}

		for _, item := range unit.Items {
			view.HasError = view.HasError || item.HasError
			view.HasWarning = view.HasWarning || item.HasWarning
		}

		opened = append(opened, view)
	}

	return opened
}

// EditingUnit returns the last unit being edited in scan order, or nil.
func EditingUnit(p *models.Project) *models.TreeItem {
	var editing *models.TreeItem

	for _, unit := range NewIndex(p).Units() {
		if unit.IsEditing {
			editing = unit
		}
	}

	return editing
}

// UnitByID returns the unit with the given ID. An empty tabType searches every tab.
func UnitByID(p *models.Project, id string, tabType models.TabType) (*models.TreeItem, error) {
	index := NewIndex(p)

	unit, ok := index.Unit(id)
	if !ok {
		return nil, fmt.Errorf("unit %s: %w", id, ErrUnitNotFound)
	}

	if tabType != "" {
		if tab, _ := index.TabOf(id); tab.Type != tabType {
			return nil, fmt.Errorf("unit %s in %s: %w", id, tabType, ErrUnitNotFound)
		}
	}

	return unit, nil
}

// UnitProblems keeps the diagnostics raised by the unit with the given ID or by one of its flow items.
func UnitProblems(p *models.Project, id string, diagnostics []models.Diagnostic) []models.Diagnostic {
	index := NewIndex(p)
	problems := make([]models.Diagnostic, 0)

	for _, d := range diagnostics {
		if d.SourceID == id {
			problems = append(problems, d)

			continue
		}

		if _, owner, ok := index.Item(d.SourceID); ok && owner.ID == id {
			problems = append(problems, d)
		}
	}

	return problems
}
