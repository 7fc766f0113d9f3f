package models

import "time"

// TabType is the category of a project tab.
type TabType string

const (
	TabTypeActions TabType = "tabActions"
	TabTypeRoutes  TabType = "tabRoutes"
	TabTypeDates   TabType = "tabDates"
)

// Focus tells which editor region had the focus when the project was saved.
type Focus string

const (
	FocusTree       Focus = "tree"
	FocusFlow       Focus = "flow"
	FocusProperties Focus = "properties"
	FocusProblems   Focus = "problems"
)

// Tab is an ordered collection of units of one category. Order is display significant.
type Tab struct {
	ID          string      `json:"id"`
	Type        TabType     `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	IsExpanded  bool        `json:"is_expanded"`
	Items       []*TreeItem `json:"items"`
}

// Clone returns a deep copy of the tab.
func (t *Tab) Clone() *Tab {
	if t == nil {
		return nil
	}

	clone := *t
	clone.Items = make([]*TreeItem, 0, len(t.Items))

	for _, item := range t.Items {
		if item == nil {
			continue
		}

		clone.Items = append(clone.Items, item.Clone())
	}

	return &clone
}

// Configuration holds the project wide settings.
type Configuration struct {
	Label       string         `json:"label"       validate:"required,min=3,max=50"`
	Description string         `json:"description"`
	Type        string         `json:"type"        validate:"omitempty,oneof=api"`
	Version     string         `json:"version"`
	Author      string         `json:"author"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Window is an open editor tab. ID references the unit being edited.
type Window struct {
	ID         string `json:"id"`
	IsSelected bool   `json:"is_selected"`
}

// OpenedWindow is the display view of a Window resolved against its unit.
type OpenedWindow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsSelected  bool   `json:"is_selected"`
	HasError    bool   `json:"has_error"`
	HasWarning  bool   `json:"has_warning"`
}

// Project is the aggregate root of a Code Easy project.
type Project struct {
	ID            string        `json:"id"`
	Configuration Configuration `json:"configuration"`
	CurrentFocus  Focus         `json:"current_focus"`
	Tabs          []*Tab        `json:"tabs"`
	Windows       []*Window     `json:"windows"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TabByType returns the first tab of the given type or nil.
func (p *Project) TabByType(tabType TabType) *Tab {
	for _, tab := range p.Tabs {
		if tab.Type == tabType {
			return tab
		}
	}

	return nil
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}

	clone := *p

	if p.Configuration.Metadata != nil {
		clone.Configuration.Metadata = make(map[string]any, len(p.Configuration.Metadata))
		for k, v := range p.Configuration.Metadata {
			clone.Configuration.Metadata[k] = v
		}
	}

	clone.Tabs = make([]*Tab, 0, len(p.Tabs))

	for _, tab := range p.Tabs {
		if tab == nil {
			continue
		}

		clone.Tabs = append(clone.Tabs, tab.Clone())
	}

	clone.Windows = make([]*Window, 0, len(p.Windows))

	for _, window := range p.Windows {
		if window == nil {
			continue
		}

		w := *window
		clone.Windows = append(clone.Windows, &w)
	}

	return &clone
}
