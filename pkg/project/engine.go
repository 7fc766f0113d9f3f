// Package project applies whole-project mutations: it re-synchronizes every tab, unit and flow item,
// keeps the open editor windows consistent and aggregates the project diagnostics.
package project

import (
	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/diagnostic"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/tree"
)

// Engine is the single mutation entry point for projects.
type Engine struct {
	provider defaults.Provider
}

// NewEngine creates an engine merging the properties returned by provider.
// A nil provider falls back to the built-in templates.
func NewEngine(provider defaults.Provider) *Engine {
	if provider == nil {
		provider = defaults.NewProvider()
	}

	return &Engine{provider: provider}
}

// SetProject returns the synchronized snapshot of p together with every diagnostic of the project.
// p itself is left untouched; callers must replace their reference with the returned snapshot.
func (e *Engine) SetProject(p *models.Project) (*models.Project, []models.Diagnostic) {
	snapshot := p.Clone()
	if snapshot == nil {
		snapshot = &models.Project{}
	}

	tabProblems := make([]models.Diagnostic, 0)

	for i, tab := range snapshot.Tabs {
		synced, diagnostics := tree.SynchronizeTab(tab, e.provider)
		snapshot.Tabs[i] = synced
		tabProblems = append(tabProblems, diagnostics...)
	}

	syncWindows(snapshot, NewIndex(snapshot))

	problems := configurationProblems(snapshot)
	problems = append(problems, tabProblems...)
	problems = append(problems, routeProblems(snapshot)...)

	return snapshot, problems
}

// Problems returns the diagnostics SetProject would report for p.
func (e *Engine) Problems(p *models.Project) []models.Diagnostic {
	_, problems := e.SetProject(p)

	return problems
}

func configurationProblems(p *models.Project) []models.Diagnostic {
	problems := diagnostic.NewCollector(p.ID)

	if p.Configuration.Label == "" {
		problems.Errorf("The project label cannot be empty")
	}

	return problems.Diagnostics()
}

func routeProblems(p *models.Project) []models.Diagnostic {
	problems := diagnostic.NewCollector(p.ID)

	for _, tab := range p.Tabs {
		if tab.Type == models.TabTypeRoutes && len(tab.Items) > 0 {
			return problems.Diagnostics()
		}
	}

	problems.Errorf("The project must have at least one route")

	return problems.Diagnostics()
}
