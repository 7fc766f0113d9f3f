package tree

import (
	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/models"
)

// SynchronizeTab synchronizes every unit of tab, preserving order.
// The diagnostics are the concatenation of the unit diagnostics in unit order.
func SynchronizeTab(tab *models.Tab, provider defaults.Provider) (*models.Tab, []models.Diagnostic) {
	synced := tab.Clone()
	if synced == nil {
		synced = &models.Tab{}
	}

	problems := make([]models.Diagnostic, 0)

	for i, unit := range synced.Items {
		item, diagnostics := Synchronize(unit, provider)
		synced.Items[i] = item
		problems = append(problems, diagnostics...)
	}

	return synced, problems
}
