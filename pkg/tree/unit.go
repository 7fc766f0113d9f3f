// Package tree synchronizes and validates the units (tree items) of a project and the tabs holding them.
package tree

import (
	"unicode/utf8"

	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/diagnostic"
	"github.com/dukex/codeeasy/pkg/flow"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/naming"
)

const (
	MinLabelLength = 3
	MaxLabelLength = 50
)

// Synchronize returns a synchronized copy of unit along with its diagnostics.
// Unit level problems come first, followed by the problems of every flow item in graph order.
func Synchronize(unit *models.TreeItem, provider defaults.Provider) (*models.TreeItem, []models.Diagnostic) {
	synced := unit.Clone()
	if synced == nil {
		synced = &models.TreeItem{}
	}

	synced.Name = naming.Normalize(synced.Name)

	for _, prop := range synced.Properties {
		prop.FocusOnRender = false
	}

	synced.Properties = defaults.Merge(synced.Properties, provider.Properties(string(synced.Type), synced.Label, synced.Type.IsRouter()))

	if synced.Type == models.ComponentTypeGlobalAction {
		if label := synced.PropertyByKind(models.PropertyKindLabel); label != nil {
			synced.Name = naming.Normalize(label.Value)
		}
	}

	itemProblems := make([]models.Diagnostic, 0)

	for i, item := range synced.Items {
		node, diagnostics := flow.Synchronize(item, provider)
		synced.Items[i] = node
		itemProblems = append(itemProblems, diagnostics...)
	}

	problems := validate(synced)

	return synced, append(problems, itemProblems...)
}

func validate(unit *models.TreeItem) []models.Diagnostic {
	problems := diagnostic.NewCollector(unit.ID)

	length := utf8.RuneCountInString(unit.Label)

	switch {
	case unit.Label == "":
		problems.Errorf("Field Label cannot be empty")
	case length < MinLabelLength:
		problems.Errorf("Field Label cannot be less than %d characters in %q", MinLabelLength, unit.Label)
	case length > MaxLabelLength:
		problems.Errorf("Field Label cannot exceed %d characters in %q", MaxLabelLength, unit.Label)
	}

	if unit.Type == models.ComponentTypeRouterConsume {
		return problems.Diagnostics()
	}

	starts := unit.ItemsByType(models.ItemTypeStart)
	if len(starts) > 1 {
		problems.Errorf("In %q there must be only one start flow item", unit.Label)

		for _, start := range starts {
			start.HasError = true
		}
	}

	if unit.Type.RequiresStartAndEnd() {
		if len(starts) == 0 || len(unit.ItemsByType(models.ItemTypeEnd)) == 0 {
			problems.Errorf("A %q must have a \"Start\" and an \"End\" item in %q", unit.Type, unit.Label)
		}
	}

	for _, end := range unit.ItemsByType(models.ItemTypeEnd) {
		if !unit.HasIncomingConnection(end.ID) {
			problems.Errorf("In %q the %q flow item is not used", unit.Label, end.Name)

			end.HasError = true
		}
	}

	return problems.Diagnostics()
}
