// Package flow synchronizes and validates the flow items (nodes) of a unit's flow graph.
package flow

import (
	"fmt"
	"unicode/utf8"

	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/diagnostic"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/naming"
	"github.com/google/uuid"
)

const (
	MinNameLength = 3
	MaxNameLength = 20
)

// Synchronize returns a synchronized copy of item along with its diagnostics.
// The input is never modified. Running Synchronize on its own output yields the same item.
func Synchronize(item *models.FlowItem, provider defaults.Provider) (*models.FlowItem, []models.Diagnostic) {
	node := item.Clone()
	if node == nil {
		node = &models.FlowItem{}
	}

	if node.Properties == nil {
		node.Properties = make([]*models.Property, 0)
	}

	if node.ID == "" {
		node.ID = uuid.New().String()
	}

	// Connection IDs must be unique within the item: SWITCH binds one condition to each of them.
	seen := make(map[string]bool, len(node.Connections))

	for _, connection := range node.Connections {
		if connection.ID == "" || seen[connection.ID] {
			connection.ID = uuid.New().String()
		}

		seen[connection.ID] = true
	}

	for _, prop := range node.Properties {
		prop.FocusOnRender = false
	}

	node.Properties = defaults.Merge(node.Properties, provider.Properties(string(node.Type), node.Name, false))

	if label := node.PropertyByKind(models.PropertyKindLabel); label != nil {
		node.Name = naming.Normalize(label.Value)
		node.Label = label.Value
	}

	kind, known := kinds[node.Type]
	if known {
		kind.synchronize(node)
	} else {
		node.CanAddConnection = false
	}

	return node, validate(node, kind)
}

// Problems returns the diagnostics of item without keeping the synchronized copy.
func Problems(item *models.FlowItem, provider defaults.Provider) []models.Diagnostic {
	_, diagnostics := Synchronize(item, provider)

	return diagnostics
}

func validate(node *models.FlowItem, kind behavior) []models.Diagnostic {
	problems := diagnostic.NewCollector(node.ID)

	if needsSuccessor(node.Type) && len(node.Connections) == 0 {
		problems.Errorf("The flow item %q is missing a connector", node.Name)
	}

	validateName(node, problems)

	if kind != nil {
		kind.validate(node, problems)
	}

	for _, prop := range node.PropertiesByKind(models.PropertyKindAction) {
		prop.ValueHasError = prop.Value == ""
		if prop.ValueHasError {
			problems.Errorf("The flow item %q must have a valid value in the %q field", node.Name, prop.Name)
		}
	}

	node.HasError = problems.HasErrors()
	node.HasWarning = problems.HasWarnings()

	return diagnostic.Group(problems.Diagnostics(), node.ID, fmt.Sprintf("Inconsistencies in flow item %q", node.Name))
}

func validateName(node *models.FlowItem, problems *diagnostic.Collector) {
	length := utf8.RuneCountInString(node.Name)
	hasError, hasWarning := false, false

	switch {
	case node.Name == "":
		problems.Errorf("The name of a flow item cannot be empty")

		hasError = true
	case length < MinNameLength:
		problems.Warningf("A suitable name for a flow item must have at least %d characters in %q", MinNameLength, node.Name)

		hasWarning = true
	case length > MaxNameLength && node.Type != models.ItemTypeComment:
		problems.Warningf("A suitable name for a flow item must have at most %d characters in %q", MaxNameLength, node.Name)

		hasWarning = true
	}

	for _, prop := range node.PropertiesByKind(models.PropertyKindLabel) {
		prop.ValueHasError = hasError
		prop.ValueHasWarning = hasWarning
	}
}

func needsSuccessor(itemType models.ItemType) bool {
	return itemType != models.ItemTypeEnd && itemType != models.ItemTypeComment
}
