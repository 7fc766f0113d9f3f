package flow

import (
	"fmt"

	"github.com/dukex/codeeasy/pkg/diagnostic"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/google/uuid"
)

// Connection labels assigned by the branching items.
const (
	LabelTrue    = "True"
	LabelFalse   = "False"
	LabelDefault = "Default"
	LabelCycle   = "Cycle"

	conditionPrefix = "Condition"
)

// CommentPlaceholder is the text of a comment item whose comment is empty.
const CommentPlaceholder = "Write here your comment"

// behavior holds the rules specific to one flow item type.
type behavior interface {
	synchronize(node *models.FlowItem)
	validate(node *models.FlowItem, problems *diagnostic.Collector)
}

var kinds = map[models.ItemType]behavior{
	models.ItemTypeStart:   startItem{},
	models.ItemTypeEnd:     endItem{},
	models.ItemTypeAction:  actionItem{},
	models.ItemTypeAssign:  assignItem{},
	models.ItemTypeIf:      ifItem{},
	models.ItemTypeSwitch:  switchItem{},
	models.ItemTypeForeach: foreachItem{},
	models.ItemTypeComment: commentItem{},
}

type startItem struct{}

func (startItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = len(node.Connections) == 0
}

func (startItem) validate(*models.FlowItem, *diagnostic.Collector) {}

type endItem struct{}

func (endItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = false
}

func (endItem) validate(*models.FlowItem, *diagnostic.Collector) {}

type actionItem struct{}

// synchronize locks the label once an action has been bound to the item.
func (actionItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = len(node.Connections) == 0

	action := node.PropertyByKind(models.PropertyKindAction)
	if label := node.PropertyByKind(models.PropertyKindLabel); label != nil {
		label.EditValueDisabled = action != nil && action.Value != ""
	}
}

func (actionItem) validate(*models.FlowItem, *diagnostic.Collector) {}

type assignItem struct{}

// synchronize keeps exactly one trailing blank assignment row.
func (assignItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = len(node.Connections) == 0

	blank := 0

	for _, prop := range node.Properties {
		if prop.Kind == models.PropertyKindAssigns && prop.IsBlank() {
			blank++
		}
	}

	switch {
	case blank == 0:
		node.Properties = append(node.Properties, &models.Property{
			ID:        uuid.New().String(),
			Group:     "Assigns",
			Kind:      models.PropertyKindAssigns,
			ValueType: models.ValueTypeAssign,
		})
	case blank > 1:
		kept := make([]*models.Property, 0, len(node.Properties)-blank+1)

		for _, prop := range node.Properties {
			if prop.Kind == models.PropertyKindAssigns && prop.IsBlank() {
				blank--
				if blank > 0 {
					continue
				}
			}

			kept = append(kept, prop)
		}

		node.Properties = kept
	}
}

func (assignItem) validate(node *models.FlowItem, problems *diagnostic.Collector) {
	for _, prop := range node.PropertiesByKind(models.PropertyKindAssigns) {
		prop.NameHasError = false
		prop.ValueHasError = false

		switch {
		case prop.Name != "" && prop.Value == "":
			problems.Errorf("In the %q item, no value is being assigned to %q", node.Name, prop.Name)

			prop.ValueHasError = true
		case prop.Name == "" && prop.Value != "":
			problems.Errorf("In the %q item, the value %q is not being assigned to any variable or parameter", node.Name, prop.Value)

			prop.NameHasError = true
		}
	}
}

type ifItem struct{}

func (ifItem) synchronize(node *models.FlowItem) {
	for i, connection := range node.Connections {
		if i == 0 {
			connection.Label = LabelTrue
		} else {
			connection.Label = LabelFalse
		}
	}

	node.CanAddConnection = len(node.Connections) < 2
}

func (ifItem) validate(node *models.FlowItem, problems *diagnostic.Collector) {
	validateConditions(node, problems)

	if len(node.Connections) == 1 {
		problems.Errorf("The flow item %q is missing a connector", node.Name)
	}
}

type switchItem struct{}

// synchronize binds one condition property to every connection after the default one.
// The property shares the connection ID.
func (switchItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = true

	live := make(map[string]bool, len(node.Connections))

	for i, connection := range node.Connections {
		if i == 0 {
			connection.Label = LabelDefault

			continue
		}

		name := fmt.Sprintf("%s%d", conditionPrefix, i)
		connection.Label = name
		live[connection.ID] = true

		if prop := conditionByID(node, connection.ID); prop != nil {
			prop.Name = name

			continue
		}

		node.Properties = append(node.Properties, &models.Property{
			ID:        connection.ID,
			Name:      name,
			Group:     "Conditions",
			Kind:      models.PropertyKindCondition,
			ValueType: models.ValueTypeExpression,
		})
	}

	seen := make(map[string]bool, len(live))
	kept := make([]*models.Property, 0, len(node.Properties))

	for _, prop := range node.Properties {
		if prop.Kind == models.PropertyKindCondition {
			if !live[prop.ID] || seen[prop.ID] {
				continue
			}

			seen[prop.ID] = true
		}

		kept = append(kept, prop)
	}

	node.Properties = kept
}

func (switchItem) validate(node *models.FlowItem, problems *diagnostic.Collector) {
	validateConditions(node, problems)
}

type foreachItem struct{}

func (foreachItem) synchronize(node *models.FlowItem) {
	if len(node.Connections) > 0 {
		node.Connections[0].Label = LabelCycle
	}

	node.CanAddConnection = len(node.Connections) < 2
}

func (foreachItem) validate(*models.FlowItem, *diagnostic.Collector) {}

type commentItem struct{}

// synchronize mirrors the comment text into the item name and label.
func (commentItem) synchronize(node *models.FlowItem) {
	node.CanAddConnection = true

	text := CommentPlaceholder
	if comment := node.PropertyByKind(models.PropertyKindComment); comment != nil && comment.Value != "" {
		text = comment.Value
	}

	node.Name = text
	node.Label = text

	if label := node.PropertyByKind(models.PropertyKindLabel); label != nil {
		label.Value = text
	}
}

func (commentItem) validate(*models.FlowItem, *diagnostic.Collector) {}

func validateConditions(node *models.FlowItem, problems *diagnostic.Collector) {
	for _, prop := range node.PropertiesByKind(models.PropertyKindCondition) {
		prop.ValueHasError = prop.Value == ""
		if prop.ValueHasError {
			problems.Errorf("In the %q item, the %q condition must have an informed expression", node.Name, prop.Name)
		}
	}
}

func conditionByID(node *models.FlowItem, id string) *models.Property {
	for _, prop := range node.Properties {
		if prop.Kind == models.PropertyKindCondition && prop.ID == id {
			return prop
		}
	}

	return nil
}
