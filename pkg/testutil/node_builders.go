// Package testutil provides test data builders for flow items, units and projects.
package testutil

import (
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/google/uuid"
)

// CreateTestFlowItem creates a flow item with default values that can be overridden.
// The default item is a START named "begin" connected to "end-node".
func CreateTestFlowItem(overrides ...func(*models.FlowItem)) *models.FlowItem {
	item := &models.FlowItem{
		ID:   uuid.New().String(),
		Type: models.ItemTypeStart,
		Name: "begin",
		Left: 100,
		Top:  200,
		Connections: []*models.Connection{
			{ID: uuid.New().String(), TargetID: "end-node"},
		},
		Properties: []*models.Property{},
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// WithType sets the flow item type.
func WithType(itemType models.ItemType) func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.Type = itemType
	}
}

// WithID sets the flow item ID.
func WithID(id string) func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.ID = id
	}
}

// WithName sets the flow item name. The label property, when present, is updated too.
func WithName(name string) func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.Name = name

		for _, prop := range n.Properties {
			if prop.Kind == models.PropertyKindLabel {
				prop.Value = name
			}
		}
	}
}

// WithConnections replaces the connections with one connection per target ID.
func WithConnections(targetIDs ...string) func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.Connections = make([]*models.Connection, 0, len(targetIDs))
		for _, target := range targetIDs {
			n.Connections = append(n.Connections, &models.Connection{ID: uuid.New().String(), TargetID: target})
		}
	}
}

// WithoutConnections removes every connection.
func WithoutConnections() func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.Connections = []*models.Connection{}
	}
}

// WithProperties appends the given properties.
func WithProperties(properties ...*models.Property) func(*models.FlowItem) {
	return func(n *models.FlowItem) {
		n.Properties = append(n.Properties, properties...)
	}
}

// Assign builds an assignment row.
func Assign(name, value string) *models.Property {
	return &models.Property{
		ID:        uuid.New().String(),
		Name:      name,
		Value:     value,
		Group:     "Assigns",
		Kind:      models.PropertyKindAssigns,
		ValueType: models.ValueTypeAssign,
	}
}

// Condition builds a condition property.
func Condition(id, name, value string) *models.Property {
	return &models.Property{
		ID:        id,
		Name:      name,
		Value:     value,
		Kind:      models.PropertyKindCondition,
		ValueType: models.ValueTypeExpression,
	}
}
