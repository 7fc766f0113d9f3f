// Package models defines the flow-graph domain model edited by Code Easy projects.
package models

import (
	"time"
)

// ItemType represents the kind of a flow item (node) inside a unit's flow graph.
type ItemType string

const (
	ItemTypeStart   ItemType = "START"
	ItemTypeEnd     ItemType = "END"
	ItemTypeAction  ItemType = "ACTION"
	ItemTypeAssign  ItemType = "ASSIGN"
	ItemTypeIf      ItemType = "IF"
	ItemTypeSwitch  ItemType = "SWITCH"
	ItemTypeForeach ItemType = "FOREACH"
	ItemTypeComment ItemType = "COMMENT"
)

// ItemTypes lists every flow item kind in palette order.
var ItemTypes = []ItemType{
	ItemTypeStart,
	ItemTypeEnd,
	ItemTypeAction,
	ItemTypeAssign,
	ItemTypeIf,
	ItemTypeSwitch,
	ItemTypeForeach,
	ItemTypeComment,
}

// IsValid reports whether t is one of the known flow item kinds.
func (t ItemType) IsValid() bool {
	for _, known := range ItemTypes {
		if known == t {
			return true
		}
	}

	return false
}

// Connection is a directed edge from the owning flow item to TargetID.
// TargetID is a weak reference: the target may not exist anymore.
type Connection struct {
	ID         string `json:"id"`
	TargetID   string `json:"target_id"`
	Label      string `json:"label"`
	IsSelected bool   `json:"is_selected"`
}

// FlowItem represents a node of a flow graph.
//
// CanAddConnection, HasError and HasWarning are derived on every synchronization
// and only cached here for rendering.
type FlowItem struct {
	ID               string        `json:"id"`
	Type             ItemType      `json:"type"`
	Name             string        `json:"name"`
	Label            string        `json:"label"`
	Description      string        `json:"description"`
	Left             float64       `json:"left"`
	Top              float64       `json:"top"`
	Connections      []*Connection `json:"connections"`
	Properties       []*Property   `json:"properties"`
	CanAddConnection bool          `json:"can_add_connection"`
	IsSelected       bool          `json:"is_selected"`
	IsDisabled       bool          `json:"is_disabled"`
	HasError         bool          `json:"has_error"`
	HasWarning       bool          `json:"has_warning"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// PropertiesByKind returns the properties of the given kind in declaration order.
func (n *FlowItem) PropertiesByKind(kind PropertyKind) []*Property {
	return filterByKind(n.Properties, kind)
}

// PropertyByKind returns the first property of the given kind or nil.
func (n *FlowItem) PropertyByKind(kind PropertyKind) *Property {
	return firstByKind(n.Properties, kind)
}

// HasConnectionTo reports whether any connection of n targets id.
func (n *FlowItem) HasConnectionTo(id string) bool {
	for _, connection := range n.Connections {
		if connection.TargetID == id {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the flow item.
func (n *FlowItem) Clone() *FlowItem {
	if n == nil {
		return nil
	}

	clone := *n

	clone.Properties = cloneProperties(n.Properties)
	clone.Connections = make([]*Connection, 0, len(n.Connections))

	for _, connection := range n.Connections {
		if connection == nil {
			continue
		}

		c := *connection
		clone.Connections = append(clone.Connections, &c)
	}

	return &clone
}
