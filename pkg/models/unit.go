package models

import "time"

// ComponentType is the category of a tree item (unit).
type ComponentType string

const (
	ComponentTypeGlobalAction   ComponentType = "globalAction"
	ComponentTypeLocalAction    ComponentType = "localAction"
	ComponentTypeRouterConsume  ComponentType = "routerConsume"
	ComponentTypeRouterExpose   ComponentType = "routerExpose"
	ComponentTypeGrouper        ComponentType = "grouper"
	ComponentTypeInputVariable  ComponentType = "inputVariable"
	ComponentTypeLocalVariable  ComponentType = "localVariable"
	ComponentTypeOutputVariable ComponentType = "outputVariable"
)

// IsRouter reports whether the category is one of the router variants.
func (c ComponentType) IsRouter() bool {
	return c == ComponentTypeRouterConsume || c == ComponentTypeRouterExpose
}

// RequiresStartAndEnd reports whether units of this category must hold both a START and an END item.
func (c ComponentType) RequiresStartAndEnd() bool {
	return c == ComponentTypeGlobalAction || c == ComponentTypeLocalAction || c == ComponentTypeRouterExpose
}

// TreeItem is a named container of one flow graph: an action, a route, a variable...
type TreeItem struct {
	ID          string        `json:"id"`
	Type        ComponentType `json:"type"`
	Label       string        `json:"label"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ParentID    string        `json:"parent_id,omitempty"`
	Order       int           `json:"order"`
	IsEditing   bool          `json:"is_editing"`
	IsSelected  bool          `json:"is_selected"`
	IsExpanded  bool          `json:"is_expanded"`
	Properties  []*Property   `json:"properties"`
	Items       []*FlowItem   `json:"items"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PropertyByKind returns the first property of the given kind or nil.
func (u *TreeItem) PropertyByKind(kind PropertyKind) *Property {
	return firstByKind(u.Properties, kind)
}

// ItemsByType returns the flow items of the given type in graph order.
func (u *TreeItem) ItemsByType(itemType ItemType) []*FlowItem {
	result := make([]*FlowItem, 0)

	for _, item := range u.Items {
		if item.Type == itemType {
			result = append(result, item)
		}
	}

	return result
}

// HasIncomingConnection reports whether any item of the unit connects to id.
func (u *TreeItem) HasIncomingConnection(id string) bool {
	for _, item := range u.Items {
		if item.HasConnectionTo(id) {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the unit and its flow graph.
func (u *TreeItem) Clone() *TreeItem {
	if u == nil {
		return nil
	}

	clone := *u

	clone.Properties = cloneProperties(u.Properties)
	clone.Items = make([]*FlowItem, 0, len(u.Items))

	for _, item := range u.Items {
		if item == nil {
			continue
		}

		clone.Items = append(clone.Items, item.Clone())
	}

	return &clone
}
