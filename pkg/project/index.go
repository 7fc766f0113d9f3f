package project

import "github.com/dukex/codeeasy/pkg/models"

type unitLocation struct {
	tab  *models.Tab
	unit *models.TreeItem
}

type itemLocation struct {
	unit *models.TreeItem
	item *models.FlowItem
}

// Index resolves the weak references of a project (window -> unit, connection -> flow item) by ID.
// It must be rebuilt after the project structure changes.
type Index struct {
	units map[string]unitLocation
	items map[string]itemLocation
	order []*models.TreeItem
}

// NewIndex builds the lookup index of p in structural scan order.
func NewIndex(p *models.Project) *Index {
	index := &Index{
		units: make(map[string]unitLocation),
		items: make(map[string]itemLocation),
		order: make([]*models.TreeItem, 0),
	}

	for _, tab := range p.Tabs {
		for _, unit := range tab.Items {
			index.order = append(index.order, unit)

			if unit.ID == "" {
				continue
			}

			if _, exists := index.units[unit.ID]; !exists {
				index.units[unit.ID] = unitLocation{tab: tab, unit: unit}
			}

			for _, item := range unit.Items {
				if _, exists := index.items[item.ID]; item.ID != "" && !exists {
					index.items[item.ID] = itemLocation{unit: unit, item: item}
				}
			}
		}
	}

	return index
}

// Unit returns the unit with the given ID.
func (i *Index) Unit(id string) (*models.TreeItem, bool) {
	location, ok := i.units[id]

	return location.unit, ok
}

// TabOf returns the tab holding the unit with the given ID.
func (i *Index) TabOf(id string) (*models.Tab, bool) {
	location, ok := i.units[id]

	return location.tab, ok
}

// Item returns the flow item with the given ID and the unit owning it.
func (i *Index) Item(id string) (*models.FlowItem, *models.TreeItem, bool) {
	location, ok := i.items[id]

	return location.item, location.unit, ok
}

// Units returns every unit in structural scan order.
func (i *Index) Units() []*models.TreeItem {
	return i.order
}

// KindOf returns the type of the flow item or unit with the given ID, or "" when nothing matches.
func (i *Index) KindOf(id string) string {
	if item, _, ok := i.Item(id); ok {
		return string(item.Type)
	}

	if unit, ok := i.Unit(id); ok {
		return string(unit.Type)
	}

	return ""
}
