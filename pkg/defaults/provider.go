// Package defaults provides the canonical property sets of flow items and tree items.
package defaults

import (
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/naming"
	"github.com/google/uuid"
)

// Provider returns the canonical property set for a flow item type or a component type.
// Implementations must be side-effect free and return fresh values on every call.
type Provider interface {
	Properties(kind string, contextLabel string, router bool) []*models.Property
}

// Templates is the built-in Provider.
type Templates struct{}

// NewProvider creates the built-in default properties provider.
func NewProvider() *Templates {
	return &Templates{}
}

// Properties returns the default properties for kind.
func (Templates) Properties(kind string, contextLabel string, router bool) []*models.Property {
	properties := []*models.Property{
		labelProperty(contextLabel),
		{Name: "Description", Group: "Info", Kind: models.PropertyKindDescription, ValueType: models.ValueTypeBigString},
	}

	switch kind {
	case string(models.ItemTypeAction):
		properties = append(properties, &models.Property{
			Name:      "Action",
			Group:     "Info",
			Kind:      models.PropertyKindAction,
			ValueType: models.ValueTypeExpression,
		})

	case string(models.ItemTypeIf):
		properties = append(properties, &models.Property{
			Name:      "Condition",
			Group:     "Info",
			Kind:      models.PropertyKindCondition,
			ValueType: models.ValueTypeExpression,
		})

	case string(models.ItemTypeForeach):
		properties = append(properties, &models.Property{
			Name:      "SourceOfData",
			Group:     "Info",
			Kind:      models.PropertyKindSourceOfData,
			ValueType: models.ValueTypeExpression,
		})

	case string(models.ItemTypeComment):
		properties = append(properties, &models.Property{
			Name:      "Comment",
			Group:     "Info",
			Kind:      models.PropertyKindComment,
			ValueType: models.ValueTypeBigString,
		})

	case string(models.ComponentTypeInputVariable),
		string(models.ComponentTypeLocalVariable),
		string(models.ComponentTypeOutputVariable):
		properties = append(properties,
			&models.Property{Name: "Type", Value: "string", Group: "Info", Kind: models.PropertyKindDataType, ValueType: models.ValueTypeSelection},
			&models.Property{Name: "DefaultValue", Group: "Info", Kind: models.PropertyKindDefaultValue, ValueType: models.ValueTypeExpression},
		)

		if kind == string(models.ComponentTypeInputVariable) {
			properties = append(properties, &models.Property{
				Name:      "Required",
				Value:     "false",
				Group:     "Info",
				Kind:      models.PropertyKindRequired,
				ValueType: models.ValueTypeBoolean,
			})
		}
	}

	if router {
		properties = append(properties,
			&models.Property{Name: "Url", Value: "/" + naming.Normalize(contextLabel), Group: "Route", Kind: models.PropertyKindURL, ValueType: models.ValueTypeString},
			&models.Property{Name: "Method", Value: "get", Group: "Route", Kind: models.PropertyKindHTTPMethod, ValueType: models.ValueTypeSelection},
		)
	}

	return properties
}

func labelProperty(value string) *models.Property {
	return &models.Property{
		Name:      "Label",
		Value:     value,
		Group:     "Info",
		Kind:      models.PropertyKindLabel,
		ValueType: models.ValueTypeString,
	}
}

// Merge appends every template whose kind is not yet present in properties.
// Existing values are never overwritten. Templates without an ID get a new one.
func Merge(properties []*models.Property, templates []*models.Property) []*models.Property {
	present := make(map[models.PropertyKind]bool, len(properties))
	for _, prop := range properties {
		present[prop.Kind] = true
	}

	for _, template := range templates {
		if present[template.Kind] {
			continue
		}

		prop := *template
		if prop.ID == "" {
			prop.ID = uuid.New().String()
		}

		properties = append(properties, &prop)
		present[prop.Kind] = true
	}

	return properties
}
