package models

// PropertyKind tells the engine what a property means for its owner.
type PropertyKind string

const (
	PropertyKindLabel        PropertyKind = "label"
	PropertyKindDescription  PropertyKind = "description"
	PropertyKindComment      PropertyKind = "comment"
	PropertyKindCondition    PropertyKind = "condition"
	PropertyKindAssigns      PropertyKind = "assigns"
	PropertyKindAction       PropertyKind = "action"
	PropertyKindSourceOfData PropertyKind = "sourceOfData"
	PropertyKindIcon         PropertyKind = "icon"
	PropertyKindURL          PropertyKind = "url"
	PropertyKindHTTPMethod   PropertyKind = "httpMethod"
	PropertyKindDataType     PropertyKind = "dataType"
	PropertyKindDefaultValue PropertyKind = "defaultValue"
	PropertyKindRequired     PropertyKind = "required"
)

// ValueType tells the properties editor how to edit a value.
type ValueType string

const (
	ValueTypeViewOnly   ValueType = "viewOnly"
	ValueTypeString     ValueType = "string"
	ValueTypeBigString  ValueType = "bigString"
	ValueTypeNumber     ValueType = "number"
	ValueTypeBoolean    ValueType = "boolean"
	ValueTypeSelection  ValueType = "selection"
	ValueTypeExpression ValueType = "expression"
	ValueTypeAssign     ValueType = "assign"
)

// Property is a typed named value attached to a flow item or a tree item.
// The editing hints carry no behaviour; they are kept for round trips.
type Property struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Value             string       `json:"value"`
	Group             string       `json:"group"`
	Kind              PropertyKind `json:"kind"`
	ValueType         ValueType    `json:"value_type"`
	Information       string       `json:"information,omitempty"`
	NameHasError      bool         `json:"name_has_error"`
	ValueHasError     bool         `json:"value_has_error"`
	ValueHasWarning   bool         `json:"value_has_warning"`
	EditNameDisabled  bool         `json:"edit_name_disabled"`
	EditValueDisabled bool         `json:"edit_value_disabled"`
	FocusOnRender     bool         `json:"focus_on_render"`
}

// IsBlank reports whether both name and value are empty.
func (p *Property) IsBlank() bool {
	return p.Name == "" && p.Value == ""
}

func filterByKind(properties []*Property, kind PropertyKind) []*Property {
	result := make([]*Property, 0)

	for _, prop := range properties {
		if prop.Kind == kind {
			result = append(result, prop)
		}
	}

	return result
}

func firstByKind(properties []*Property, kind PropertyKind) *Property {
	for _, prop := range properties {
		if prop.Kind == kind {
			return prop
		}
	}

	return nil
}

func cloneProperties(properties []*Property) []*Property {
	result := make([]*Property, 0, len(properties))

	for _, prop := range properties {
		if prop == nil {
			continue
		}

		p := *prop
		result = append(result, &p)
	}

	return result
}
