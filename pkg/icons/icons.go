// Package icons resolves the opaque icon references used to decorate tree items and problems.
package icons

import "github.com/dukex/codeeasy/pkg/models"

const (
	Warning = "icon-warning"
	Error   = "icon-error"
)

var byKind = map[string]string{
	string(models.ItemTypeAction):  "icon-flow-action",
	string(models.ItemTypeAssign):  "icon-flow-assign",
	string(models.ItemTypeComment): "icon-flow-comment",
	string(models.ItemTypeEnd):     "icon-flow-end",
	string(models.ItemTypeForeach): "icon-flow-foreach",
	string(models.ItemTypeIf):      "icon-flow-if",
	string(models.ItemTypeStart):   "icon-flow-start",
	string(models.ItemTypeSwitch):  "icon-flow-switch",

	string(models.ComponentTypeRouterConsume):  "icon-router-consume",
	string(models.ComponentTypeRouterExpose):   "icon-router-expose",
	string(models.ComponentTypeGlobalAction):   "icon-action",
	string(models.ComponentTypeLocalAction):    "icon-action",
	string(models.ComponentTypeGrouper):        "icon-folder",
	string(models.ComponentTypeInputVariable):  "icon-input-param",
	string(models.ComponentTypeLocalVariable):  "icon-local-param",
	string(models.ComponentTypeOutputVariable): "icon-output-param",

	string(models.TabTypeActions): "icon-action",
	string(models.TabTypeRoutes):  "icon-router",
}

// For returns the icon of a flow item type, component type or tab type.
// Unknown kinds resolve to the empty string.
func For(kind string) string {
	return byKind[kind]
}

// ForSeverity returns the icon shown next to a diagnostic.
func ForSeverity(severity models.Severity) string {
	if severity == models.SeverityWarning {
		return Warning
	}

	return Error
}
