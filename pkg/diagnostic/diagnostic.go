// Package diagnostic collects the problems found while synchronizing flow items, units and projects.
package diagnostic

import (
	"fmt"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/google/uuid"
)

// Collector accumulates diagnostics for one source entity.
type Collector struct {
	sourceID string
	items    []models.Diagnostic
}

// NewCollector creates a collector for the entity identified by sourceID.
func NewCollector(sourceID string) *Collector {
	return &Collector{sourceID: sourceID, items: make([]models.Diagnostic, 0)}
}

// Errorf records an error.
func (c *Collector) Errorf(format string, args ...any) {
	c.add(models.SeverityError, fmt.Sprintf(format, args...))
}

// Warningf records a warning.
func (c *Collector) Warningf(format string, args ...any) {
	c.add(models.SeverityWarning, fmt.Sprintf(format, args...))
}

func (c *Collector) add(severity models.Severity, label string) {
	c.items = append(c.items, models.Diagnostic{
		Label:    label,
		Severity: severity,
		SourceID: c.sourceID,
	})
}

// HasErrors reports whether an error was recorded.
func (c *Collector) HasErrors() bool {
	return c.has(models.SeverityError)
}

// HasWarnings reports whether a warning was recorded.
func (c *Collector) HasWarnings() bool {
	return c.has(models.SeverityWarning)
}

func (c *Collector) has(severity models.Severity) bool {
	for _, d := range c.items {
		if d.Severity == severity {
			return true
		}
	}

	return false
}

// Diagnostics returns the recorded diagnostics in insertion order.
func (c *Collector) Diagnostics() []models.Diagnostic {
	result := make([]models.Diagnostic, len(c.items))
	copy(result, c.items)

	return result
}

// GroupID returns the stable identifier of the synthetic parent for sourceID.
func GroupID(sourceID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("codeeasy:problems:"+sourceID)).String()
}

// Group wraps more than one diagnostic under a synthetic parent labeled label.
// The parent comes first and every child points to it through GroupID.
// Zero or one diagnostic is returned unchanged.
func Group(diagnostics []models.Diagnostic, sourceID, label string) []models.Diagnostic {
	if len(diagnostics) <= 1 {
		return diagnostics
	}

	parent := models.Diagnostic{
		ID:       GroupID(sourceID),
		Label:    label,
		Severity: models.SeverityWarning,
		SourceID: sourceID,
	}

	result := make([]models.Diagnostic, 0, len(diagnostics)+1)
	result = append(result, parent)

	for _, d := range diagnostics {
		if d.IsError() {
			result[0].Severity = models.SeverityError
		}

		d.GroupID = parent.ID
		result = append(result, d)
	}

	return result
}
