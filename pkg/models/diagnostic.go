package models

// Severity of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic describes one problem found while synchronizing a project.
// Diagnostics are never persisted.
type Diagnostic struct {
	ID       string   `json:"id,omitempty"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	GroupID  string   `json:"group_id,omitempty"` // ID of the synthetic parent diagnostic
	SourceID string   `json:"source_id,omitempty"`
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// CountBySeverity returns how many errors and warnings the list holds.
// Group parents are not counted.
func CountBySeverity(diagnostics []Diagnostic) (int, int) {
	parents := make(map[string]bool)

	for _, d := range diagnostics {
		if d.GroupID != "" {
			parents[d.GroupID] = true
		}
	}

	errorCount, warningCount := 0, 0

	for _, d := range diagnostics {
		if d.ID != "" && parents[d.ID] {
			continue
		}

		switch d.Severity {
		case SeverityError:
			errorCount++
		case SeverityWarning:
			warningCount++
		}
	}

	return errorCount, warningCount
}
