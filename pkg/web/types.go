// Package web provides HTTP request and response types for the project API.
package web

import (
	"time"

	"github.com/dukex/codeeasy/pkg/icons"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/project"
	"github.com/dukex/codeeasy/pkg/services"
)

// CreateProjectRequest represents the request body for creating a new project.
type CreateProjectRequest struct {
	Label       string `json:"label"       validate:"required,min=3,max=50"`
	Description string `json:"description"`
	Type        string `json:"type"        validate:"omitempty,oneof=api"`
}

// DiagnosticResponse is a problem decorated with its severity icon and the icon of the item that raised it.
type DiagnosticResponse struct {
	ID         string          `json:"id,omitempty"`
	Label      string          `json:"label"`
	Severity   models.Severity `json:"severity"`
	GroupID    string          `json:"groupId,omitempty"`
	Icon       string          `json:"icon"`
	SourceIcon string          `json:"sourceIcon,omitempty"`
}

// ProjectResponse is a synchronized project together with its problems.
type ProjectResponse struct {
	Project       *models.Project      `json:"project"`
	Problems      []DiagnosticResponse `json:"problems"`
	EditingUnitID string               `json:"editing_unit_id,omitempty"`
}

// UnitResponse is a unit of a synchronized project together with its problems.
type UnitResponse struct {
	Unit     *models.TreeItem     `json:"unit"`
	Icon     string               `json:"icon"`
	Problems []DiagnosticResponse `json:"problems"`
}

// ProjectSummary is the list view of a stored project.
type ProjectSummary struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Version     string `json:"version"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newDiagnosticResponses(p *models.Project, diagnostics []models.Diagnostic) []DiagnosticResponse {
	index := project.NewIndex(p)
	result := make([]DiagnosticResponse, 0, len(diagnostics))

	for _, d := range diagnostics {
		result = append(result, DiagnosticResponse{
			ID:         d.ID,
			Label:      d.Label,
			Severity:   d.Severity,
			GroupID:    d.GroupID,
			Icon:       icons.ForSeverity(d.Severity),
			SourceIcon: icons.For(index.KindOf(d.SourceID)),
		})
	}

	return result
}

func newProjectResponse(result *services.Result) ProjectResponse {
	response := ProjectResponse{
		Project:  result.Project,
		Problems: newDiagnosticResponses(result.Project, result.Problems),
	}

	if unit := project.EditingUnit(result.Project); unit != nil {
		response.EditingUnitID = unit.ID
	}

	return response
}

func newUnitResponse(result *services.UnitResult) UnitResponse {
	return UnitResponse{
		Unit:     result.Unit,
		Icon:     icons.For(string(result.Unit.Type)),
		Problems: newDiagnosticResponses(result.Project, result.Problems),
	}
}

func newProjectSummary(p *models.Project) ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Label:       p.Configuration.Label,
		Description: p.Configuration.Description,
		Type:        p.Configuration.Type,
		Version:     p.Configuration.Version,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
