// Package web provides HTTP handlers and REST API endpoints for project management.
package web

import (
	"net/http"
	"time"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/schema"
	"github.com/dukex/codeeasy/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	projectService *services.Project
	validator      *validator.Validate
}

func NewAPIHandlers(projectService *services.Project, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		projectService: projectService,
		validator:      validator,
	}
}

// RegisterRoutes mounts the project endpoints on router.
func (h *APIHandlers) RegisterRoutes(router fiber.Router) {
	p := router.Group("/projects")
	p.Get("/", h.GetProjects)
	p.Post("/", h.CreateProject)
	p.Get("/:id", h.GetProject)
	p.Put("/:id", h.UpdateProject)
	p.Delete("/:id", h.DeleteProject)
	p.Get("/:id/problems", h.GetProblems)
	p.Get("/:id/units/:unitId", h.GetUnit)
	p.Get("/:id/windows", h.GetWindows)
	p.Post("/:id/windows/:windowId/select", h.SelectWindow)
	p.Delete("/:id/windows/:windowId", h.RemoveWindow)

	router.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, ok := h.projectService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Code Easy API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "Code Easy API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetProjects(c fiber.Ctx) error {
	projects, err := h.projectService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, newProjectSummary(p))
	}

	return c.JSON(fiber.Map{
		"projects":    summaries,
		"total_count": len(summaries),
	})
}

func (h *APIHandlers) CreateProject(c fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.projectService.Create(c.Context(), services.CreateProjectRequest{
		Label:       req.Label,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(newProjectResponse(result))
}

func (h *APIHandlers) GetProject(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Project ID is required")
	}

	result, err := h.projectService.Fetch(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newProjectResponse(result))
}

// UpdateProject replaces the whole project tree. The body is checked against the
// project document schema before it reaches the engine.
func (h *APIHandlers) UpdateProject(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Project ID is required")
	}

	candidate, err := schema.Decode(c.Body())
	if err != nil {
		return unprocessable(c, err.Error())
	}

	result, err := h.projectService.Update(c.Context(), id, candidate)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newProjectResponse(result))
}

func (h *APIHandlers) DeleteProject(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Project ID is required")
	}

	if err := h.projectService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetProblems(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Project ID is required")
	}

	result, err := h.projectService.Fetch(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newDiagnosticResponses(result.Project, result.Problems))
}

// GetUnit returns one unit of a project. The optional tab query restricts the lookup to one tab type.
func (h *APIHandlers) GetUnit(c fiber.Ctx) error {
	id, unitID := c.Params("id"), c.Params("unitId")
	if id == "" || unitID == "" {
		return badRequest(c, "Project ID and unit ID are required")
	}

	tab := c.Query("tab")
	if err := h.validator.Var(tab, "omitempty,oneof=tabActions tabRoutes tabDates"); err != nil {
		return badRequest(c, "Invalid tab type: "+tab)
	}

	result, err := h.projectService.Unit(c.Context(), id, unitID, models.TabType(tab))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newUnitResponse(result))
}

func (h *APIHandlers) GetWindows(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Project ID is required")
	}

	windows, err := h.projectService.Windows(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(windows)
}

func (h *APIHandlers) SelectWindow(c fiber.Ctx) error {
	id, windowID := c.Params("id"), c.Params("windowId")
	if id == "" || windowID == "" {
		return badRequest(c, "Project ID and window ID are required")
	}

	result, err := h.projectService.SelectWindow(c.Context(), id, windowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newProjectResponse(result))
}

func (h *APIHandlers) RemoveWindow(c fiber.Ctx) error {
	id, windowID := c.Params("id"), c.Params("windowId")
	if id == "" || windowID == "" {
		return badRequest(c, "Project ID and window ID are required")
	}

	result, err := h.projectService.RemoveWindow(c.Context(), id, windowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newProjectResponse(result))
}
