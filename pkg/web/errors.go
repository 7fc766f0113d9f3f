package web

import (
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/project"
	"github.com/dukex/codeeasy/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func unprocessable(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(422).
		WithInstance(c.Path()).
		WithType("unparseable_project").
		WithDetail(detail)

	return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case persistence.IsUnparseableProject(err):
		return unprocessable(c, err.Error())

	case persistence.IsProjectNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("project_not_found").
			WithDetail("project not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case project.IsWindowNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("window_not_found").
			WithDetail("window not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case project.IsUnitNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("unit_not_found").
			WithDetail("unit not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	default:
		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(problem)
	}
}
