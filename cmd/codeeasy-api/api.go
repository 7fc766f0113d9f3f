// Package main provides the Code Easy API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dukex/codeeasy/pkg/eventbus"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/services"
	"github.com/dukex/codeeasy/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	validate    *validator.Validate
}

// NewAPI wires the HTTP surface. eventBus and tracer may be nil.
func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	projectService := services.NewProject(a.logger, a.persistence, a.eventBus, a.tracer, nil)
	handlers := web.NewAPIHandlers(projectService, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Code Easy API")
	})

	handlers.RegisterRoutes(app)

	return app
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	errs := make(chan error, 1)

	go func() {
		errs <- app.Listen(":" + strconv.Itoa(port))
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down API server")

		return app.Shutdown()
	}
}
