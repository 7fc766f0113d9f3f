package main

import (
	"context"
	"fmt"

	"github.com/dukex/codeeasy/pkg/backup"
	"github.com/dukex/codeeasy/pkg/cmd"
	"github.com/dukex/codeeasy/pkg/log"
	"github.com/dukex/codeeasy/pkg/otelhelper"
	"github.com/dukex/codeeasy/pkg/persistence/file"
)

const serviceName = "codeeasy-api"

type config struct {
	port           int
	databaseURL    string
	eventBus       string
	backupSchedule string
	backupPath     string
	tracing        bool
}

func run(ctx context.Context, cfg config) error {
	logger := log.WithModule("api")

	logger.InfoContext(ctx, "Initializing Code Easy API")

	tracer := otelhelper.NoopTracer(serviceName)

	if cfg.tracing {
		provider, err := otelhelper.NewTracerProvider(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}

		defer func() {
			if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
			}
		}()

		tracer = provider.Tracer(serviceName)
	}

	persistence, err := cmd.NewPersistence(ctx, logger, cfg.databaseURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := persistence.Close(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	eventBus, err := cmd.NewEventBus(cfg.eventBus, logger)
	if err != nil {
		return err
	}

	defer func() {
		if err := eventBus.Close(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
		}
	}()

	if cfg.backupSchedule != "" {
		scheduler, err := backup.NewScheduler(
			logger,
			persistence,
			file.NewPersistence(cfg.backupPath),
			cfg.backupSchedule,
		)
		if err != nil {
			return err
		}

		if err := scheduler.Track(ctx, eventBus); err != nil {
			return err
		}

		if err := scheduler.Start(ctx); err != nil {
			return err
		}

		defer func() {
			if err := scheduler.Stop(context.WithoutCancel(ctx)); err != nil {
				logger.ErrorContext(ctx, "Failed to stop backup scheduler", "error", err)
			}
		}()
	}

	if err := eventBus.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to project events: %w", err)
	}

	api := NewAPI(logger, persistence, eventBus, tracer)

	if err := api.Start(ctx, cfg.port); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	return nil
}
