package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukex/codeeasy/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	cmd := &cli.Command{
		Name:                  "codeeasy-api",
		Usage:                 "Create, validate and store Code Easy projects",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Project store URL (file://, postgres://, sqlite://, redis://)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "backup-schedule",
				Usage:   "Cron expression of the project backup, empty disables it",
				Sources: cli.EnvVars("BACKUP_SCHEDULE"),
			},
			&cli.StringFlag{
				Name:    "backup-path",
				Usage:   "Directory receiving the project backups",
				Value:   "./backup",
				Sources: cli.EnvVars("BACKUP_PATH"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces with the OTLP HTTP exporter",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			return run(ctx, config{
				port:           command.Int("port"),
				databaseURL:    command.String("database-url"),
				eventBus:       command.String("event-bus"),
				backupSchedule: command.String("backup-schedule"),
				backupPath:     command.String("backup-path"),
				tracing:        command.Bool("tracing"),
			})
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		panic(err)
	}
}
