package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/codeeasy/pkg/cmd"
	"github.com/dukex/codeeasy/pkg/log"
	"github.com/dukex/codeeasy/pkg/schema"
	"github.com/urfave/cli/v3"
)

var ErrProjectIDRequired = errors.New("a project ID is required")

func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"e"},
		Usage:     "Write a stored project to stdout",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Project store URL (file://, postgres://, sqlite://, redis://)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, yaml)",
				Value:   "json",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("export")

			id := command.Args().First()
			if id == "" {
				return ErrProjectIDRequired
			}

			format, err := schema.ParseFormat(command.String("format"))
			if err != nil {
				return err
			}

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			p, err := persistence.ProjectByID(ctx, id)
			if err != nil {
				return err
			}

			data, err := schema.Encode(p, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(command.Root().Writer, strings.TrimRight(string(data), "\n"))

			return err
		},
	}
}
