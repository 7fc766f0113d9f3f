package main

import (
	"context"
	"fmt"

	"github.com/dukex/codeeasy/pkg/cmd"
	"github.com/dukex/codeeasy/pkg/log"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/services"
	"github.com/urfave/cli/v3"
)

func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Aliases:   []string{"i"},
		Usage:     "Synchronize a project document and save it into a store",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Project store URL (file://, postgres://, sqlite://, redis://)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("import")

			p, err := readProject(command.Args().First())
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

			result, err := services.NewProject(logger, persistence, nil, nil, nil).Import(ctx, p)
			if err != nil {
				return err
			}

			errorCount, warningCount := models.CountBySeverity(result.Problems)
			fmt.Fprintf(command.Root().Writer, "%s %d error(s), %d warning(s)\n", result.Project.ID, errorCount, warningCount)

			return nil
		},
	}
}
