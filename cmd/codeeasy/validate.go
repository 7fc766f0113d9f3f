package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dukex/codeeasy/pkg/log"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/project"
	"github.com/dukex/codeeasy/pkg/schema"
	"github.com/urfave/cli/v3"
)

var (
	ErrFileRequired     = errors.New("a project file is required")
	ErrProjectHasErrors = errors.New("project has errors")
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Print the problems of a project document (JSON or YAML)",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("validate")

			p, err := readProject(command.Args().First())
			if err != nil {
				return err
			}

			_, problems := project.NewEngine(nil).SetProject(p)
			errorCount, warningCount := models.CountBySeverity(problems)

			logger.DebugContext(ctx, "Project validated", "errors", errorCount, "warnings", warningCount)

			printProblems(command.Root().Writer, problems)
			fmt.Fprintf(command.Root().Writer, "%d error(s), %d warning(s)\n", errorCount, warningCount)

			if errorCount > 0 {
				return ErrProjectHasErrors
			}

			return nil
		},
	}
}

func readProject(path string) (*models.Project, error) {
	if path == "" {
		return nil, ErrFileRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := schema.DecodeAs(data, schema.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return p, nil
}

// printProblems writes one line per diagnostic, indenting those that belong to a group.
func printProblems(w io.Writer, problems []models.Diagnostic) {
	for _, problem := range problems {
		indent := ""
		if problem.GroupID != "" {
			indent = "  "
		}

		fmt.Fprintf(w, "%s%-7s %s\n", indent, problem.Severity, problem.Label)
	}
}
