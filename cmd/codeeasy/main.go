// Package main provides the codeeasy command line tool to check, import and export project documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "codeeasy",
		Usage:                 "Check, import and export Code Easy projects",
		EnableShellCompletion: true,
		Writer:                stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			NewValidateCommand(),
			NewImportCommand(),
			NewExportCommand(),
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
