// # cmd/singletuple/cli.go
package main

import (
	"errors"
	"fmt"
	"io"

	"singletuple/internal/shared/version"

	"github.com/urfave/cli/v2"
)

const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

// errFindings ends a check that reported at least one violation.
var errFindings = errors.New("violations found")

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "singletuple",
		Usage:                  "Report parenthesized single expressions that were meant to be one-element tuples",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		ExitErrHandler:         func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: ./singletuple.toml when present)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Check Python files once",
				ArgsUsage: "[path...]",
				Flags:     append(runFlags(), checkFlags()...),
				Action:    checkCommand,
			},
			{
				Name:      "watch",
				Usage:     "Check, then recheck files as they change",
				ArgsUsage: "[path...]",
				Flags:     runFlags(),
				Action:    watchCommand,
			},
			{
				Name:  "history",
				Usage: "Inspect recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List recent runs",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of runs"},
						},
						Action: historyListCommand,
					},
					{
						Name:      "show",
						Usage:     "Print the findings of one run",
						ArgsUsage: "<run-id>",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
						},
						Action: historyShowCommand,
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintf(c.App.Writer, "singletuple %s\n", version.Version)
					return err
				},
			},
		},
	}
}

// runFlags are shared by check and watch.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "mode", Usage: "Rule mode: broad or strict"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: text, json, tsv, sarif"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the report to a file instead of stdout"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "Files checked in parallel"},
		&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
		&cli.BoolFlag{Name: "history", Usage: "Record the run in the history database"},
	}
}

func checkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "changed", Usage: "Only check files changed in the git working tree"},
		&cli.BoolFlag{Name: "exit-zero", Usage: "Exit with status 0 even when violations are found"},
	}
}

// run executes the CLI and maps the outcome to a process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	err := newCLI(stdout, stderr).Run(args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFindings):
		return exitFindings
	default:
		fmt.Fprintf(stderr, "singletuple: %v\n", err)
		return exitError
	}
}
