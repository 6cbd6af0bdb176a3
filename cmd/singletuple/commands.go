// # cmd/singletuple/commands.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"singletuple/internal/core/config"
	"singletuple/internal/core/ports"
	"singletuple/internal/data/history"
	"singletuple/internal/engine/tuplecheck"
	"singletuple/internal/ui/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"
)

func checkCommand(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	var result *ports.Report
	if c.Bool("changed") {
		result, err = rt.app.CheckChanged(c.Context)
	} else {
		result, err = rt.app.Check(c.Context)
	}
	if err != nil {
		return err
	}

	if err := report.Emit(result, destination(c, rt.cfg, rt.app.Paths.OutputPath)); err != nil {
		return err
	}
	if result.ViolationCount() > 0 && !c.Bool("exit-zero") {
		return errFindings
	}
	return nil
}

func watchCommand(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dest := destination(c, rt.cfg, rt.app.Paths.OutputPath)
	return rt.app.Watch(ctx, rt.source, func(r *ports.Report) {
		if err := report.Emit(r, dest); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "singletuple: %v\n", err)
		}
	})
}

func destination(c *cli.Context, cfg *config.Config, outputPath string) report.Destination {
	return report.Destination{
		Format: cfg.Output.Format,
		Path:   outputPath,
		Color:  cfg.ColorEnabled(),
		Stdout: c.App.Writer,
		Stderr: c.App.ErrWriter,
	}
}

// openHistory opens the configured store regardless of history.enabled, so
// past runs stay readable after recording is turned off.
func openHistory(c *cli.Context) (*history.Store, error) {
	setupLogging(c)
	cfg, _, err := loadConfig(c, false)
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	resolved, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		return nil, err
	}
	return history.Open(resolved.HistoryPath, cfg.History.BusyTimeout)
}

func historyListCommand(c *cli.Context) error {
	store, err := openHistory(c)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(c.App.Writer, "no runs recorded")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Mode,
			strconv.Itoa(run.FileCount),
			strconv.Itoa(run.FailedCount),
			strconv.Itoa(run.ViolationCount),
			shortHash(run.CommitHash),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "STARTED", "MODE", "FILES", "FAILED", "VIOLATIONS", "COMMIT").
		Rows(rows...)
	_, err = fmt.Fprintln(c.App.Writer, t.Render())
	return err
}

func historyShowCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("history show requires exactly one run id")
	}
	store, err := openHistory(c)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := c.Args().First()
	findings, err := store.Findings(c.Context, runID)
	if err != nil {
		return err
	}

	return report.Emit(reportFromFindings(runID, findings), report.Destination{
		Format: "text",
		Color:  !c.Bool("no-color"),
		Stdout: c.App.Writer,
	})
}

// reportFromFindings regroups stored findings by path so they render like a
// live run.
func reportFromFindings(runID string, findings []history.Finding) *ports.Report {
	r := &ports.Report{RunID: runID}
	index := make(map[string]int)
	for _, f := range findings {
		i, ok := index[f.Path]
		if !ok {
			i = len(r.Files)
			index[f.Path] = i
			r.Files = append(r.Files, ports.FileResult{Path: f.Path, DisplayPath: f.Path})
		}
		r.Files[i].Diagnostics = append(r.Files[i].Diagnostics, tuplecheck.Diagnostic{
			Line:    f.Line,
			Column:  f.Column,
			RuleID:  f.RuleID,
			Message: f.Message,
		})
	}
	return r
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
