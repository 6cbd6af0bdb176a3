package app

import (
	"context"
	"log/slog"

	"singletuple/internal/core/ports"
	"singletuple/internal/data/history"
	"singletuple/internal/shared/observability"
)

// recordRun persists report when history is enabled. Failures are logged and
// counted; they never fail the run.
func (a *App) recordRun(ctx context.Context, report *ports.Report) {
	a.mu.RLock()
	store := a.history
	a.mu.RUnlock()
	if store == nil || report == nil {
		return
	}

	run := history.Run{
		StartedAt:      report.StartedAt,
		Duration:       report.Duration,
		Mode:           string(report.Mode),
		Root:           report.Root,
		CommitHash:     report.Commit,
		FileCount:      len(report.Files),
		FailedCount:    report.FailedCount(),
		ViolationCount: report.ViolationCount(),
	}
	findings := make([]history.Finding, 0, run.ViolationCount)
	for _, f := range report.Files {
		for _, d := range f.Diagnostics {
			findings = append(findings, history.Finding{
				Path:    f.DisplayPath,
				Line:    d.Line,
				Column:  d.Column,
				RuleID:  d.RuleID,
				Message: d.Message,
			})
		}
	}

	id, err := store.SaveRun(ctx, run, findings)
	if err != nil {
		observability.HistoryWriteErrorsTotal.Inc()
		slog.Warn("failed to record run history", "error", err)
		return
	}
	report.RunID = id
}
