package ports

import (
	"context"
	"time"

	"singletuple/internal/data/history"
	"singletuple/internal/engine/tuplecheck"
)

// SourceFrontend abstracts parsing a file into a checkable unit.
type SourceFrontend interface {
	Parse(path string, content []byte) (*tuplecheck.Unit, error)
}

// HistoryStore abstracts run persistence for the history command.
type HistoryStore interface {
	SaveRun(ctx context.Context, run history.Run, findings []history.Finding) (string, error)
	RecentRuns(ctx context.Context, limit int) ([]history.Run, error)
	Findings(ctx context.Context, runID string) ([]history.Finding, error)
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path        string
	DisplayPath string
	Diagnostics []tuplecheck.Diagnostic
	Skipped     bool
	Err         error
}

// Failed reports whether the file could not be read or parsed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Report summarizes a completed check run.
type Report struct {
	RunID     string
	Mode      tuplecheck.Mode
	Root      string
	Commit    string
	StartedAt time.Time
	Duration  time.Duration
	Files     []FileResult
}

func (r *Report) ViolationCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		total += len(f.Diagnostics)
	}
	return total
}

func (r *Report) FailedCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		if f.Failed() {
			total++
		}
	}
	return total
}

// CheckedCount is the number of files that were analyzed, excluding skipped
// and failed ones.
func (r *Report) CheckedCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		if !f.Skipped && !f.Failed() {
			total++
		}
	}
	return total
}

// CheckService is the driving-port surface used by the CLI.
type CheckService interface {
	Check(ctx context.Context) (*Report, error)
	CheckChanged(ctx context.Context) (*Report, error)
	CheckFiles(ctx context.Context, paths []string) (*Report, error)
}
