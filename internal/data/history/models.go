package history

import "time"

// SchemaVersion is the newest schema migration this package knows.
const SchemaVersion = 2

// Run is one completed check over a set of paths.
type Run struct {
	ID             string
	StartedAt      time.Time
	Duration       time.Duration
	Mode           string
	Root           string
	CommitHash     string
	FileCount      int
	FailedCount    int
	ViolationCount int
}

// Finding is a diagnostic recorded against a run.
type Finding struct {
	RunID   string
	Path    string
	Line    int
	Column  int
	RuleID  string
	Message string
}
