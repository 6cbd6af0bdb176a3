// # internal/ui/report/formats/json.go
package formats

import (
	"encoding/json"
	"io"
	"time"

	"singletuple/internal/core/ports"
)

type jsonReport struct {
	RunID      string        `json:"run_id,omitempty"`
	Mode       string        `json:"mode"`
	Commit     string        `json:"commit,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	DurationMS int64         `json:"duration_ms"`
	Files      int           `json:"files"`
	Failed     []jsonFailure `json:"failed"`
	Findings   []jsonFinding `json:"findings"`
}

type jsonFinding struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONGenerator emits the whole run as one JSON document. Columns are
// 1-based to match the text output.
type JSONGenerator struct{}

func (g *JSONGenerator) Generate(w io.Writer, report *ports.Report) error {
	out := jsonReport{
		Failed:   make([]jsonFailure, 0),
		Findings: make([]jsonFinding, 0),
	}
	if report != nil {
		out.RunID = report.RunID
		out.Mode = string(report.Mode)
		out.Commit = report.Commit
		out.StartedAt = report.StartedAt
		out.DurationMS = report.Duration.Milliseconds()
		out.Files = len(report.Files)
		for _, f := range report.Files {
			if f.Failed() {
				out.Failed = append(out.Failed, jsonFailure{Path: f.DisplayPath, Error: f.Err.Error()})
			}
		}
	}
	for _, f := range findings(report) {
		out.Findings = append(out.Findings, jsonFinding{
			Path:    f.path,
			Line:    f.diag.Line,
			Column:  f.diag.Column + 1,
			Code:    f.diag.RuleID,
			Message: f.diag.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
