// # internal/ui/report/formats/sarif.go
package formats

import (
	"fmt"
	"io"
	"strings"

	"singletuple/internal/core/ports"
	"singletuple/internal/engine/tuplecheck"
	"singletuple/internal/shared/version"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const (
	sarifLevelDiagnostic = "warning"
	sarifLevelFailure    = "error"

	// ruleIDParseFailure marks files the checker could not read or parse.
	ruleIDParseFailure = "STC000"
)

// SARIFGenerator builds a SARIF v2.1.0 document. URIs are the report's
// display paths, relative to the project root where possible.
type SARIFGenerator struct{}

func (g *SARIFGenerator) Generate(w io.Writer, report *ports.Report) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(tuplecheck.CheckerName, version.InformationURI)
	ver := version.Version
	run.Tool.Driver.Version = &ver

	run.AddRule(tuplecheck.RuleID).
		WithDescription(strings.TrimPrefix(tuplecheck.DefaultMessage, tuplecheck.RuleID+" ")).
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: sarifLevelDiagnostic})

	for _, f := range findings(report) {
		result := sarif.NewRuleResult(f.diag.RuleID).
			WithMessage(sarif.NewTextMessage(f.diag.Message)).
			WithLevel(sarifLevelDiagnostic).
			WithLocations([]*sarif.Location{location(f.path, f.diag.Line, f.diag.Column+1)})
		run.AddResult(result)
	}

	if report != nil && report.FailedCount() > 0 {
		run.AddRule(ruleIDParseFailure).
			WithDescription("file could not be read or parsed").
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: sarifLevelFailure})
		for _, f := range report.Files {
			if !f.Failed() {
				continue
			}
			result := sarif.NewRuleResult(ruleIDParseFailure).
				WithMessage(sarif.NewTextMessage(f.Err.Error())).
				WithLevel(sarifLevelFailure).
				WithLocations([]*sarif.Location{location(f.DisplayPath, 0, 0)})
			run.AddResult(result)
		}
	}

	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

func location(path string, line, column int) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path))
	if line > 0 {
		physical = physical.WithRegion(sarif.NewRegion().WithStartLine(line).WithStartColumn(column))
	}
	return sarif.NewLocation().WithPhysicalLocation(physical)
}
