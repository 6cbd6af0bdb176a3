// # internal/ui/report/formats/formats.go
package formats

import (
	"fmt"
	"io"
	"sort"

	"singletuple/internal/core/ports"
	"singletuple/internal/engine/tuplecheck"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTSV   = "tsv"
	FormatSARIF = "sarif"
)

// Options tune rendering. Color only affects the text format.
type Options struct {
	Color bool
}

// Generator renders a report to w.
type Generator interface {
	Generate(w io.Writer, report *ports.Report) error
}

// New returns the generator for format.
func New(format string, opts Options) (Generator, error) {
	switch format {
	case FormatText, "":
		return NewTextGenerator(opts.Color), nil
	case FormatJSON:
		return &JSONGenerator{}, nil
	case FormatTSV:
		return &TSVGenerator{}, nil
	case FormatSARIF:
		return &SARIFGenerator{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

type finding struct {
	path string
	diag tuplecheck.Diagnostic
}

// findings flattens a report in path, line, column order.
func findings(report *ports.Report) []finding {
	if report == nil {
		return nil
	}
	out := make([]finding, 0, report.ViolationCount())
	for _, f := range report.Files {
		for _, d := range f.Diagnostics {
			out = append(out, finding{path: f.DisplayPath, diag: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.diag.Line != b.diag.Line {
			return a.diag.Line < b.diag.Line
		}
		return a.diag.Column < b.diag.Column
	})
	return out
}
