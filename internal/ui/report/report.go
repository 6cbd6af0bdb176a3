package report

import (
	"bytes"
	"fmt"
	"io"

	"singletuple/internal/core/ports"
	"singletuple/internal/shared/util"
	"singletuple/internal/ui/report/formats"
)

// Destination describes where and how a run is rendered.
type Destination struct {
	Format string
	Path   string // empty writes to Stdout
	Color  bool
	Stdout io.Writer
	Stderr io.Writer
}

// Emit renders r. Text output to the terminal ends with a summary line on
// Stderr; file output is written in full or not at all.
func Emit(r *ports.Report, dest Destination) error {
	color := dest.Color && dest.Path == ""
	gen, err := formats.New(dest.Format, formats.Options{Color: color})
	if err != nil {
		return err
	}

	if dest.Path != "" {
		var buf bytes.Buffer
		if err := gen.Generate(&buf, r); err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(dest.Path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write report %q: %w", dest.Path, err)
		}
		return nil
	}

	if err := gen.Generate(dest.Stdout, r); err != nil {
		return err
	}
	if text, ok := gen.(*formats.TextGenerator); ok && dest.Stderr != nil {
		if _, err := fmt.Fprintln(dest.Stderr, text.Summary(r)); err != nil {
			return err
		}
	}
	return nil
}
