// # internal/ui/report/formats/tsv.go
package formats

import (
	"fmt"
	"io"
	"strings"

	"singletuple/internal/core/ports"
)

type TSVGenerator struct{}

func (t *TSVGenerator) Generate(w io.Writer, report *ports.Report) error {
	var buf strings.Builder

	buf.WriteString("File\tLine\tColumn\tCode\tMessage\n")
	for _, f := range findings(report) {
		buf.WriteString(fmt.Sprintf("%s\t%d\t%d\t%s\t%s\n",
			tsvField(f.path), f.diag.Line, f.diag.Column+1, f.diag.RuleID, tsvField(f.diag.Message)))
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
