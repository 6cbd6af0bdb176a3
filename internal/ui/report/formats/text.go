// # internal/ui/report/formats/text.go
package formats

import (
	"fmt"
	"io"
	"strings"

	"singletuple/internal/core/ports"

	"github.com/charmbracelet/lipgloss"
)

var (
	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))
)

// TextGenerator prints one flake8-style line per diagnostic:
// path:line:col: message, with a 1-based column.
type TextGenerator struct {
	color bool
}

func NewTextGenerator(color bool) *TextGenerator {
	return &TextGenerator{color: color}
}

func (g *TextGenerator) Generate(w io.Writer, report *ports.Report) error {
	for _, f := range findings(report) {
		line := fmt.Sprintf("%s:%s %s\n",
			g.render(pathStyle, f.path),
			g.render(positionStyle, fmt.Sprintf("%d:%d:", f.diag.Line, f.diag.Column+1)),
			g.message(f.diag.Message),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Summary is the closing line of a text run.
func (g *TextGenerator) Summary(report *ports.Report) string {
	violations := report.ViolationCount()
	failed := report.FailedCount()

	var b strings.Builder
	if violations == 0 {
		b.WriteString(g.render(successStyle, fmt.Sprintf("No issues found in %d files", report.CheckedCount())))
	} else {
		b.WriteString(g.render(codeStyle, fmt.Sprintf("Found %d %s in %d files", violations, plural(violations, "issue", "issues"), report.CheckedCount())))
	}
	if failed > 0 {
		b.WriteString(g.render(warnStyle, fmt.Sprintf(" (%d %s could not be checked)", failed, plural(failed, "file", "files"))))
	}
	return b.String()
}

// message styles the leading rule code when present.
func (g *TextGenerator) message(msg string) string {
	code, rest, ok := strings.Cut(msg, " ")
	if !ok || !g.color {
		return msg
	}
	return codeStyle.Render(code) + " " + rest
}

func (g *TextGenerator) render(style lipgloss.Style, s string) string {
	if !g.color {
		return s
	}
	return style.Render(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
