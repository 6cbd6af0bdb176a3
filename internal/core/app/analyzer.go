package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"singletuple/internal/core/app/helpers"
	"singletuple/internal/core/errors"
	"singletuple/internal/core/ports"
	"singletuple/internal/engine/parser"
	"singletuple/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	outcomeClean      = "clean"
	outcomeViolations = "violations"
	outcomeSkipped    = "skipped"
	outcomeFailed     = "failed"
)

// CheckFile reads, parses, and checks one file. Read and parse failures are
// carried on the result; they never abort a run.
func (a *App) CheckFile(ctx context.Context, path string) ports.FileResult {
	rule := a.Rule()
	result := ports.FileResult{
		Path:        path,
		DisplayPath: helpers.DisplayPath(a.Paths.ProjectRoot, path),
	}

	ctx, span := observability.StartSpan(ctx, "singletuple.check_file", attribute.String("path", result.DisplayPath))
	defer span.End()
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("file").Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	content, err := os.ReadFile(path)
	if err != nil {
		result.Err = errors.AddContext(errors.Wrap(err, errors.CodeIO, "read source"), errors.CtxPath, path)
		a.recordFailure(span, result)
		return result
	}

	if parser.IsGeneratedFile(content) {
		slog.Debug("skipping generated file", "path", path)
		result.Skipped = true
		observability.FilesCheckedTotal.WithLabelValues(outcomeSkipped).Inc()
		span.SetAttributes(attribute.Bool("skipped", true))
		return result
	}

	parseStart := time.Now()
	unit, err := a.Frontend.Parse(result.DisplayPath, content)
	observability.ParsingDuration.Observe(time.Since(parseStart).Seconds())
	if err != nil {
		result.Err = err
		a.recordFailure(span, result)
		return result
	}

	for d := range rule.Check(unit) {
		result.Diagnostics = append(result.Diagnostics, d)
	}

	span.SetAttributes(attribute.Int("violations", len(result.Diagnostics)))
	if len(result.Diagnostics) == 0 {
		observability.FilesCheckedTotal.WithLabelValues(outcomeClean).Inc()
		return result
	}
	observability.FilesCheckedTotal.WithLabelValues(outcomeViolations).Inc()
	observability.ViolationsTotal.WithLabelValues(string(rule.Policy().Mode)).Add(float64(len(result.Diagnostics)))
	return result
}

func (a *App) recordFailure(span trace.Span, result ports.FileResult) {
	code, ok := errors.CodeOf(result.Err)
	if !ok {
		code = errors.CodeInternal
	}
	slog.Warn("failed to check file", "path", result.Path, "code", code, "error", result.Err)
	observability.FilesCheckedTotal.WithLabelValues(outcomeFailed).Inc()
	observability.ParseFailuresTotal.WithLabelValues(string(code)).Inc()
	span.RecordError(result.Err)
	span.SetStatus(codes.Error, string(code))
}
