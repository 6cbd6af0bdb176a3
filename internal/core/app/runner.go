package app

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"singletuple/internal/core/ports"
	"singletuple/internal/shared/observability"
	"singletuple/internal/shared/util"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Check runs the rule over every discovered file.
func (a *App) Check(ctx context.Context) (*ports.Report, error) {
	files, err := a.Discover()
	if err != nil {
		return nil, err
	}
	report, err := a.run(ctx, files)
	if err != nil {
		return nil, err
	}
	report.Commit = HeadCommit(a.Paths.ProjectRoot)
	a.finish(ctx, report)
	return report, nil
}

// CheckFiles runs the rule over paths that pass the configured filters.
func (a *App) CheckFiles(ctx context.Context, paths []string) (*ports.Report, error) {
	report, err := a.run(ctx, a.filterChanged(paths))
	if err != nil {
		return nil, err
	}
	a.finish(ctx, report)
	return report, nil
}

// run checks files concurrently, bounded by the worker count and the rate
// limiter. Results come back in path order.
func (a *App) run(ctx context.Context, files []string) (*ports.Report, error) {
	cfg := a.Config()
	a.mu.RLock()
	limiter := a.limiter
	mode := a.rule.Policy().Mode
	a.mu.RUnlock()

	ctx, span := observability.StartSpan(ctx, "singletuple.run",
		attribute.Int("files", len(files)),
		attribute.String("mode", string(mode)),
	)
	defer span.End()

	started := time.Now()
	results := make([]ports.FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := limiter.Wait(gctx, 1); err != nil {
				return err
			}
			observability.ActiveWorkers.Inc()
			defer observability.ActiveWorkers.Dec()
			results[i] = a.CheckFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	duration := time.Since(started)
	observability.AnalysisDuration.WithLabelValues("run").Observe(duration.Seconds())

	report := &ports.Report{
		Mode:      mode,
		Root:      a.Paths.ProjectRoot,
		StartedAt: started.UTC(),
		Duration:  duration,
		Files:     results,
	}
	span.SetAttributes(attribute.Int("violations", report.ViolationCount()))
	slog.Debug("run complete",
		"files", len(files),
		"violations", report.ViolationCount(),
		"failed", report.FailedCount(),
		"duration", duration,
		"heap_mb", util.HeapObjectsMB(),
	)
	return report, nil
}

func (a *App) finish(ctx context.Context, report *ports.Report) {
	a.recordRun(ctx, report)
	a.setLastReport(report)
}
