package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"singletuple/internal/core/config"
	"singletuple/internal/core/ports"
	"singletuple/internal/core/watcher"
	"singletuple/internal/data/queue"
)

const (
	changeQueueCapacity = 64
	changeBatchSize     = 16
)

// Watch runs a full check, then rechecks changed files until ctx is done.
// When configPath is set, edits to it are applied to later runs.
func (a *App) Watch(ctx context.Context, configPath string, onReport func(*ports.Report)) error {
	report, err := a.Check(ctx)
	if err != nil {
		return err
	}
	onReport(report)

	// Change batches are queued so the fsnotify loop never waits on analysis.
	changes := queue.NewMemoryQueue[[]string](changeQueueCapacity)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		a.drainChanges(ctx, changes, onReport)
	}()
	defer func() {
		_ = changes.Close()
		<-drained
	}()

	cfg := a.Config()
	w, err := watcher.NewWatcher(
		cfg.Watch.Debounce,
		cfg.Exclude.Dirs,
		cfg.Exclude.Files,
		func(paths []string) {
			if changes.Enqueue(paths) == queue.EnqueueDropped {
				slog.Warn("change queue full, dropping batch", "count", len(paths))
			}
		},
	)
	if err != nil {
		return err
	}
	if err := w.Watch(a.Paths.Targets); err != nil {
		_ = w.Close()
		return err
	}
	defer w.Close()

	if configPath != "" {
		cw := config.NewWatcher(configPath, func(next *config.Config) {
			if err := a.Reconfigure(next); err != nil {
				slog.Warn("ignoring invalid config reload", "path", configPath, "error", err)
				return
			}
			w.SetDebounce(next.Watch.Debounce)
			slog.Info("config reloaded", "path", configPath, "mode", next.Mode)
			a.recheckAll(ctx, onReport)
		})
		if err := cw.Start(ctx); err != nil {
			slog.Warn("config watcher unavailable", "path", configPath, "error", err)
		} else {
			defer cw.Stop()
		}
	}

	<-ctx.Done()
	return nil
}

// drainChanges merges queued batches and rechecks them until the queue
// closes or ctx is done.
func (a *App) drainChanges(ctx context.Context, changes *queue.MemoryQueue[[]string], onReport func(*ports.Report)) {
	for {
		batches, err := changes.DequeueBatch(ctx, changeBatchSize, -1)
		if len(batches) > 0 {
			a.HandleChanges(ctx, mergeBatches(batches), onReport)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				slog.Warn("change queue failed", "error", err)
			}
			return
		}
	}
}

func mergeBatches(batches [][]string) []string {
	seen := make(map[string]bool)
	for _, batch := range batches {
		for _, p := range batch {
			seen[p] = true
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HandleChanges rechecks the changed paths and hands the report to onReport.
func (a *App) HandleChanges(ctx context.Context, paths []string, onReport func(*ports.Report)) {
	if ctx.Err() != nil {
		return
	}
	report, err := a.CheckFiles(ctx, paths)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("recheck failed", "error", err)
		}
		return
	}
	if len(report.Files) == 0 {
		return
	}
	onReport(report)
}

func (a *App) recheckAll(ctx context.Context, onReport func(*ports.Report)) {
	report, err := a.Check(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("recheck failed", "error", err)
		}
		return
	}
	onReport(report)
}
