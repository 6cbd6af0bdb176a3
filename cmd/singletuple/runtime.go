// # cmd/singletuple/runtime.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"singletuple/internal/core/app"
	"singletuple/internal/core/config"
	"singletuple/internal/data/history"
	"singletuple/internal/shared/observability"

	"github.com/urfave/cli/v2"
)

// runtime holds what a command needs and what must be torn down after it.
type runtime struct {
	cfg     *config.Config
	source  string
	app     *app.App
	closers []func(context.Context) error
}

func setupLogging(c *cli.Context) {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadConfig discovers the config file and applies flag overrides.
// Positional arguments replace the configured paths when withPaths is set.
func loadConfig(c *cli.Context, withPaths bool) (*config.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	cfg, source, err := config.Discover(c.String("config"), cwd)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("output") {
		cfg.Output.Path = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.Bool("no-color") {
		disabled := false
		cfg.Output.Color = &disabled
	}
	if c.Bool("history") {
		cfg.History.Enabled = true
	}
	if withPaths && c.Args().Len() > 0 {
		cfg.Paths = c.Args().Slice()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	if source != "" {
		slog.Debug("config loaded", "path", source)
	}
	return cfg, source, nil
}

func setup(c *cli.Context) (*runtime, error) {
	setupLogging(c)
	cfg, source, err := loadConfig(c, true)
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	a, err := app.New(cfg, cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	rt := &runtime{cfg: cfg, source: source, app: a}

	if cfg.History.Enabled {
		store, err := history.Open(a.Paths.HistoryPath, cfg.History.BusyTimeout)
		if err != nil {
			slog.Warn("history disabled", "path", a.Paths.HistoryPath, "error", err)
		} else {
			a.SetHistory(store)
			rt.closers = append(rt.closers, func(context.Context) error { return store.Close() })
		}
	}

	shutdownTracing, err := observability.InitTracing(c.Context, observability.TracingConfig{
		Endpoint:    cfg.Observability.OTLPEndpoint,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		slog.Warn("tracing disabled", "endpoint", cfg.Observability.OTLPEndpoint, "error", err)
	} else {
		rt.closers = append(rt.closers, shutdownTracing)
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		server := observability.NewServer(addr, app.NewHealthService(a))
		if err := server.Start(c.Context); err != nil {
			slog.Warn("metrics server disabled", "addr", addr, "error", err)
		} else {
			rt.closers = append(rt.closers, server.Stop)
		}
	}

	return rt, nil
}

// Close tears down in reverse setup order.
func (rt *runtime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			slog.Warn("shutdown step failed", "error", err)
		}
	}
}
