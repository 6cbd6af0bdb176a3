package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"singletuple/internal/core/errors"
	"singletuple/internal/engine/tuplecheck"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"text", "json", "tsv", "sarif"}

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	checks := []func(*Config) error{
		validateVersion,
		validateMode,
		validateWorkers,
		validatePatterns,
		validateOutput,
		validateWatch,
		validateHistory,
		validateObservability,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return errors.AddContext(errors.New(errors.CodeValidation, fmt.Sprintf(format, args...)), errors.CtxField, field)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return invalid("version", "unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateMode(cfg *Config) error {
	if _, err := tuplecheck.ParseMode(cfg.Mode); err != nil {
		return invalid("mode", "mode: %v", err)
	}
	return nil
}

func validateWorkers(cfg *Config) error {
	if cfg.Workers < 1 || cfg.Workers > 256 {
		return invalid("workers", "workers must be between 1 and 256, got %d", cfg.Workers)
	}
	if cfg.RateLimit < 0 {
		return invalid("rate_limit", "rate_limit must not be negative")
	}
	return nil
}

func validatePatterns(cfg *Config) error {
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return invalid("include", "include pattern %q is malformed", pattern)
		}
	}
	for _, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("exclude.dirs", "exclude.dirs pattern %q: %v", pattern, err)
		}
	}
	for _, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("exclude.files", "exclude.files pattern %q: %v", pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !slices.Contains(OutputFormats, cfg.Output.Format) {
		return invalid("output.format", "output.format must be one of: %s", strings.Join(OutputFormats, ", "))
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 10*time.Millisecond || cfg.Watch.Debounce > time.Minute {
		return invalid("watch.debounce", "watch.debounce must be between 10ms and 1m")
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && cfg.History.Path == "" {
		return invalid("history.path", "history.path must not be empty when history is enabled")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	addr := cfg.Observability.MetricsAddress
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return invalid("observability.metrics_address", "observability.metrics_address %q: %v", addr, err)
	}
	return nil
}
