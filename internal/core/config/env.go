package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: SINGLETUPLE_[SECTION]_[KEY] (e.g., SINGLETUPLE_OUTPUT_FORMAT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Mode, "SINGLETUPLE_MODE")
	setEnvList(&cfg.Paths, "SINGLETUPLE_PATHS")
	setEnvInt(&cfg.Workers, "SINGLETUPLE_WORKERS")
	setEnvFloat64(&cfg.RateLimit, "SINGLETUPLE_RATE_LIMIT")

	// Output
	setEnvString(&cfg.Output.Format, "SINGLETUPLE_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "SINGLETUPLE_OUTPUT_PATH")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "SINGLETUPLE_WATCH_DEBOUNCE")

	// History
	setEnvBool(&cfg.History.Enabled, "SINGLETUPLE_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "SINGLETUPLE_HISTORY_PATH")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddress, "SINGLETUPLE_OBSERVABILITY_METRICS_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "SINGLETUPLE_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvString(&cfg.Observability.ServiceName, "SINGLETUPLE_OBSERVABILITY_SERVICE_NAME")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

// setEnvList splits on the OS path list separator.
func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = strings.Split(val, string(os.PathListSeparator))
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
