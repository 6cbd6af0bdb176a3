package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"singletuple/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
mode = "strict"
paths = ["./src", "./tests"]
include = ["src/**/*.py"]
workers = 3
rate_limit = 50.0

[exclude]
dirs = ["migrations"]
files = ["*_pb2.py"]

[output]
format = "SARIF"
path = "report.sarif"

[watch]
debounce = "1s"

[history]
enabled = true
path = "state/history.db"

[observability]
metrics_address = "127.0.0.1:9464"
service_name = "lint"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, []string{"./src", "./tests"}, cfg.Paths)
	assert.Equal(t, []string{"src/**/*.py"}, cfg.Include)
	assert.Equal(t, 3, cfg.Workers)
	assert.InDelta(t, 50.0, cfg.RateLimit, 0.001)
	assert.Equal(t, []string{"migrations"}, cfg.Exclude.Dirs)
	assert.Equal(t, []string{"*_pb2.py"}, cfg.Exclude.Files)
	assert.Equal(t, "sarif", cfg.Output.Format)
	assert.Equal(t, "report.sarif", cfg.Output.Path)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "state/history.db", cfg.History.Path)
	assert.Equal(t, "127.0.0.1:9464", cfg.Observability.MetricsAddress)
	assert.Equal(t, "lint", cfg.Observability.ServiceName)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "broad", cfg.Mode)
	assert.Equal(t, []string{"."}, cfg.Paths)
	assert.Equal(t, []string{"**/*.py"}, cfg.Include)
	assert.Contains(t, cfg.Exclude.Dirs, "__pycache__")
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.ColorEnabled())
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "singletuple", cfg.Observability.ServiceName)
	require.NoError(t, Validate(cfg))
}

func TestLoad_EmptyExcludeDirsIsKept(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[exclude]\ndirs = []\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Exclude.Dirs)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"malformed toml", "bad = toml = format", ""},
		{"unknown key", "colour = true\n", "colour"},
		{"unknown mode", `mode = "loose"`, "mode"},
		{"bad version", "version = 3\n", "version"},
		{"bad format", "[output]\nformat = \"xml\"\n", "output.format"},
		{"bad workers", "workers = 1000\n", "workers"},
		{"negative rate", "rate_limit = -1.0\n", "rate_limit"},
		{"bad include", "include = [\"src/[a\"]\n", "include"},
		{"bad exclude", "[exclude]\nfiles = [\"[a\"]\n", "exclude.files"},
		{"bad debounce", "[watch]\ndebounce = \"1ms\"\n", "watch.debounce"},
		{"bad metrics address", "[observability]\nmetrics_address = \"9464\"\n", "observability.metrics_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeValidation), "got %v", err)
			if tt.field == "" {
				return
			}
			var domainErr *errors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.field, domainErr.Context[errors.CtxField])
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SINGLETUPLE_MODE", "strict")
	t.Setenv("SINGLETUPLE_WORKERS", "2")
	t.Setenv("SINGLETUPLE_OUTPUT_FORMAT", "json")
	t.Setenv("SINGLETUPLE_WATCH_DEBOUNCE", "250ms")
	t.Setenv("SINGLETUPLE_HISTORY_ENABLED", "TRUE")
	t.Setenv("SINGLETUPLE_RATE_LIMIT", "not-a-number")
	t.Setenv("SINGLETUPLE_PATHS", "a"+string(os.PathListSeparator)+"b")

	cfg, err := Load(writeConfig(t, t.TempDir(), "workers = 8\n"))
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.True(t, cfg.History.Enabled)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, []string{"a", "b"}, cfg.Paths)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	cfg, source, err := Discover("", dir)
	require.NoError(t, err)
	assert.Empty(t, source)
	assert.Equal(t, "broad", cfg.Mode)

	path := writeConfig(t, dir, `mode = "strict"`)
	cfg, source, err = Discover("", dir)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "strict", cfg.Mode)

	_, _, err = Discover(filepath.Join(dir, "other.toml"), dir)
	assert.Error(t, err)
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	src := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(src, 0o755))

	cfg := DefaultConfig()
	cfg.Output.Path = "out/report.json"

	resolved, err := ResolvePaths(cfg, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), resolved.ProjectRoot)
	assert.Equal(t, []string{src}, resolved.Targets)
	assert.Equal(t, filepath.Join(root, ".singletuple", "history.db"), resolved.HistoryPath)
	assert.Equal(t, filepath.Join(src, "out", "report.json"), resolved.OutputPath)

	_, err = ResolvePaths(cfg, " ")
	assert.Error(t, err)
}

func TestResolveRelative(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "base")
	assert.Equal(t, base, ResolveRelative(base, ""))
	assert.Equal(t, filepath.Join(base, "a"), ResolveRelative(base, "a"))
	abs := filepath.Join(string(filepath.Separator), "abs", "x")
	assert.Equal(t, abs, ResolveRelative(base, abs))
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `mode = "broad"`)

	reloaded := make(chan *Config, 1)
	w := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`mode = "strict"`), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "strict", cfg.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
