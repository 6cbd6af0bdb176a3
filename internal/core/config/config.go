package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"singletuple/internal/core/errors"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "singletuple.toml"

type Config struct {
	Version       int           `toml:"version"`
	Mode          string        `toml:"mode"`
	Paths         []string      `toml:"paths"`
	Include       []string      `toml:"include"`
	Exclude       Exclude       `toml:"exclude"`
	Workers       int           `toml:"workers"`
	RateLimit     float64       `toml:"rate_limit"` // files per second, 0 disables
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
	Color  *bool  `toml:"color"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	ServiceName    string `toml:"service_name"`
}

// DefaultConfig is the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "config file not found"), errors.CtxPath, path)
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read config"), errors.CtxPath, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return cfg, nil
}

// Parse decodes, defaults, and validates a TOML document. Environment
// overrides are applied between defaulting and validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errors.AddContext(
			errors.New(errors.CodeValidation, "unknown config keys: "+strings.Join(keys, ", ")),
			errors.CtxField, keys[0],
		)
	}

	applyDefaults(&cfg)
	ApplyEnvOverrides(&cfg)
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Mode) == "" {
		cfg.Mode = "broad"
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*.py"}
	}
	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = []string{".git", "__pycache__", ".venv", "venv", ".tox", "node_modules", "build", "dist"}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Color == nil {
		enabled := true
		cfg.Output.Color = &enabled
	}
	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = ".singletuple/history.db"
	}
	if cfg.History.BusyTimeout <= 0 {
		cfg.History.BusyTimeout = 5 * time.Second
	}
	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "singletuple"
	}
}

func normalize(cfg *Config) {
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Path = strings.TrimSpace(cfg.Output.Path)
	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
	cfg.Observability.MetricsAddress = strings.TrimSpace(cfg.Observability.MetricsAddress)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
	cfg.Paths = trimAll(cfg.Paths)
	cfg.Include = trimAll(cfg.Include)
	cfg.Exclude.Dirs = trimAll(cfg.Exclude.Dirs)
	cfg.Exclude.Files = trimAll(cfg.Exclude.Files)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ColorEnabled reports whether text output may use terminal styling.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}
