package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedPaths holds the configured locations made absolute against the
// project root.
type ResolvedPaths struct {
	ProjectRoot string
	Targets     []string
	HistoryPath string
	OutputPath  string
}

func ResolvePaths(cfg *Config, cwd string) (ResolvedPaths, error) {
	if strings.TrimSpace(cwd) == "" {
		return ResolvedPaths{}, fmt.Errorf("cwd must not be empty")
	}

	targets := make([]string, 0, len(cfg.Paths))
	for _, p := range cfg.Paths {
		targets = append(targets, ResolveRelative(cwd, p))
	}

	root, err := DetectProjectRoot(append(append([]string(nil), targets...), cwd))
	if err != nil {
		return ResolvedPaths{}, err
	}

	resolved := ResolvedPaths{
		ProjectRoot: filepath.Clean(root),
		Targets:     targets,
		HistoryPath: ResolveRelative(root, cfg.History.Path),
	}
	if cfg.Output.Path != "" {
		resolved.OutputPath = ResolveRelative(cwd, cfg.Output.Path)
	}
	return resolved, nil
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// DetectProjectRoot walks up from each candidate until a directory carrying a
// project marker is found, falling back to the working directory.
func DetectProjectRoot(candidates []string) (string, error) {
	markers := []string{
		DefaultFileName,
		".git",
		"pyproject.toml",
		"setup.cfg",
		"setup.py",
	}

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		root := abs
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			root = filepath.Dir(abs)
		}

		for {
			for _, marker := range markers {
				if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
					return filepath.Clean(root), nil
				}
			}
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Clean(cwd), nil
}

// Discover loads the config at path, or when path is empty the first of the
// default locations under cwd. With nothing found it returns DefaultConfig
// and an empty source.
func Discover(path, cwd string) (*Config, string, error) {
	if strings.TrimSpace(path) != "" {
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	for _, candidate := range []string{
		filepath.Join(cwd, DefaultFileName),
		filepath.Join(cwd, ".singletuple.toml"),
	} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := Load(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}
