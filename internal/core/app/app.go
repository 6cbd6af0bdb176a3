package app

import (
	"fmt"
	"sync"

	"singletuple/internal/core/app/helpers"
	"singletuple/internal/core/config"
	"singletuple/internal/core/ports"
	"singletuple/internal/engine/parser"
	"singletuple/internal/engine/tuplecheck"
	"singletuple/internal/shared/util"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// App drives the rule over the configured paths.
type App struct {
	Paths    config.ResolvedPaths
	Frontend *parser.Frontend

	mu           sync.RWMutex
	cfg          *config.Config
	rule         *tuplecheck.Rule
	include      []string
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
	limiter      *util.Limiter

	history    ports.HistoryStore
	lastReport *ports.Report
}

// New resolves cfg against cwd and prepares the rule.
func New(cfg *config.Config, cwd string) (*App, error) {
	paths, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		return nil, err
	}
	a := &App{
		Paths:    paths,
		Frontend: parser.NewFrontend(),
	}
	if err := a.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Reconfigure swaps in cfg for subsequent runs. Target paths are fixed at
// construction.
func (a *App) Reconfigure(cfg *config.Config) error {
	mode, err := tuplecheck.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	for _, p := range cfg.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	excludeDirs, err := helpers.CompileGlobs(cfg.Exclude.Dirs, "exclude dir")
	if err != nil {
		return err
	}
	excludeFiles, err := helpers.CompileGlobs(cfg.Exclude.Files, "exclude file")
	if err != nil {
		return err
	}

	rule := tuplecheck.NewRule(tuplecheck.DefaultPolicy().WithMode(mode), a.Frontend)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.rule = rule
	a.include = append([]string(nil), cfg.Include...)
	a.excludeDirs = excludeDirs
	a.excludeFiles = excludeFiles
	a.limiter = util.NewLimiter(cfg.RateLimit, cfg.Workers)
	return nil
}

func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

func (a *App) Rule() *tuplecheck.Rule {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rule
}

// SetHistory enables run recording. A nil store disables it.
func (a *App) SetHistory(store ports.HistoryStore) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = store
}

// LastReport returns the most recent completed run, if any.
func (a *App) LastReport() *ports.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastReport
}

func (a *App) setLastReport(r *ports.Report) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastReport = r
}

var _ ports.CheckService = (*App)(nil)
