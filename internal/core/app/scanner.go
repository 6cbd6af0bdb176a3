package app

import (
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"singletuple/internal/core/app/helpers"
	"singletuple/internal/shared/util"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover lists the Python files under the configured targets.
func (a *App) Discover() ([]string, error) {
	return a.ScanDirectories(a.Paths.Targets)
}

// ScanDirectories walks paths and returns the files accepted by the include
// and exclude patterns, sorted and deduplicated. A path naming a file is
// taken as is.
func (a *App) ScanDirectories(paths []string) ([]string, error) {
	seen := make(map[string]bool)

	for _, root := range helpers.UniqueScanRoots(paths) {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			seen[root] = true
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && a.excludedDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if a.accepts(root, path) {
				seen[path] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	files := slices.Sorted(maps.Keys(seen))
	slog.Debug("discovered files", "count", len(files))
	return files, nil
}

func (a *App) excludedDir(path string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return helpers.MatchAny(a.excludeDirs, filepath.Base(path))
}

// accepts applies the file filters to a path found under root.
func (a *App) accepts(root, path string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if helpers.MatchAny(a.excludeFiles, filepath.Base(path)) {
		return false
	}
	rel := a.patternPath(root, path)
	for _, pattern := range a.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// inExcludedDir reports whether any directory between root and path is
// excluded.
func (a *App) inExcludedDir(root, path string) bool {
	dir := filepath.Dir(path)
	for dir != root {
		if a.excludedDir(dir) {
			return true
		}
		next := filepath.Dir(dir)
		if next == dir {
			break
		}
		dir = next
	}
	return false
}

// patternPath is the slash-separated path include patterns match against:
// relative to the project root, or to the scan root for paths outside it.
func (a *App) patternPath(root, path string) string {
	if rel, ok := util.RelWithin(a.Paths.ProjectRoot, path); ok {
		return rel
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return util.SlashPath(rel)
	}
	return util.SlashPath(path)
}

// filterChanged keeps the paths that lie under a target and pass the
// filters, in sorted order.
func (a *App) filterChanged(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if isTarget(path, a.Paths.Targets) {
			out = append(out, path)
			continue
		}
		root, err := helpers.FindContainingRoot(path, a.Paths.Targets)
		if err != nil {
			continue
		}
		if a.inExcludedDir(root, path) || !a.accepts(root, path) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func isTarget(path string, targets []string) bool {
	for _, t := range targets {
		if filepath.Clean(t) == filepath.Clean(path) {
			return true
		}
	}
	return false
}
