package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open creates or opens the history database at path. busyTimeout <= 0
// uses two seconds.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	if busyTimeout <= 0 {
		busyTimeout = 2 * time.Second
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		cleanPath, busyTimeout.Milliseconds())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores a run and its findings in one transaction. A run without an
// ID gets a fresh one; the stored ID is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, findings []Finding) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	err := s.withRetry("save run", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, started_at_utc, duration_ms, mode, root, commit_hash, file_count, failed_count, violation_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  started_at_utc=excluded.started_at_utc,
  duration_ms=excluded.duration_ms,
  mode=excluded.mode,
  root=excluded.root,
  commit_hash=excluded.commit_hash,
  file_count=excluded.file_count,
  failed_count=excluded.failed_count,
  violation_count=excluded.violation_count
`,
			run.ID,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.Duration.Milliseconds(),
			run.Mode,
			run.Root,
			run.CommitHash,
			run.FileCount,
			run.FailedCount,
			run.ViolationCount,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE run_id = ?`, run.ID); err != nil {
			_ = tx.Rollback()
			return err
		}
		for _, f := range findings {
			if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO findings (run_id, path, line, col, rule_id, message) VALUES (?, ?, ?, ?, ?, ?)
`, run.ID, f.Path, f.Line, f.Column, f.RuleID, f.Message); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, `
SELECT id, started_at_utc, duration_ms, mode, root, commit_hash, file_count, failed_count, violation_count
FROM runs
ORDER BY started_at_utc DESC, id ASC
LIMIT ?
`, limit)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			startedRaw string
			durationMS int64
			run        Run
		)
		if err := rows.Scan(
			&run.ID,
			&startedRaw,
			&durationMS,
			&run.Mode,
			&run.Root,
			&run.CommitHash,
			&run.FileCount,
			&run.FailedCount,
			&run.ViolationCount,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		started, err := time.Parse(time.RFC3339Nano, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", startedRaw, err)
		}
		run.StartedAt = started.UTC()
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// Findings returns the findings of one run ordered by position.
func (s *Store) Findings(ctx context.Context, runID string) ([]Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	err := s.withRetry("load findings", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, `
SELECT run_id, path, line, col, rule_id, message
FROM findings
WHERE run_id = ?
ORDER BY path ASC, line ASC, col ASC
`, runID)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	findings := make([]Finding, 0)
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.RunID, &f.Path, &f.Line, &f.Column, &f.RuleID, &f.Message); err != nil {
			return nil, fmt.Errorf("scan finding row: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finding rows: %w", err)
	}
	return findings, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
