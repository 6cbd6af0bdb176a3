package app

import (
	"context"
	"fmt"
	"time"

	"singletuple/internal/shared/observability"
)

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) observability.HealthStatus {
	status := observability.HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app.Frontend != nil {
		status.Components["parser"] = "ok"
	} else {
		status.Status = "degraded"
		status.Components["parser"] = "missing"
	}

	if rule := s.app.Rule(); rule != nil {
		status.Components["rule"] = fmt.Sprintf("ok (%s)", rule.Policy().Mode)
	} else {
		status.Status = "degraded"
		status.Components["rule"] = "missing"
	}

	cfg := s.app.Config()
	s.app.mu.RLock()
	historyReady := s.app.history != nil
	s.app.mu.RUnlock()
	switch {
	case historyReady:
		status.Components["history"] = "ok"
	case cfg != nil && cfg.History.Enabled:
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	if last := s.app.LastReport(); last != nil {
		status.Components["last_run"] = fmt.Sprintf("%d files, %d violations, %d failed",
			len(last.Files), last.ViolationCount(), last.FailedCount())
	}
	return status
}
