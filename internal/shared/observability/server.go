package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"singletuple/internal/shared/util"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthStatus is the body served on /health.
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// HealthChecker reports the current health of the process.
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

// Server exposes Prometheus metrics and a health endpoint. Each client IP
// is rate limited.
type Server struct {
	addr     string
	health   HealthChecker
	limiters *util.LimiterRegistry
	server   *http.Server
}

func NewServer(addr string, health HealthChecker) *Server {
	return &Server{
		addr:     addr,
		health:   health,
		limiters: util.NewLimiterRegistry(20, 40, 5*time.Minute),
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.health.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			slog.Debug("health response write failed", "error", err)
		}
	})

	return s.rateLimit(mux)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiters.Get(host).Allow(1) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("observability server starting", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	defer s.limiters.Close()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
