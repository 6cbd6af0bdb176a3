package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHealth string

func (s staticHealth) Check(context.Context) HealthStatus {
	return HealthStatus{
		Status:     string(s),
		Timestamp:  time.Now().UTC(),
		Components: map[string]string{"parser": "ok"},
	}
}

func TestServer_Health(t *testing.T) {
	tests := []struct {
		status string
		code   int
	}{
		{"up", http.StatusOK},
		{"degraded", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			s := NewServer("127.0.0.1:0", staticHealth(tt.status))
			defer s.Stop(context.Background())

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, "ok", body.Components["parser"])
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	FilesCheckedTotal.WithLabelValues("clean").Inc()

	s := NewServer("127.0.0.1:0", staticHealth("up"))
	defer s.Stop(context.Background())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "singletuple_files_checked_total"))
}

func TestServer_RateLimitsPerClient(t *testing.T) {
	s := NewServer("127.0.0.1:0", staticHealth("up"))
	defer s.Stop(context.Background())
	handler := s.Handler()

	limited := false
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", staticHealth("up"))
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
