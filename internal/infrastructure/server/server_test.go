package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
)

func newServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	for _, fn := range mutate {
		fn(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s, err := NewServer(ctx, cfg)
	require.NoError(t, err)
	go s.Desktop().Run(ctx)
	t.Cleanup(func() {
		s.Close()
		cancel()
	})
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServesHealthWithTrace(t *testing.T) {
	s := newServer(t)

	w := get(s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get(tracing.HeaderTraceID))
}

func TestExposesPrometheusMetrics(t *testing.T) {
	s := newServer(t)
	get(s, "/processes")

	w := get(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "desktop_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/processes"`)

	w = get(s, "/metrics/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uptime_seconds")
}

func TestMetricsCanBeDisabled(t *testing.T) {
	s := newServer(t, func(cfg *config.Config) { cfg.Metrics.Enabled = false })

	assert.Equal(t, http.StatusNotFound, get(s, "/metrics").Code)
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.Burst = 1
	})

	assert.Equal(t, http.StatusOK, get(s, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(s, "/").Code)
}

func TestNewServerFailsOnBadManifest(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Desktop.Manifest = "/does/not/exist.yaml"

	_, err := NewServer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewServerRejectsUnknownLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "loud"

	_, err := NewServer(context.Background(), cfg)
	assert.Error(t, err)
}
