package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Open request outcomes recorded by RecordOpen
const (
	OpenSpawned        = "spawned"
	OpenRouted         = "routed"
	OpenNotFound       = "not_found"
	OpenNotImplemented = "not_implemented"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Process table metrics
	ProcessesRunning prometheus.Gauge
	ProcessesSpawned prometheus.Counter
	ProcessesKilled  prometheus.Counter
	OpenRequests     *prometheus.CounterVec

	// Compositor metrics
	WindowsOpen  prometheus.Gauge
	WindowEvents *prometheus.CounterVec

	// Control loop metrics
	LoopTasks        *prometheus.CounterVec
	LoopTaskDuration prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	registry  *prometheus.Registry
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON health endpoint
type Snapshot struct {
	Processes      int64   `json:"processes"`
	Spawned        int64   `json:"spawned"`
	Killed         int64   `json:"killed"`
	Windows        int64   `json:"windows"`
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	ActiveSockets  int64   `json:"active_sockets"`
	LoopTasksTotal int64   `json:"loop_tasks_total"`
}

// NewMetrics creates a metrics collector registered on reg. A nil registry
// gets a fresh one, so independent desktops (and tests) never collide on the
// global default registerer.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ProcessesRunning: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_processes_running",
				Help: "Number of running application instances",
			},
		),
		ProcessesSpawned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_processes_spawned_total",
				Help: "Total number of application instances created",
			},
		),
		ProcessesKilled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_processes_killed_total",
				Help: "Total number of application instances killed",
			},
		),
		OpenRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_open_requests_total",
				Help: "Open requests by outcome",
			},
			[]string{"result"},
		),

		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of open compositor windows",
			},
		),
		WindowEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_events_total",
				Help: "Compositor window events by type",
			},
			[]string{"event"},
		),

		LoopTasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_loop_tasks_total",
				Help: "Tasks executed by the control loop",
			},
			[]string{"status"},
		),
		LoopTaskDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "desktop_loop_task_duration_seconds",
				Help:    "Control loop task duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_websocket_connections",
				Help: "Number of active websocket event streams",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_websocket_messages_total",
				Help: "Websocket frames sent by type",
			},
			[]string{"type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "desktop_uptime_seconds",
			Help: "Seconds since the desktop booted",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOpen records the outcome of an open request
func (m *Metrics) RecordOpen(result string) {
	m.OpenRequests.WithLabelValues(result).Inc()
}

// RecordSpawn records a newly created application instance
func (m *Metrics) RecordSpawn(running int) {
	m.ProcessesSpawned.Inc()
	m.ProcessesRunning.Set(float64(running))

	m.mu.Lock()
	m.snapshot.Spawned++
	m.snapshot.Processes = int64(running)
	m.mu.Unlock()
}

// RecordKill records a killed application instance
func (m *Metrics) RecordKill(running int) {
	m.ProcessesKilled.Inc()
	m.ProcessesRunning.Set(float64(running))

	m.mu.Lock()
	m.snapshot.Killed++
	m.snapshot.Processes = int64(running)
	m.mu.Unlock()
}

// RecordWindowEvent records a compositor event and the resulting window count
func (m *Metrics) RecordWindowEvent(event string, open int) {
	m.WindowEvents.WithLabelValues(event).Inc()
	m.WindowsOpen.Set(float64(open))

	m.mu.Lock()
	m.snapshot.Windows = int64(open)
	m.mu.Unlock()
}

// RecordLoopTask records one control loop task
func (m *Metrics) RecordLoopTask(status string, duration time.Duration) {
	m.LoopTasks.WithLabelValues(status).Inc()
	m.LoopTaskDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.LoopTasksTotal++
	m.mu.Unlock()
}

// RecordWSMessage records a websocket frame
func (m *Metrics) RecordWSMessage(msgType string) {
	m.WSMessages.WithLabelValues(msgType).Inc()
}

// IncWSConnections increments websocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveSockets++
	m.mu.Unlock()
}

// DecWSConnections decrements websocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveSockets--
	m.mu.Unlock()
}

// Snapshot returns the current values for the JSON API
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
