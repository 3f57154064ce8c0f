package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of one desktop process. Every
// instance owns its registry, so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Window metrics
	WindowsOpen    prometheus.Gauge
	WindowsCreated prometheus.Counter

	// File system metrics
	FSOperations *prometheus.CounterVec

	// Spreadsheet metrics
	SheetRecalcs        prometheus.Counter
	SheetRecalcDuration prometheus.Histogram
	SheetCycleCells     prometheus.Gauge

	// Registry metrics
	RegistryApps prometheus.Gauge
	AppLaunches  *prometheus.CounterVec

	// Event stream metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
	EventsDropped prometheus.Counter

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	// Snapshot for the JSON health endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	WindowsOpen       int64   `json:"windows_open"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"-"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector with a fresh registry that also
// carries the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumin_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumin_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_service_calls_total",
				Help: "Total number of component calls",
			},
			[]string{"service", "method", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumin_service_duration_seconds",
				Help:    "Component call duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "method"},
		),
		ServiceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_service_errors_total",
				Help: "Total number of component errors",
			},
			[]string{"service", "method", "error_type"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lumin_windows_open",
				Help: "Number of windows currently held by the window manager",
			},
		),
		WindowsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lumin_windows_created_total",
				Help: "Total number of windows created",
			},
		),

		// File system metrics
		FSOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_vfs_operations_total",
				Help: "Total number of virtual file system operations",
			},
			[]string{"op", "status"},
		),

		// Spreadsheet metrics
		SheetRecalcs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lumin_sheet_recalcs_total",
				Help: "Total number of full spreadsheet recalculations",
			},
		),
		SheetRecalcDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lumin_sheet_recalc_duration_seconds",
				Help:    "Spreadsheet recalculation duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
		),
		SheetCycleCells: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lumin_sheet_cycle_cells",
				Help: "Number of cells on a reference cycle after the last recalculation",
			},
		),

		// Registry metrics
		RegistryApps: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lumin_registry_apps",
				Help: "Number of apps in the registry",
			},
		),
		AppLaunches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_app_launches_total",
				Help: "Total number of app launches",
			},
			[]string{"app"},
		),

		// Event stream metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lumin_ws_connections",
				Help: "Number of active event stream connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumin_ws_messages_total",
				Help: "Total number of event stream messages",
			},
			[]string{"direction", "type"},
		),
		EventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lumin_events_dropped_total",
				Help: "Events dropped because a subscriber was too slow",
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "lumin_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry to expose through promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordServiceCall records a component call
func (m *Metrics) RecordServiceCall(service, method, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, method, status).Inc()
	m.ServiceDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordServiceError records a component error
func (m *Metrics) RecordServiceError(service, method, errorType string) {
	m.ServiceErrors.WithLabelValues(service, method, errorType).Inc()
}

// IncWindowsCreated increments the windows created counter
func (m *Metrics) IncWindowsCreated() {
	m.WindowsCreated.Inc()
}

// SetWindowsOpen sets the number of windows held by the window manager
func (m *Metrics) SetWindowsOpen(count int) {
	m.WindowsOpen.Set(float64(count))
	m.mu.Lock()
	m.snapshot.WindowsOpen = int64(count)
	m.mu.Unlock()
}

// RecordFSOperation records a file system operation outcome
func (m *Metrics) RecordFSOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.FSOperations.WithLabelValues(op, status).Inc()
}

// RecordSheetRecalc records one full spreadsheet recalculation
func (m *Metrics) RecordSheetRecalc(duration time.Duration, cycleCells int) {
	m.SheetRecalcs.Inc()
	m.SheetRecalcDuration.Observe(duration.Seconds())
	m.SheetCycleCells.Set(float64(cycleCells))
}

// SetRegistryApps sets the number of apps in registry
func (m *Metrics) SetRegistryApps(count int) {
	m.RegistryApps.Set(float64(count))
}

// IncAppLaunches counts a launch of app
func (m *Metrics) IncAppLaunches(app string) {
	m.AppLaunches.WithLabelValues(app).Inc()
}

// RecordWSMessage records an event stream message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments event stream connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements event stream connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// IncEventsDropped counts an event a subscriber did not receive
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Inc()
}

// Snapshot returns the current summary values.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AverageLatencyMs = s.TotalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
