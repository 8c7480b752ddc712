package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/perrymcmanis144/tabstray/internal/shared/types"
)

// Metrics holds all Prometheus metrics for the service. Each Metrics
// value carries its own registry so tests can construct them freely.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Store metrics
	DispatchesTotal *prometheus.CounterVec
	TabsOpen        *prometheus.GaugeVec
	SyncedTabs      prometheus.Gauge
	SelectedTabs    prometheus.Gauge

	// Session metrics
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// Sync metrics
	SyncRefreshes *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabstray_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tabstray_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		DispatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabstray_store_dispatches_total",
				Help: "Total number of dispatched store actions",
			},
			[]string{"action", "committed"},
		),
		TabsOpen: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tabstray_tabs_open",
				Help: "Number of open tabs per collection",
			},
			[]string{"collection"},
		),
		SyncedTabs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabstray_synced_tabs",
				Help: "Number of tabs projected from remote devices",
			},
		),
		SelectedTabs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabstray_selected_tabs",
				Help: "Number of tabs in the current selection",
			},
		),

		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tabstray_sessions_saved_total",
				Help: "Total number of sessions saved",
			},
		),
		SessionsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tabstray_sessions_restored_total",
				Help: "Total number of sessions restored",
			},
		),

		SyncRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabstray_sync_refreshes_total",
				Help: "Total number of synced-tab refresh attempts",
			},
			[]string{"status"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabstray_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabstray_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabstray_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	return m
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDispatch records a dispatched action and whether it committed a
// new snapshot or reduced to a no-op.
func (m *Metrics) RecordDispatch(action string, committed bool) {
	label := "false"
	if committed {
		label = "true"
	}
	m.DispatchesTotal.WithLabelValues(action, label).Inc()
}

// SetTrayStats updates the tab gauges from a committed snapshot.
func (m *Metrics) SetTrayStats(stats types.Stats) {
	m.TabsOpen.WithLabelValues(string(types.CollectionNormal)).Set(float64(stats.NormalTabs))
	m.TabsOpen.WithLabelValues(string(types.CollectionPrivate)).Set(float64(stats.PrivateTabs))
	m.SyncedTabs.Set(float64(stats.SyncedTabs))
	m.SelectedTabs.Set(float64(stats.Selected))
}

// RecordSyncRefresh records one synced-tab refresh attempt.
func (m *Metrics) RecordSyncRefresh(ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	m.SyncRefreshes.WithLabelValues(status).Inc()
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncSessionsSaved increments the sessions saved counter.
func (m *Metrics) IncSessionsSaved() { m.SessionsSaved.Inc() }

// IncSessionsRestored increments the sessions restored counter.
func (m *Metrics) IncSessionsRestored() { m.SessionsRestored.Inc() }

// IncWSConnections increments active WebSocket connections.
func (m *Metrics) IncWSConnections() { m.WSConnections.Inc() }

// DecWSConnections decrements active WebSocket connections.
func (m *Metrics) DecWSConnections() { m.WSConnections.Dec() }
