// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// A [Registry] owns its own prometheus.Registry, so tests and embedded uses
// never clash with the global default. Register it at startup and expose
// [Registry.Handler] on the HTTP server:
//
//	reg := metrics.NewRegistry()
//	observability.SetLayoutHooks(reg)
//	observability.SetRenderHooks(reg)
//	observability.SetHTTPHooks(reg)
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/mindlayout/pkg/observability"
)

const namespace = "mindlayout"

// Registry holds all metrics of the application.
type Registry struct {
	// Layout metrics
	LayoutPassesTotal *prometheus.CounterVec
	LayoutRecomputed  *prometheus.HistogramVec
	LayoutDuration    *prometheus.HistogramVec
	LayoutMapNodes    prometheus.Gauge
	DiagnosticsTotal  *prometheus.CounterVec
	RendersTotal      *prometheus.CounterVec
	RenderDuration    *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPErrorsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	_ observability.LayoutHooks = (*Registry)(nil)
	_ observability.RenderHooks = (*Registry)(nil)
	_ observability.HTTPHooks   = (*Registry)(nil)
)

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initLayoutMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initLayoutMetrics() {
	f := promauto.With(r.registry)
	r.LayoutPassesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_passes_total",
			Help:      "Total number of layout validations that recomputed nodes",
		},
		[]string{"mode"},
	)
	r.LayoutRecomputed = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_recomputed_nodes",
			Help:      "Nodes recomputed per layout validation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"mode"},
	)
	r.LayoutDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout validation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"mode"},
	)
	r.LayoutMapNodes = f.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_map_nodes",
			Help:      "Number of nodes in the most recently validated map",
		},
	)
	r.DiagnosticsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_diagnostics_total",
			Help:      "Structural problems the layout worked around, by kind",
		},
		[]string{"kind"},
	)
	r.RendersTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of rendered documents",
		},
		[]string{"format", "status"},
	)
	r.RenderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Render latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)
	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	r.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
	r.HTTPErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of failed HTTP requests",
		},
		[]string{"method", "route"},
	)
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// OnLayoutStart implements observability.LayoutHooks.
func (r *Registry) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	r.LayoutMapNodes.Set(float64(nodeCount))
}

// OnLayoutComplete implements observability.LayoutHooks. Validations that
// found nothing dirty are not counted as passes.
func (r *Registry) OnLayoutComplete(_ context.Context, mode string, recomputed int, duration time.Duration) {
	if recomputed == 0 {
		return
	}
	r.LayoutPassesTotal.WithLabelValues(mode).Inc()
	r.LayoutRecomputed.WithLabelValues(mode).Observe(float64(recomputed))
	r.LayoutDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// OnDiagnostic implements observability.LayoutHooks.
func (r *Registry) OnDiagnostic(_ context.Context, kind string) {
	r.DiagnosticsTotal.WithLabelValues(kind).Inc()
}

// OnRenderStart implements observability.RenderHooks.
func (r *Registry) OnRenderStart(context.Context, string) {}

// OnRenderComplete implements observability.RenderHooks.
func (r *Registry) OnRenderComplete(_ context.Context, format string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.RendersTotal.WithLabelValues(format, status).Inc()
	r.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// OnError implements observability.HTTPHooks.
func (r *Registry) OnError(_ context.Context, method, route string, _ error) {
	r.HTTPErrorsTotal.WithLabelValues(method, route).Inc()
}
