// Package metrics exports Prometheus metrics for coloring runs, cache
// lookups and HTTP requests.
//
// The collectors register with the default registry on import. Wire them
// into the observability hooks at startup:
//
//	observability.SetColonyHooks(metrics.ColonyHooks{})
//	observability.SetCacheHooks(metrics.CacheHooks{})
//	observability.SetRenderHooks(metrics.RenderHooks{})
//	observability.SetHTTPHooks(metrics.HTTPHooks{})
//
// and serve them with [Handler].
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/antcolor/pkg/observability"
)

const namespace = "antcolor"

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "runs_total",
		Help:      "Coloring runs by outcome",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "run_duration_seconds",
		Help:      "Wall time of finished coloring runs",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
	})

	RunColors = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "colors",
		Help:      "Colors used by the best coloring of each run",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	IterationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "iterations_total",
		Help:      "Colony rounds executed",
	})

	ImprovementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "improvements_total",
		Help:      "Rounds that lowered the best color count",
	})

	GraphVertices = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "colony",
		Name:      "graph_vertices",
		Help:      "Vertex count of colored graphs",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups by key type and result",
	}, []string{"key_type", "result"})

	CacheWrittenBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "written_bytes_total",
		Help:      "Bytes written to the cache by key type",
	}, []string{"key_type"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Artifact render time by format",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format", "status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }

// ColonyHooks records run metrics.
type ColonyHooks struct{}

func (ColonyHooks) OnRunStart(_ context.Context, _ string, vertices, _ int) {
	GraphVertices.Observe(float64(vertices))
}

func (ColonyHooks) OnIteration(_ context.Context, _ string, _, _ int, improved bool) {
	IterationsTotal.Inc()
	if improved {
		ImprovementsTotal.Inc()
	}
}

func (ColonyHooks) OnRunComplete(_ context.Context, _ string, colors int, d time.Duration, err error) {
	if err != nil {
		RunsTotal.WithLabelValues("error").Inc()
		return
	}
	RunsTotal.WithLabelValues("ok").Inc()
	RunDuration.Observe(d.Seconds())
	RunColors.Observe(float64(colors))
}

// CacheHooks records cache hit ratios.
type CacheHooks struct{}

func (CacheHooks) OnCacheHit(_ context.Context, keyType string) {
	CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (CacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (CacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

// RenderHooks records render latency.
type RenderHooks struct{}

func (RenderHooks) OnRenderStart(context.Context, string) {}

func (RenderHooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RenderDuration.WithLabelValues(format, status).Observe(d.Seconds())
}

// HTTPHooks records request counts and latency.
type HTTPHooks struct{}

func (HTTPHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Register installs every hook set in the observability registry.
func Register() {
	observability.SetColonyHooks(ColonyHooks{})
	observability.SetCacheHooks(CacheHooks{})
	observability.SetRenderHooks(RenderHooks{})
	observability.SetHTTPHooks(HTTPHooks{})
}

var (
	_ observability.ColonyHooks = ColonyHooks{}
	_ observability.CacheHooks  = CacheHooks{}
	_ observability.RenderHooks = RenderHooks{}
	_ observability.HTTPHooks   = HTTPHooks{}
)
