// Package metrics holds the Prometheus collectors for the menu API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos_admin"

type Metrics struct {
	// MenuChanges counts change notifications by entity and action.
	MenuChanges *prometheus.CounterVec

	// NotifyFailures counts change fan-out failures by sink.
	NotifyFailures *prometheus.CounterVec

	// SnapshotCache counts catalog cache lookups by result (hit, miss, error, stale).
	SnapshotCache *prometheus.CounterVec

	// Resolutions counts resolved items by outcome (orderable, unavailable).
	Resolutions *prometheus.CounterVec

	// EventMatches counts resolutions where a TimeEvent applied.
	EventMatches *prometheus.CounterVec

	SnapshotLoadDuration prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		MenuChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_changes_total",
			Help:      "Menu configuration writes that triggered a change notification",
		}, []string{"entity", "action"}),

		NotifyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_failures_total",
			Help:      "Change notifications that failed to reach a sink",
		}, []string{"sink"}),

		SnapshotCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_total",
			Help:      "Catalog snapshot cache lookups",
		}, []string{"result"}),

		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Items run through the rule resolver",
		}, []string{"outcome"}),

		EventMatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_matches_total",
			Help:      "Resolutions where a time event adjusted the price",
		}, []string{"event_code"}),

		SnapshotLoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_load_duration_seconds",
			Help:      "Time to load an outlet catalog from Postgres",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		registry: reg,
	}
}

// RegisterClientGauge exposes the number of connected menu-feed terminals.
func (m *Metrics) RegisterClientGauge(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Connected menu feed websocket clients",
	}, func() float64 { return float64(count()) }))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
