// Package metrics exposes Prometheus instruments for the assessment pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chartbalance"

// Assessment outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeNoText = "no_text"
	OutcomeError  = "error"
)

// Metrics owns a private registry so tests and embedded hosts do not collide
// with the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	assessments    *prometheus.CounterVec
	resolvedPoints prometheus.Histogram
	scanFiles      *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers every instrument plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Chart assessments by origin and outcome.",
		}, []string{"origin", "outcome"}),
		resolvedPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolved_points",
			Help:      "Number of chart points resolved per assessment.",
			Buckets:   prometheus.LinearBuckets(0, 1, 9),
		}),
		scanFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inbox",
			Name:      "files_total",
			Help:      "Inbox files handled by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.assessments, m.resolvedPoints, m.scanFiles, m.httpRequests, m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAssessment counts one assessment attempt. resolved is ignored unless
// outcome is OutcomeOK.
func (m *Metrics) ObserveAssessment(origin, outcome string, resolved int) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(origin, outcome).Inc()
	if outcome == OutcomeOK {
		m.resolvedPoints.Observe(float64(resolved))
	}
}

// ObserveScanFile counts one inbox file by where it ended up.
func (m *Metrics) ObserveScanFile(result string) {
	if m == nil {
		return
	}
	m.scanFiles.WithLabelValues(result).Inc()
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
