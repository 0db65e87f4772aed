package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors on a private registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	decisions       *prometheus.CounterVec
	commitConflicts prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	notifyFailures  prometheus.Counter
}

func New() *Registry {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_decisions_total",
		Help: "Availability decisions by kind",
	}, []string{"kind"})

	commitConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_commit_conflicts_total",
		Help: "Bookings rejected at commit because the table was taken after the check",
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_cache_lookups_total",
		Help: "Booking snapshot cache lookups by result",
	}, []string{"result"})

	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_notify_failures_total",
		Help: "Customer notifications that could not be handed to the broker",
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		decisions,
		commitConflicts,
		cacheLookups,
		notifyFailures,
		collectors.NewGoCollector(),
	)

	return &Registry{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		decisions:       decisions,
		commitConflicts: commitConflicts,
		cacheLookups:    cacheLookups,
		notifyFailures:  notifyFailures,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Registry) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Gatherer returns the underlying registry, mainly for tests.
func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Registry) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordDecision counts one availability decision.
func (m *Registry) RecordDecision(kind string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(kind).Inc()
}

func (m *Registry) RecordCommitConflict() {
	if m == nil {
		return
	}
	m.commitConflicts.Inc()
}

func (m *Registry) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Registry) RecordNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}

// Middleware records request metrics labelled by the matched route.
func Middleware(m *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
