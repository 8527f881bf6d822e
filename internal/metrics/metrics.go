// Package metrics collects and exposes Prometheus metrics for the HTTP layer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers per-route HTTP metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates a Collector with its own registry, so tests can
// instantiate it repeatedly without duplicate registration panics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fitness_tracker_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fitness_tracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	c.registry.MustRegister(c.requests, c.duration)
	return c
}

// RecordRequest counts one finished request and observes its latency.
func (c *Collector) RecordRequest(method, path, status string, elapsed time.Duration) {
	c.requests.WithLabelValues(method, path, status).Inc()
	c.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler serves the collected metrics in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
