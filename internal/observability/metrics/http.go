package metrics

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsMiddleware returns a Gin middleware that records HTTP request
// metrics on the provided Prometheus registry:
//
//   - floumy_http_requests_total            (CounterVec)   — method, route, status
//   - floumy_http_request_duration_seconds  (HistogramVec) — method, route, status
//   - floumy_http_requests_in_flight        (Gauge)        — no labels
//
// The route label uses c.FullPath() (route template) so that path parameters
// like sprint IDs do not blow up label cardinality. A nil registry yields a
// no-op middleware.
func HTTPMetricsMiddleware(reg *prometheus.Registry) gin.HandlerFunc {
	if reg == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floumy_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "floumy_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	requestsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "floumy_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		},
	)

	reg.MustRegister(requestsTotal, requestDuration, requestsInFlight)

	return func(c *gin.Context) {
		// Metric recording must never take the request down with it.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[metrics] recovered from panic in HTTPMetricsMiddleware: %v", r)
			}
		}()

		requestsInFlight.Inc()
		defer requestsInFlight.Dec()
		start := time.Now()

		c.Next()

		elapsed := time.Since(start).Seconds()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		requestsTotal.WithLabelValues(method, route, status).Inc()
		requestDuration.WithLabelValues(method, route, status).Observe(elapsed)
	}
}
