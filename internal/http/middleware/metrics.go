// Package middleware provides HTTP middleware shared across modules.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsDistributed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_distributed_total",
			Help: "Total number of leads assigned by distribution runs",
		},
		[]string{"action"},
	)

	distributionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distribution_runs_total",
			Help: "Total number of distribution requests by outcome",
		},
		[]string{"action", "outcome"},
	)
)

// Metrics records request counts and latencies per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// FullPath keeps the route template so label cardinality stays bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordDistribution tracks the outcome of a distribution or repescagem run.
func RecordDistribution(action, outcome string, assigned int) {
	distributionRuns.WithLabelValues(action, outcome).Inc()
	if assigned > 0 {
		leadsDistributed.WithLabelValues(action).Add(float64(assigned))
	}
}
