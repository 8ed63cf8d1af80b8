// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/ddms-api/internal/domain/enum"
)

// Metrics is the set of collectors the API updates.
type Metrics struct {
	requests    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ddms",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ddms",
			Name:      "receipt_transitions_total",
			Help:      "Accepted receipt state transitions.",
		}, []string{"from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ddms",
			Name:      "receipt_transitions_rejected_total",
			Help:      "Receipt state transitions refused by the lifecycle.",
		}, []string{"from", "to"}),
	}
	reg.MustRegister(m.requests, m.transitions, m.rejected)
	return m
}

// ObserveTransition counts an accepted transition.
func (m *Metrics) ObserveTransition(from, to enum.ReceiptState) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveRejected counts a transition the lifecycle refused.
func (m *Metrics) ObserveRejected(from, to enum.ReceiptState) {
	m.rejected.WithLabelValues(string(from), string(to)).Inc()
}

// Middleware records request latency. Unmatched routes share one label
// so arbitrary paths cannot blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
