// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hinglaj_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hinglaj_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// AuthAttempts counts token verifications by the auth middleware.
	AuthAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hinglaj_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	// AuthFailures counts rejected credentials.
	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hinglaj_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		},
	)

	// OrdersCreated counts successfully placed orders.
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hinglaj_orders_created_total",
			Help: "Total number of orders placed",
		},
	)
)
