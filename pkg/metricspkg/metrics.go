// Package metricspkg collects Prometheus metrics of the bookstore.
package metricspkg

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of wallet operations.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Collector holds the application metrics on a private registry.
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	purchases       *prometheus.CounterVec
	topUps          *prometheus.CounterVec
	permissionDeny  *prometheus.CounterVec
}

// New returns a Collector with all metrics registered.
func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to handle an HTTP request",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		purchases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "book_purchases_total",
			Help: "Book purchase attempts by outcome",
		}, []string{"outcome"}),
		topUps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_top_ups_total",
			Help: "Wallet top-up attempts by outcome",
		}, []string{"outcome"}),
		permissionDeny: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "permission_denied_total",
			Help: "Requests rejected by the permission policy",
		}, []string{"method", "reason"}),
	}
}

// ObserveRequest records a finished HTTP request.
func (c *Collector) ObserveRequest(method, route, status string, d time.Duration) {
	c.requests.WithLabelValues(method, route, status).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncPurchase counts a purchase attempt with the given outcome.
func (c *Collector) IncPurchase(outcome string) {
	c.purchases.WithLabelValues(outcome).Inc()
}

// IncTopUp counts a top-up attempt with the given outcome.
func (c *Collector) IncTopUp(outcome string) {
	c.topUps.WithLabelValues(outcome).Inc()
}

// IncPermissionDenied counts a request rejected by the permission policy.
func (c *Collector) IncPermissionDenied(method, reason string) {
	c.permissionDeny.WithLabelValues(method, reason).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
