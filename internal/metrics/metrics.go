package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	ordersPlaced  prometheus.Counter
	ordersRemoved prometheus.Counter
	prepOffset    prometheus.Histogram
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Order records inserted",
		}),
		ordersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_removed_total",
			Help: "Order records deleted",
		}),
		prepOffset: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_prep_offset_minutes",
			Help:    "Sampled time from order to ready",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.ordersPlaced,
		m.ordersRemoved,
		m.prepOffset,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderPlaced counts one inserted order and its sampled preparation offset.
func (m *Metrics) OrderPlaced(offset time.Duration) {
	m.ordersPlaced.Inc()
	m.prepOffset.Observe(offset.Minutes())
}

// OrderRemoved counts one deleted order.
func (m *Metrics) OrderRemoved() {
	m.ordersRemoved.Inc()
}
