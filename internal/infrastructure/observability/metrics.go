package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every Prometheus collector exposed by the service.
type Metrics struct {
	AuthorizationsTotal   *prometheus.CounterVec
	AuthorizationDuration *prometheus.HistogramVec
	GatewayDuration       prometheus.Histogram
	RefundsTotal          prometheus.Counter
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	CircuitBreakerState   prometheus.Gauge
}

// NewMetrics registers all collectors on reg and returns them.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthorizationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorizations_total",
			Help:      "Authorization attempts partitioned by outcome.",
		}, []string{"outcome"}),
		AuthorizationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "authorization_duration_seconds",
			Help:      "End-to-end authorization latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		GatewayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Latency of the upstream processor call.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RefundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Refund requests acknowledged.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests partitioned by method, path, and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CircuitBreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Processor circuit breaker state (0 closed, 1 half-open, 2 open).",
		}),
	}

	reg.MustRegister(
		m.AuthorizationsTotal,
		m.AuthorizationDuration,
		m.GatewayDuration,
		m.RefundsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CircuitBreakerState,
	)
	return m
}
