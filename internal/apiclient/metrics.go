package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики запросов к API магазина
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics - создает метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Subsystem: "api_client",
				Name:      "requests_total",
				Help:      "Total number of requests sent to the shop API.",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Subsystem: "api_client",
				Name:      "request_duration_seconds",
				Help:      "Duration of requests sent to the shop API.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "storefront",
				Subsystem: "api_client",
				Name:      "inflight_requests",
				Help:      "Current number of in-flight requests to the shop API.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.inFlight)
	}
	return m
}

func (m *Metrics) start() func(method string, status int) {
	if m == nil {
		return func(string, int) {}
	}
	m.inFlight.Inc()
	begin := time.Now()
	return func(method string, status int) {
		m.inFlight.Dec()
		label := "error"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		m.requests.WithLabelValues(method, label).Inc()
		m.duration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
	}
}
