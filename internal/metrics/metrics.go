package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 汇总 HTTP 请求与内容变更的 Prometheus 指标。
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ContentMutations    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a dedicated registry so tests can create
// as many instances as they need.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latency",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ContentMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_mutations_total",
				Help: "Total number of successful admin content mutations",
			},
			[]string{"resource", "op"},
		),
		gatherer: registry,
	}

	registry.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.ContentMutations)
	return m
}

// ObserveMutation counts one create/update/delete/toggle/reorder.
func (m *Metrics) ObserveMutation(resource, op string) {
	m.ContentMutations.WithLabelValues(resource, op).Inc()
}

// Handler 返回 /metrics 端点处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
