package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type config struct {
	namespace string
	buckets   []float64
	registry  prometheus.Registerer
}

// Option configures Metrics.
type Option func(*config)

// WithNamespace sets the metric name prefix (default "morefrom").
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *config) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// WithRegistry registers the collectors on r instead of the default registerer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// Metrics 는 블록 렌더링과 HTTP 요청 지표를 모은다.
// nil receiver 도 허용해서 지표 없이 돌릴 수 있다.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New(opts ...Option) *Metrics {
	cfg := config{
		namespace: "morefrom",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "block_renders_total",
			Help:      "Block renders by block name and outcome",
		}, []string{"block", "outcome"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "block_render_duration_seconds",
			Help:      "Block render duration in seconds, including the content query",
			Buckets:   cfg.buckets,
		}, []string{"block"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   cfg.buckets,
		}, []string{"method", "route"}),
	}
}

// ObserveRender records one render of block with its outcome.
func (m *Metrics) ObserveRender(block, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(block, outcome).Inc()
	m.renderDuration.WithLabelValues(block).Observe(d.Seconds())
}

// ObserveHTTP records one served request. route should be the matched route
// pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
