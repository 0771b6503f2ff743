package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	RateLimitHitsTotal *prometheus.CounterVec

	HistoryWritesTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_refactor_requests_total",
				Help: "Total number of refactor requests processed",
			},
			[]string{"surface", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prompt_refactor_request_duration_seconds",
				Help:    "Refactor request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"surface"},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "prompt_refactor_requests_in_flight",
				Help: "Number of refactor requests currently being processed",
			},
		),

		LLMRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_refactor_llm_requests_total",
				Help: "Total number of LLM API requests by outcome",
			},
			[]string{"status"},
		),
		LLMRequestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prompt_refactor_llm_request_duration_seconds",
				Help:    "LLM request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "prompt_refactor_cache_hits_total",
				Help: "Total number of result cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "prompt_refactor_cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),

		RateLimitHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_refactor_rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"user_id"},
		),

		HistoryWritesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_refactor_history_writes_total",
				Help: "Total number of history write attempts",
			},
			[]string{"status"},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordRequest(surface, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(surface, status).Inc()
	m.RequestDuration.WithLabelValues(surface).Observe(duration.Seconds())
}

func (m *Metrics) RecordLLMRequest(status string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(status).Inc()
	m.LLMRequestDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit(userID string) {
	m.RateLimitHitsTotal.WithLabelValues(userID).Inc()
}

func (m *Metrics) RecordHistoryWrite(status string) {
	m.HistoryWritesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
