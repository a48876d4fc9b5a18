package providers

import (
	"mindful/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncActionsTotal(action string, success bool)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetStreakCount(count int)
	SetBlocksToday(count int)
	SetExtensionEnabled(enabled bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	actionsTotal        *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	streakCount         prometheus.Gauge
	blocksToday         prometheus.Gauge
	extensionEnabled    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncActionsTotal(action string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.actionsTotal.WithLabelValues(action, result).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetStreakCount(count int) {
	m.streakCount.Set(float64(count))
}

func (m *MetricsProvider) SetBlocksToday(count int) {
	m.blocksToday.Set(float64(count))
}

func (m *MetricsProvider) SetExtensionEnabled(enabled bool) {
	if enabled {
		m.extensionEnabled.Set(1)
		return
	}
	m.extensionEnabled.Set(0)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindful_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindful_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		actionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindful_actions_total",
			Help: "Total number of routed message actions by result",
		}, []string{"action", "result"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindful_cache_hits_total",
			Help: "Total number of store cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindful_cache_misses_total",
			Help: "Total number of store cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindful_persistence_duration_seconds",
			Help:    "Duration of store flush operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		streakCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mindful_streak_days",
			Help: "Current streak length in days",
		}),

		blocksToday: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mindful_blocks_today",
			Help: "Number of blocking events recorded today",
		}),

		extensionEnabled: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mindful_extension_enabled",
			Help: "1 when blocking rules are active",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncActionsTotal(_ string, _ bool)                 {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetStreakCount(_ int)                             {}
func (n *noopMetrics) SetBlocksToday(_ int)                             {}
func (n *noopMetrics) SetExtensionEnabled(_ bool)                       {}
