package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is consumed by the selection manager; a nil *PrometheusMetrics is
// safe to call so CLI one-shots skip registration entirely.
type Metrics interface {
	ObserveReconcile(outcome string, duration time.Duration)
	ObserveToggle(checked bool)
	ObserveCacheRead(result string)
	ObserveReloadScheduled()
}

const (
	ReconcileOutcomeApplied   = "applied"
	ReconcileOutcomeFetchFail = "fetch_failed"
	ReconcileOutcomeStale     = "stale_discarded"

	CacheReadHit  = "hit"
	CacheReadMiss = "miss"
)

type PrometheusMetrics struct {
	reconciles       *prometheus.CounterVec
	reconcileSeconds *prometheus.HistogramVec
	toggles          *prometheus.CounterVec
	cacheReads       *prometheus.CounterVec
	reloadsScheduled prometheus.Counter
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		reconciles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wunderadmin_reconciles_total",
				Help: "Total number of selection reconciliations by outcome",
			},
			[]string{"outcome"},
		),
		reconcileSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wunderadmin_reconcile_duration_seconds",
				Help:    "Duration of inventory fetch plus merge in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		toggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wunderadmin_toggles_total",
				Help: "Total number of tool selection toggles",
			},
			[]string{"direction"},
		),
		cacheReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wunderadmin_cache_reads_total",
				Help: "Total number of selection cache reads by result",
			},
			[]string{"result"},
		),
		reloadsScheduled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wunderadmin_prompt_reloads_scheduled_total",
				Help: "Total number of debounced prompt reloads scheduled",
			},
		),
	}
}

func (m *PrometheusMetrics) ObserveReconcile(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.reconciles.WithLabelValues(outcome).Inc()
	m.reconcileSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveToggle(checked bool) {
	if m == nil {
		return
	}
	direction := "off"
	if checked {
		direction = "on"
	}
	m.toggles.WithLabelValues(direction).Inc()
}

func (m *PrometheusMetrics) ObserveCacheRead(result string) {
	if m == nil {
		return
	}
	m.cacheReads.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) ObserveReloadScheduled() {
	if m == nil {
		return
	}
	m.reloadsScheduled.Inc()
}

var _ Metrics = (*PrometheusMetrics)(nil)
