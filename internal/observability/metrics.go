package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_life"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// warning pipeline and the SOS service.
type Metrics struct {
	RefreshCycles   *prometheus.CounterVec // labels: outcome={evaluated,no_location}
	RefreshDuration prometheus.Histogram
	AlertsEmitted   *prometheus.CounterVec // labels: hazard
	PublishErrors   *prometheus.CounterVec // labels: kind={warning,sos}
	PipelineRunning prometheus.Gauge
	OverallRisk     prometheus.Gauge

	// SOS metrics.
	SOSActivations prometheus.Counter
	SOSOutcomes    *prometheus.CounterVec // labels: status={resolved,cancelled}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RefreshCycles,
		m.RefreshDuration,
		m.AlertsEmitted,
		m.PublishErrors,
		m.PipelineRunning,
		m.OverallRisk,
		m.SOSActivations,
		m.SOSOutcomes,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Warning refresh cycles by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete locate-evaluate-publish cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		AlertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_emitted_total",
			Help:      "Synthesized alerts by hazard kind.",
		}, []string{"hazard"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed publishes by payload kind.",
		}, []string{"kind"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the refresh pipeline is active, 0 when shut down.",
		}),
		OverallRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overall_risk_score",
			Help:      "Overall risk score of the latest analysis.",
		}),
		SOSActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sos_activations_total",
			Help:      "Completed SOS countdowns.",
		}),
		SOSOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sos_outcomes_total",
			Help:      "SOS alerts leaving the active state, by final status.",
		}, []string{"status"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when reverse geocoding is enabled, 0 otherwise.",
		}),
	}
}
