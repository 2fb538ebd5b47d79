package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dataset Prometheus metrics.
var (
	DatasetLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yojana",
			Name:      "dataset_loads_total",
			Help:      "Total number of dataset load attempts",
		},
		[]string{"status"}, // "ok" / "error"
	)

	DatasetSchemes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yojana",
			Name:      "dataset_schemes",
			Help:      "Number of schemes in the current dataset snapshot",
		},
	)

	DatasetLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "yojana",
			Name:      "dataset_load_duration_seconds",
			Help:      "Dataset load duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

var datasetMetricsRegistered bool

// RegisterDatasetMetrics registers Prometheus dataset metrics. Must be called once from main.
func RegisterDatasetMetrics() {
	if datasetMetricsRegistered {
		return
	}
	prometheus.MustRegister(DatasetLoadsTotal)
	prometheus.MustRegister(DatasetSchemes)
	prometheus.MustRegister(DatasetLoadDuration)
	datasetMetricsRegistered = true
}
