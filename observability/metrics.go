// Package observability exposes batch metrics and process footprint for one pipeline run.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "polarity"

// Stage names used as the "stage" label.
const (
	StageLoad    = "load"
	StageExtract = "extract"
	StageJoin    = "join"
	StageStore   = "store"
	StageTrain   = "train"
)

// Metrics holds the collectors of the batch on a private registry, so that several runs in
// one process (tests) never collide on the default registry.
type Metrics struct {
	registry      *prometheus.Registry
	Runs          prometheus.Counter
	Failures      *prometheus.CounterVec
	Documents     prometheus.Gauge
	Transactions  prometheus.Gauge
	Vocabulary    prometheus.Gauge
	Selected      prometheus.Gauge
	DroppedRows   prometheus.Gauge
	Accuracy      prometheus.Gauge
	StageDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total pipeline runs",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total failed runs by stage",
		}, []string{"stage"}),
		Documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Comments read by the last run",
		}),
		Transactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transactions",
			Help:      "Rows of the last joined table",
		}),
		Vocabulary: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_terms",
			Help:      "Terms kept by the vectorizer in the last run",
		}),
		Selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_features",
			Help:      "Text features kept by chi-square selection in the last run",
		}),
		DroppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "join_dropped_rows",
			Help:      "Transactions dropped by the inner join in the last run",
		}),
		Accuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "test_accuracy",
			Help:      "Held-out accuracy of the last trained model",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	m.registry.MustRegister(m.Runs, m.Failures, m.Documents, m.Transactions, m.Vocabulary,
		m.Selected, m.DroppedRows, m.Accuracy, m.StageDuration)
	return m
}

// ObserveStage records the time elapsed since start for a stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Fail(stage string) {
	m.Failures.WithLabelValues(stage).Inc()
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format, for the node
// exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
