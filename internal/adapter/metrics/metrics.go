package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds all Prometheus metrics for the relay.
type PipelineMetrics struct {
	RecordsTotal          prometheus.Counter
	EventsTotal           *prometheus.CounterVec
	BatchesTotal          *prometheus.CounterVec
	FindingsPagesTotal    *prometheus.CounterVec
	FindingsReturnedTotal prometheus.Counter
	JobsCreatedTotal      *prometheus.CounterVec
}

// NewPipelineMetrics initializes and registers the Prometheus metrics.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)
	return &PipelineMetrics{
		RecordsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "pipeline",
			Name:      "records_total",
			Help:      "Total number of log records decoded from subscription batches.",
		}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "pipeline",
			Name:      "events_total",
			Help:      "Total number of status events by outcome.",
		}, []string{"outcome"}), // outcome: published, skipped, aborted, dropped_irrelevant, error_parse
		BatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "pipeline",
			Name:      "batches_total",
			Help:      "Total number of processed subscription batches by status.",
		}, []string{"status"}), // status: ok, error_decode, error_abort
		FindingsPagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "findings",
			Name:      "pages_total",
			Help:      "Total number of findings pages served by status.",
		}, []string{"status"}), // status: ok, empty, error_validation, error_upstream
		FindingsReturnedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "findings",
			Name:      "records_total",
			Help:      "Total number of finding records returned to callers.",
		}),
		JobsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "macie_relay",
			Subsystem: "jobs",
			Name:      "created_total",
			Help:      "Total number of classification job submissions by status.",
		}, []string{"status"}), // status: ok, error_validation, error_upstream
	}
}
