// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	RowsRead           prometheus.Counter
	RowsSkipped        prometheus.Counter
	OrderLinesIngested prometheus.Counter
	ParseErrors        *prometheus.CounterVec

	// Pipeline metrics
	PipelineRunsTotal  *prometheus.CounterVec
	PipelineDuration   *prometheus.HistogramVec
	CustomersScored    prometheus.Counter
	AggregatesComputed prometheus.Counter
	ReportsGenerated   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "rfm_segmentation"
	}

	return &Metrics{
		// Ingestion metrics
		RowsRead: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_read_total",
			Help:      "Total number of raw CSV rows read",
		}),
		RowsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_skipped_total",
			Help:      "Total number of malformed rows dropped under the skip policy",
		}),
		OrderLinesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "order_lines_ingested_total",
			Help:      "Total number of order lines stored to database",
		}),
		ParseErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "parse_errors_total",
			Help:      "Total number of row parse errors by field",
		}, []string{"field"}),

		// Pipeline metrics
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"phase"}),
		CustomersScored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "customers_scored_total",
			Help:      "Total number of customers scored and classified",
		}),
		AggregatesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "aggregates_computed_total",
			Help:      "Total number of segment aggregates computed",
		}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRowsRead adds to the raw rows read counter.
func RecordRowsRead(n int) {
	DefaultMetrics.RowsRead.Add(float64(n))
}

// RecordRowsSkipped adds to the skipped rows counter.
func RecordRowsSkipped(n int) {
	DefaultMetrics.RowsSkipped.Add(float64(n))
}

// RecordOrderLinesIngested adds to the stored order lines counter.
func RecordOrderLinesIngested(n int) {
	DefaultMetrics.OrderLinesIngested.Add(float64(n))
}

// RecordParseError records a row parse error for one field.
func RecordParseError(field string) {
	DefaultMetrics.ParseErrors.WithLabelValues(field).Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPipelineRun records a pipeline run.
func RecordPipelineRun(status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.PipelineDuration.WithLabelValues("full").Observe(durationSeconds)
}

// RecordAggregatesComputed adds to the computed aggregates counter.
func RecordAggregatesComputed(n int) {
	DefaultMetrics.AggregatesComputed.Add(float64(n))
}

// RecordCustomersScored adds to the scored customers counter.
func RecordCustomersScored(n int) {
	DefaultMetrics.CustomersScored.Add(float64(n))
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}
