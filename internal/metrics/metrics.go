package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the insights service.
type Metrics struct {
	// Report metrics
	ReportRequests *prometheus.CounterVec
	ReportLatency  *prometheus.HistogramVec
	ReportRows     *prometheus.HistogramVec

	// Dataset metrics
	DatasetRows       *prometheus.GaugeVec
	GeneratorDuration prometheus.Histogram

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReportRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_requests_total",
				Help:      "Total number of report computations served",
			},
			[]string{"report"},
		),
		ReportLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent computing a report",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ReportRows: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_rows",
				Help:      "Number of rows in a computed report",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"report"},
		),
		DatasetRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_rows",
				Help:      "Rows held in memory per source table",
			},
			[]string{"table"},
		),
		GeneratorDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generator_duration_seconds",
				Help:      "Time spent generating the synthetic dataset",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// ObserveReport records one report computation.
func (m *Metrics) ObserveReport(report string, rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReportRequests.WithLabelValues(report).Inc()
	m.ReportLatency.WithLabelValues(report).Observe(elapsed.Seconds())
	m.ReportRows.WithLabelValues(report).Observe(float64(rows))
}

// SetDatasetRows records the size of a source table.
func (m *Metrics) SetDatasetRows(table string, rows int) {
	if m == nil {
		return
	}
	m.DatasetRows.WithLabelValues(table).Set(float64(rows))
}

// RecordRateLimitHit counts a rejected request.
func (m *Metrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(path).Inc()
}

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
