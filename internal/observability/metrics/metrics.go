package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "tariffscope_"

	resultSuccess = "success"
	resultError   = "error"

	inputKindDocument = "document"
	inputKindSource   = "source"
)

var (
	registerOnce sync.Once

	ingestTotal   *prometheus.CounterVec
	ingestLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers the process metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ingestTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_ingest_total",
				Help: "Total plan ingests by input kind and result",
			},
			[]string{"input", "result"},
		)
		ingestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "plan_ingest_latency_seconds",
				Help:    "Plan ingest latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"input", "result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_export_total",
				Help: "Total plan export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "plan_export_latency_seconds",
				Help:    "Plan export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			ingestTotal,
			ingestLatency,
			exportTotal,
			exportLatency,
		)
	})
}

// ObserveIngest records one plan ingest.
func ObserveIngest(input, result string, duration time.Duration) {
	if input == "" {
		input = inputKindDocument
	}
	if result == "" {
		result = resultSuccess
	}
	if ingestTotal != nil {
		ingestTotal.WithLabelValues(input, result).Inc()
	}
	if ingestLatency != nil {
		ingestLatency.WithLabelValues(input, result).Observe(duration.Seconds())
	}
}

// ObserveExport records one export build.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	InputKindDocument = inputKindDocument
	InputKindSource   = inputKindSource
)
