package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for a batch run.
type Metrics struct {
	Registry     *prometheus.Registry
	FilesTotal   *prometheus.CounterVec
	FileDuration prometheus.Histogram
	EntriesTotal prometheus.Counter
	ErrorsTotal  *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	files := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sizes_files_total",
			Help: "Total pages processed by outcome.",
		},
		[]string{"status"},
	)
	fileDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sizes_file_duration_seconds",
			Help:    "Time spent loading and parsing one page.",
			Buckets: prometheus.DefBuckets,
		},
	)
	entries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sizes_entries_extracted_total",
			Help: "Total number of size entries written.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sizes_errors_total",
			Help: "Total number of extraction errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(files, fileDuration, entries, errorsTotal)

	return &Metrics{
		Registry:     registry,
		FilesTotal:   files,
		FileDuration: fileDuration,
		EntriesTotal: entries,
		ErrorsTotal:  errorsTotal,
	}
}

// IncFile increments the processed pages counter.
func (m *Metrics) IncFile(status string) {
	if m == nil {
		return
	}
	m.FilesTotal.WithLabelValues(status).Inc()
}

// ObserveDuration records the time spent on one page.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FileDuration.Observe(d.Seconds())
}

// AddEntries adds n to the extracted entries counter.
func (m *Metrics) AddEntries(n int) {
	if m == nil {
		return
	}
	m.EntriesTotal.Add(float64(n))
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// WriteTextfile dumps the registry in the node exporter textfile format.
func (m *Metrics) WriteTextfile(filename string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(filename, m.Registry)
}
