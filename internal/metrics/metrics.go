// Package metrics holds the service's prometheus collectors. They are
// registered on the default registry and served at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scrapes counts completed scrape operations by category.
	Scrapes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukparl_scrapes_total",
		Help: "Completed scrape operations, labeled by category.",
	}, []string{"category"})

	// ScrapeErrors counts scrape operations that failed upstream.
	ScrapeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukparl_scrape_errors_total",
		Help: "Scrape operations that failed, labeled by category.",
	}, []string{"category"})

	// UpstreamRequestDuration observes latency of upstream API calls.
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ukparl_upstream_request_duration_seconds",
		Help:    "Duration of upstream Parliament API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	// CSVFilesWritten counts CSV files written by exports.
	CSVFilesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ukparl_csv_files_written_total",
		Help: "CSV files written by export operations.",
	})

	// ExportErrors counts failed export operations.
	ExportErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ukparl_export_errors_total",
		Help: "Export operations that failed.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
