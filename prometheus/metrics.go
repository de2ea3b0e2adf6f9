package prometheus

import (
	"time"

	"sales-report-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Upload metrics
	UploadsTotal           prometheus.CounterVec
	UploadDuration         prometheus.Histogram
	UploadRowsSkipped      prometheus.Counter
	CustomersCreatedTotal  prometheus.Counter
	BrandSalesCreatedTotal prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Upload metrics
	UploadsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_uploads_total",
			Help: "Total number of monthly report uploads",
		},
		[]string{"status"},
	)

	UploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_upload_duration_seconds",
			Help:    "Duration of report ingestion in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	UploadRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_upload_rows_skipped_total",
			Help: "Total number of report rows skipped for missing or non-numeric customer codes",
		},
	)

	CustomersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_customers_created_total",
			Help: "Total number of customers created by uploads",
		},
	)

	BrandSalesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_brand_sales_created_total",
			Help: "Total number of brand sale lines created by uploads",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordUpload records the outcome and yield of one report upload
func RecordUpload(status string, createdCustomers, createdSales, skippedRows int, startTime time.Time) {
	UploadsTotal.WithLabelValues(status).Inc()
	UploadDuration.Observe(time.Since(startTime).Seconds())
	UploadRowsSkipped.Add(float64(skippedRows))
	CustomersCreatedTotal.Add(float64(createdCustomers))
	BrandSalesCreatedTotal.Add(float64(createdSales))
}
