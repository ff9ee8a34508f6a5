package prometheus

import (
	"time"

	"catalog-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Catalog operation metrics
	ProductOperationsCounter  prometheus.CounterVec
	CommentOperationsCounter  prometheus.CounterVec
	CategoryOperationsCounter prometheus.CounterVec

	// Catalog state metrics
	CatalogProductsGauge prometheus.Gauge
	CatalogDeletedGauge  prometheus.Gauge

	// Feed load metrics
	FeedLoadDuration    prometheus.Histogram
	FeedLoadFailures    prometheus.Counter
	FeedProductsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	CommentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_comment_operations_total",
			Help: "Total number of comment operations",
		},
		[]string{"operation"},
	)

	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	CatalogProductsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_products",
			Help: "Current number of products in the catalog, soft-deleted included",
		},
	)

	CatalogDeletedGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_products_deleted",
			Help: "Current number of soft-deleted products",
		},
	)

	FeedLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_feed_load_duration_seconds",
			Help:    "Duration of product feed loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_feed_load_failures_total",
			Help: "Total number of failed product feed loads",
		},
	)

	FeedProductsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_feed_products_total",
			Help: "Total number of products ingested from the feed",
		},
	)
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCommentOperation increments the counter for comment operations
func RecordCommentOperation(operation string) {
	CommentOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateCatalogSize updates the catalog gauges
func UpdateCatalogSize(total, deleted int) {
	CatalogProductsGauge.Set(float64(total))
	CatalogDeletedGauge.Set(float64(deleted))
}

// TrackFeedLoad returns a function that records the duration of a feed load
func TrackFeedLoad() func(startTime time.Time) {
	return func(startTime time.Time) {
		FeedLoadDuration.Observe(time.Since(startTime).Seconds())
	}
}
