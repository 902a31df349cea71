// Package metrics define los contadores e histogramas Prometheus del servicio.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petpatrol_http_requests_total",
		Help: "HTTP requests by route pattern, method and status",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petpatrol_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ListingCreate cuenta ejecuciones del flujo mascota+post por resultado
	// ("committed", "invalid", o el código del paso que falló).
	ListingCreate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petpatrol_listing_create_total",
		Help: "Listing creation flow outcomes",
	}, []string{"outcome"})

	ListingCreateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "petpatrol_listing_create_duration_seconds",
		Help:    "Listing creation flow latency, transaction and upload included",
		Buckets: prometheus.DefBuckets,
	})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petpatrol_image_upload_total",
		Help: "Object storage writes by result",
	}, []string{"result"})

	CatalogCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petpatrol_catalog_cache_total",
		Help: "Reference table cache lookups by result (hit, miss, error)",
	}, []string{"result"})
)

// ObserveListingCreate registra resultado y latencia del flujo.
func ObserveListingCreate(outcome string, start time.Time) {
	ListingCreate.WithLabelValues(outcome).Inc()
	ListingCreateDuration.Observe(time.Since(start).Seconds())
}
