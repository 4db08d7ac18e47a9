package metrics

import (
	"net/http"

	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the service's custom Prometheus metrics.
type Manager struct {
	Registry               *prometheus.Registry
	WishlistsCreatedTotal  prometheus.Counter
	WishlistUpdatesTotal   prometheus.Counter
	WishlistDeletesTotal   prometheus.Counter
	ActivitiesAddedTotal   prometheus.Counter
	LinkExtractionsTotal   *prometheus.CounterVec // by outcome: matched / no_match
	HTTPRequestLatency     *prometheus.HistogramVec
	HTTPRequestErrorsTotal *prometheus.CounterVec
}

// NewManager initializes and registers the custom metrics on a private
// registry so tests can build managers without collector name collisions.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	wishlistsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "wishlists_created_total",
		Help:      "Total number of wishlists created.",
	})
	wishlistUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "wishlist_updates_total",
		Help:      "Total number of wishlists updated.",
	})
	wishlistDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "wishlist_deletes_total",
		Help:      "Total number of wishlists deleted.",
	})
	activitiesAddedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "activities_added_total",
		Help:      "Total number of activities added to wishlists.",
	})
	linkExtractionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "link_extractions_total",
		Help:      "Total number of map-link coordinate extractions by outcome.",
	}, []string{"outcome"})
	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	httpRequestErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_request_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})

	registry.MustRegister(
		wishlistsCreatedTotal,
		wishlistUpdatesTotal,
		wishlistDeletesTotal,
		activitiesAddedTotal,
		linkExtractionsTotal,
		httpRequestLatency,
		httpRequestErrorsTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:               registry,
		WishlistsCreatedTotal:  wishlistsCreatedTotal,
		WishlistUpdatesTotal:   wishlistUpdatesTotal,
		WishlistDeletesTotal:   wishlistDeletesTotal,
		ActivitiesAddedTotal:   activitiesAddedTotal,
		LinkExtractionsTotal:   linkExtractionsTotal,
		HTTPRequestLatency:     httpRequestLatency,
		HTTPRequestErrorsTotal: httpRequestErrorsTotal,
	}
}

// StartMetricsServer exposes the registry on /metrics. An empty port disables
// the server.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
