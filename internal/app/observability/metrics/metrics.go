package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal           metric.Int64Counter
	HTTPRequestDuration         metric.Float64Histogram
	ItinerariesSynthesizedTotal metric.Int64Counter
	SynthesisDurationSeconds    metric.Float64Histogram
	CatalogLookupsTotal         metric.Int64Counter
	CatalogCacheHitsTotal       metric.Int64Counter
	PlansSavedTotal             metric.Int64Counter
	DBQueryDurationSeconds      metric.Float64Histogram
	DBQueryErrorsTotal          metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wayfarer")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.ItinerariesSynthesizedTotal, err = meter.Int64Counter(
			"itineraries_synthesized_total",
			metric.WithDescription("Total number of trip plans synthesized"),
			metric.WithUnit("{plan}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itineraries_synthesized_total: %v", err)
		}

		m.SynthesisDurationSeconds, err = meter.Float64Histogram(
			"synthesis_duration_seconds",
			metric.WithDescription("Duration of itinerary synthesis in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create synthesis_duration_seconds: %v", err)
		}

		m.CatalogLookupsTotal, err = meter.Int64Counter(
			"catalog_lookups_total",
			metric.WithDescription("Total number of offer catalog lookups that reached the adapter"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_lookups_total: %v", err)
		}

		m.CatalogCacheHitsTotal, err = meter.Int64Counter(
			"catalog_cache_hits_total",
			metric.WithDescription("Total number of offer catalog lookups served from cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_cache_hits_total: %v", err)
		}

		m.PlansSavedTotal, err = meter.Int64Counter(
			"plans_saved_total",
			metric.WithDescription("Total number of trip plans persisted"),
			metric.WithUnit("{plan}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plans_saved_total: %v", err)
		}

		m.DBQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DBQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
