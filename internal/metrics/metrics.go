package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Resolutions            *prometheus.CounterVec
	ProviderErrors         prometheus.Counter
	ProviderRequestSeconds *prometheus.HistogramVec
	PlaceOperations        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Resolutions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_resolutions_total",
			Help: "Total number of address resolutions by the tier that produced the coordinate.",
		}, []string{"tier"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		ProviderRequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		PlaceOperations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "places_operations_total",
			Help: "Total number of place operations by kind and outcome.",
		}, []string{"operation", "status"}),
	}
}
