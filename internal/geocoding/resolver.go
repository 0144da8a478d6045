package geocoding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/safarx/places-backend/internal/metrics"
	"github.com/safarx/places-backend/internal/models"
)

// Resolver turns a free-text address into coordinates through a tiered
// fallback chain: local dictionary, then the external provider over an
// ordered list of query variants, then a fixed default. For a non-empty
// address it always produces a coordinate, no matter how the external
// service behaves.
type Resolver struct {
	table        LocationTable      // Dictionary of known local aliases
	provider     Provider           // External geocoding provider
	providerName string             // Name of the provider for metrics labeling
	fallback     models.Coordinates // Terminal default coordinate
	city         string             // City appended to the first qualified variant
	country      string             // Country appended to qualified variants
	metrics      *metrics.Metrics   // Metrics for tracking resolution tiers
	log          *slog.Logger       // Logger for logging operations
}

// NewResolver creates a resolver over the given location table and external
// provider. The table is the first tier and must already hold normalized
// keys; fallback is returned when every tier comes up empty.
func NewResolver(
	table LocationTable,
	provider Provider,
	providerName string,
	fallback models.Coordinates,
	city, country string,
	mtr *metrics.Metrics,
	log *slog.Logger,
) *Resolver {
	return &Resolver{
		table:        table,
		provider:     provider,
		providerName: providerName,
		fallback:     fallback,
		city:         city,
		country:      country,
		metrics:      mtr,
		log:          log,
	}
}

// Resolve maps an address to coordinates. It returns models.ErrInvalidAddress
// for an empty or blank address; for any other input it succeeds:
//
//  1. Dictionary: the normalized address is looked up in the local table.
//     A hit returns immediately with no network call.
//  2. Provider: ordered query variants derived from the raw address are
//     issued sequentially to the external provider. The first variant that
//     yields a parsable coordinate wins; a variant's transport error,
//     timeout, no-match or bad payload is swallowed and the loop moves on.
//  3. Default: the configured fallback coordinate.
func (r *Resolver) Resolve(ctx context.Context, address string) (models.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return models.Coordinates{}, models.ErrInvalidAddress
	}

	if coords, ok := r.table[NormalizeAddress(address)]; ok {
		r.log.DebugContext(ctx, "Resolved address from local dictionary", "address", address)
		r.metrics.Resolutions.WithLabelValues("dictionary").Inc()
		return coords, nil
	}

	for idx, query := range r.queryVariants(address) {
		startTime := time.Now()
		coords, err := r.provider.Search(ctx, query)
		r.metrics.ProviderRequestSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())

		if err != nil {
			// Transport failures and no-match are equivalent here: try the next variant.
			r.metrics.ProviderErrors.Inc()
			r.log.DebugContext(ctx, "Query variant failed, trying next",
				"address", address,
				"variant", query,
				"variant_level", idx,
				"error", err)
			continue
		}

		if idx > 0 {
			r.log.InfoContext(ctx, "Resolved address using qualified variant",
				"original", address,
				"variant", query,
				"variant_level", idx)
		}
		r.metrics.Resolutions.WithLabelValues("provider").Inc()
		return *coords, nil
	}

	r.log.WarnContext(ctx, "All query variants exhausted, using default coordinates", "address", address)
	r.metrics.Resolutions.WithLabelValues("default").Inc()
	return r.fallback, nil
}

// queryVariants builds the ordered list of reformulations tried against the
// provider: the raw address, then the address qualified with city and
// country, then with country only. Duplicates are dropped while preserving
// order.
func (r *Resolver) queryVariants(address string) []string {
	seen := make(map[string]bool)
	variants := []string{}

	addVariant := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	addVariant(address)
	addVariant(address + ", " + r.city + ", " + r.country)
	addVariant(address + ", " + r.country)

	return variants
}
