package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/safarx/places-backend/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for the Google Maps API
// and a logger for logging purposes. It is used as an alternative to the
// default Nominatim provider where an API key is available.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	region string          // region biases results to a ccTLD region code
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given API client,
// region bias, and logger.
func NewGoogleProvider(client GoogleAPIClient, region string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, region: region, log: log}
}

// Search takes a context and a free-text query as input and returns the
// geographical coordinates of the first candidate from the Google Maps
// Geocoding API, biased to the configured region. Returns ErrNoMatch when
// the API yields no candidates.
func (gp *GoogleProvider) Search(ctx context.Context, query string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Searching using Google Maps", "query", query)

	req := maps.GeocodingRequest{Address: query, Region: gp.region}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNoMatch
	}
	coords := geocodeResponse[0].Geometry.Location

	return &models.Coordinates{Latitude: coords.Lat, Longitude: coords.Lng}, nil
}
