package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/safarx/places-backend/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public endpoint of OpenStreetMap's Nominatim search API.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimTimeout bounds a single search request.
const nominatimTimeout = 8 * time.Second

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client      HTTPClient    // HTTP client for making requests
	baseURL     string        // Base URL for the Nominatim API
	countryCode string        // ISO country code the search is biased to
	log         *slog.Logger  // Logger for logging operations
	limiter     *rate.Limiter // Rate limiter per Nominatim fair-use policy
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// nominatimResponse represents one candidate in the JSON response from the Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// ErrInvalidCoords is returned when the API responds with coordinates that
// cannot be parsed to finite floating-point numbers.
var ErrInvalidCoords = errors.New("nominatim API returned invalid coordinates")

// NewNominatimProvider creates a new Nominatim geocoding provider biased to
// the given ISO country code. Uses the public Nominatim API endpoint.
func NewNominatimProvider(countryCode string, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client: &http.Client{
			Timeout: nominatimTimeout,
		},
		baseURL:     NominatimBaseURL,
		countryCode: countryCode,
		log:         log,
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "safarx-places-backend/1.0 (admin@safarx.example)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, countryCode string, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:      client,
		baseURL:     NominatimBaseURL,
		countryCode: countryCode,
		log:         log,
		limiter:     rate.NewLimiter(rate.Inf, 1),
		userAgent:   "safarx-places-backend/1.0 (admin@safarx.example)",
	}
}

// Search issues a single geocoding request for the query and returns the top
// candidate's coordinates. It returns ErrNoMatch when the API has no usable
// result and ErrInvalidCoords when the result cannot be parsed to finite
// numbers. Transport errors and timeouts are wrapped and returned as-is; the
// caller decides whether to retry with another query.
func (np *NominatimProvider) Search(ctx context.Context, query string) (*models.Coordinates, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait interrupted: %w", err)
	}

	np.log.DebugContext(ctx, "Searching using Nominatim", "query", query)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", np.countryCode)
	params.Set("limit", "1") // Only need the top result
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrInvalidCoords, results[0].Lon)
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil, fmt.Errorf("%w: non-finite values: %s, %s", ErrInvalidCoords, results[0].Lat, results[0].Lon)
	}

	np.log.DebugContext(ctx, "Nominatim found result", "query", query, "lat", lat, "lon", lon)

	return &models.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
