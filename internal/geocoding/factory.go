package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type        ProviderType // Type of provider to create
	APIKey      string       // API key (used by Google provider)
	CountryCode string       // ISO country code to bias searches to
	RateLimit   int          // Rate limit for requests per second (used by Google provider)
	Logger      *slog.Logger // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from business logic.
//
// Supported provider types:
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "google": Google Maps Geocoding API (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newNominatimProvider creates a Nominatim geocoding provider.
func newNominatimProvider(config ProviderConfig) (Provider, error) {
	// Nominatim is free and doesn't require an API key
	return NewNominatimProvider(config.CountryCode, config.Logger), nil
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.CountryCode, config.Logger), nil
}
