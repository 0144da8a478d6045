package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/safarx/places-backend/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleClient struct {
	geocodeFunc func(r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleClient) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(r)
}

func TestGoogleProvider_Search(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("api returns error", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, assert.AnError
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, "so", logger)

		_, err := provider.Search(ctx, "some invalid place")

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, nil
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, "so", logger)

		coords, err := provider.Search(ctx, "some invalid place")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("successful search with region bias", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "Bakaara Market", r.Address)
				assert.Equal(t, "so", r.Region)
				return []maps.GeocodingResult{
					{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 2.0403, Lng: 45.3270}}},
				}, nil
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, "so", logger)

		coords, err := provider.Search(ctx, "Bakaara Market")

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 2.0403, coords.Latitude, 0.0001)
		require.InEpsilon(t, 45.3270, coords.Longitude, 0.0001)
	})
}
