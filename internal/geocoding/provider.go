package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/safarx/places-backend/internal/models"
)

// Provider is an interface that defines a method for searching an address.
// The Search method takes a context and a free-text query as input and
// returns the best-matching coordinates, ErrNoMatch if the external
// service has no candidate for the query, or another error on transport
// or parsing failures.
type Provider interface {
	Search(ctx context.Context, query string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoMatch is returned by providers when the external service yields no
// usable candidate for a query. The resolver treats it the same way as a
// transport failure: it moves on to the next query variant.
var ErrNoMatch = errors.New("geocoding service returned no match")
