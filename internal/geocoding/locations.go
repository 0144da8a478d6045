package geocoding

import (
	"strings"

	"github.com/safarx/places-backend/internal/models"
)

// LocationTable maps normalized address aliases to their coordinates.
// It is looked up before any network call is made.
type LocationTable map[string]models.Coordinates

// DefaultLocationTable returns the dictionary of well-known Mogadishu
// districts, markets and landmarks. Keys are in normalized form (see
// NormalizeAddress). Several entries are intentional duplicates covering
// common misspellings of the same place.
func DefaultLocationTable() LocationTable {
	return LocationTable{
		"hodan":         {Latitude: 2.0371, Longitude: 45.3055},
		"bakaaro":       {Latitude: 2.0403, Longitude: 45.3270},
		"howlwadaag":    {Latitude: 2.0400, Longitude: 45.3180},
		"hawl_wadaag":   {Latitude: 2.0400, Longitude: 45.3180},
		"warta_nabadda": {Latitude: 2.0536, Longitude: 45.3300},
		"wadjir":        {Latitude: 2.0150, Longitude: 45.3000},
		"bondhere":      {Latitude: 2.0460, Longitude: 45.3450},
		"heliwaa":       {Latitude: 2.1190, Longitude: 45.3200},
		"daynile":       {Latitude: 2.0890, Longitude: 45.2680},
		"hodon":         {Latitude: 2.0371, Longitude: 45.3055}, // common misspelling
	}
}

// DefaultCoordinates is the Mogadishu city center, returned when every
// resolution tier comes up empty so the caller's flow keeps working.
var DefaultCoordinates = models.Coordinates{Latitude: 2.0469, Longitude: 45.3182}

// NormalizeAddress lowercases the address, trims surrounding whitespace and
// collapses internal runs of whitespace to a single underscore, producing
// the key form used by LocationTable.
func NormalizeAddress(address string) string {
	fields := strings.Fields(strings.ToLower(address))
	return strings.Join(fields, "_")
}
