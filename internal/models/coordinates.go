package models

// Coordinates represents a geographical point defined by its latitude and longitude (WGS84).
type Coordinates struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
}
