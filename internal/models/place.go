package models

import "time"

// Place represents a user-owned location record with a resolved geographic coordinate.
type Place struct {
	ID          string      `json:"id"`          // ID is the unique identifier of the place.
	Title       string      `json:"title"`       // Title is the display name, must be non-empty.
	Description string      `json:"description"` // Description is free-form text about the place.
	Address     string      `json:"address"`     // Address is the free-text address the user entered.
	Location    Coordinates `json:"location"`    // Location holds the resolved coordinates.
	ImageURL    string      `json:"image"`       // ImageURL points at the place's picture.
	CreatorID   string      `json:"creator"`     // CreatorID references the owning user.
	CreatedAt   time.Time   `json:"-"`           // CreatedAt is set by the storage layer.
}

// PlaceDraft carries the caller-supplied fields for a place that has not
// been persisted yet. The identifier, coordinates and image are assigned
// during creation.
type PlaceDraft struct {
	Title       string
	Description string
	Address     string
}
