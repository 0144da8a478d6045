package models

// User represents an account owning zero or more places.
//
// PlaceIDs is ordered by creation time (new ids are appended at the end)
// and never contains duplicates. For every place P with P.CreatorID == U.ID,
// P.ID is present in U.PlaceIDs, and every id in U.PlaceIDs resolves to an
// existing place owned by U. Only the place service may mutate this list.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	PlaceIDs []string `json:"places"`
}
