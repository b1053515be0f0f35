package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedTripPlan is a finished plan handed off to the document store. The
// plan body is stored as an opaque JSON document; the engine never reads
// it back for computation.
type SavedTripPlan struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Plan      TripPlan  `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlansFilter holds filtering parameters for the saved-plans list.
type PlansFilter struct {
	OwnerID   string
	SortBy    string // "created_at" or "title"
	SortOrder string // "asc" or "desc"
	Limit     int
	Offset    int
}
