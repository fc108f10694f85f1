package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarkKind distinguishes the two per-user venue relations.
type MarkKind string

const (
	MarkFavorite MarkKind = "favorite"
	MarkVisited  MarkKind = "visited"
)

// VenueSnapshot is the denormalized copy of a venue stored with a mark.
// The external geodata source has no durable venue store, so marks carry
// the fields needed to render the venue again instead of a foreign key.
type VenueSnapshot struct {
	VenueID   string    `json:"venueId"`
	VenueName string    `json:"venueName"`
	VenueType VenueType `json:"venueType"`
	VenueLat  float64   `json:"venueLat"`
	VenueLng  float64   `json:"venueLng"`
}

// VenueMark is one favorite or visited row. MarkedAt maps to created_at for
// favorites and visited_at for visited; the repository aliases the column.
type VenueMark struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	VenueID   string    `db:"venue_id"`
	VenueName string    `db:"venue_name"`
	VenueType VenueType `db:"venue_type"`
	VenueLat  float64   `db:"venue_lat"`
	VenueLng  float64   `db:"venue_lng"`
	MarkedAt  time.Time `db:"marked_at"`
}

// VenueStatus is the combined membership check for one venue.
type VenueStatus struct {
	IsFavorite bool `json:"isFavorite"`
	IsVisited  bool `json:"isVisited"`
}
