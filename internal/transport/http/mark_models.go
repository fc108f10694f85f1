package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/kidspots/kidspots-api/internal/domain"
)

// Wire shapes for the favorite/visited relations. The two differ only in
// the name of the timestamp field.

type favoriteResponse struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	VenueID   string           `json:"venueId"`
	VenueName string           `json:"venueName"`
	VenueType domain.VenueType `json:"venueType"`
	VenueLat  float64          `json:"venueLat"`
	VenueLng  float64          `json:"venueLng"`
	CreatedAt time.Time        `json:"createdAt"`
}

type visitedResponse struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	VenueID   string           `json:"venueId"`
	VenueName string           `json:"venueName"`
	VenueType domain.VenueType `json:"venueType"`
	VenueLat  float64          `json:"venueLat"`
	VenueLng  float64          `json:"venueLng"`
	VisitedAt time.Time        `json:"visitedAt"`
}

func toFavoriteResponse(mark domain.VenueMark) favoriteResponse {
	return favoriteResponse{
		ID:        mark.ID,
		UserID:    mark.UserID,
		VenueID:   mark.VenueID,
		VenueName: mark.VenueName,
		VenueType: mark.VenueType,
		VenueLat:  mark.VenueLat,
		VenueLng:  mark.VenueLng,
		CreatedAt: mark.MarkedAt,
	}
}

func toVisitedResponse(mark domain.VenueMark) visitedResponse {
	return visitedResponse{
		ID:        mark.ID,
		UserID:    mark.UserID,
		VenueID:   mark.VenueID,
		VenueName: mark.VenueName,
		VenueType: mark.VenueType,
		VenueLat:  mark.VenueLat,
		VenueLng:  mark.VenueLng,
		VisitedAt: mark.MarkedAt,
	}
}
