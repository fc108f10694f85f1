package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/kidspots/kidspots-api/internal/domain"
)

// VenueMarkRepository persists one kind of per-user venue relation
// (favorites or visited). Both kinds share this contract; the constructor
// of the implementation fixes which table it operates on.
type VenueMarkRepository interface {
	// ListByUser returns the user's marks, optionally filtered to a set of
	// venue types. Newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, types []domain.VenueType) ([]domain.VenueMark, error)
	// Add inserts a mark, or returns the existing row when the (user, venue)
	// pair is already present. Idempotent.
	Add(ctx context.Context, userID uuid.UUID, venue domain.VenueSnapshot) (*domain.VenueMark, error)
	// Remove deletes the mark for (user, venue). Removing an absent mark is
	// not an error.
	Remove(ctx context.Context, userID uuid.UUID, venueID string) error
	Exists(ctx context.Context, userID uuid.UUID, venueID string) (bool, error)
}
