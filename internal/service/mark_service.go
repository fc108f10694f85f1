package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/repository/ports"
)

var ErrInvalidVenue = errors.New("invalid venue snapshot")

// MarkService manages the per-user favorite and visited relations. Every
// operation takes a userID already resolved by the auth middleware; venue
// identity from the client is only ever data, never an access decision.
type MarkService struct {
	favorites ports.VenueMarkRepository
	visited   ports.VenueMarkRepository
}

func NewMarkService(favorites, visited ports.VenueMarkRepository) *MarkService {
	return &MarkService{favorites: favorites, visited: visited}
}

func (s *MarkService) ListFavorites(ctx context.Context, userID uuid.UUID, types []domain.VenueType) ([]domain.VenueMark, error) {
	return s.favorites.ListByUser(ctx, userID, types)
}

func (s *MarkService) AddFavorite(ctx context.Context, userID uuid.UUID, venue domain.VenueSnapshot) (*domain.VenueMark, error) {
	if err := validateSnapshot(venue); err != nil {
		return nil, err
	}
	return s.favorites.Add(ctx, userID, venue)
}

func (s *MarkService) RemoveFavorite(ctx context.Context, userID uuid.UUID, venueID string) error {
	return s.favorites.Remove(ctx, userID, venueID)
}

func (s *MarkService) ListVisited(ctx context.Context, userID uuid.UUID, types []domain.VenueType) ([]domain.VenueMark, error) {
	return s.visited.ListByUser(ctx, userID, types)
}

func (s *MarkService) AddVisited(ctx context.Context, userID uuid.UUID, venue domain.VenueSnapshot) (*domain.VenueMark, error) {
	if err := validateSnapshot(venue); err != nil {
		return nil, err
	}
	return s.visited.Add(ctx, userID, venue)
}

func (s *MarkService) RemoveVisited(ctx context.Context, userID uuid.UUID, venueID string) error {
	return s.visited.Remove(ctx, userID, venueID)
}

// Status runs the two membership checks concurrently; they have no
// ordering dependency and the result combines only after both finish.
func (s *MarkService) Status(ctx context.Context, userID uuid.UUID, venueID string) (*domain.VenueStatus, error) {
	type lookup struct {
		ok  bool
		err error
	}

	favCh := make(chan lookup, 1)
	go func() {
		ok, err := s.favorites.Exists(ctx, userID, venueID)
		favCh <- lookup{ok: ok, err: err}
	}()

	visitedOK, visitedErr := s.visited.Exists(ctx, userID, venueID)
	fav := <-favCh

	if fav.err != nil {
		return nil, fav.err
	}
	if visitedErr != nil {
		return nil, visitedErr
	}
	return &domain.VenueStatus{IsFavorite: fav.ok, IsVisited: visitedOK}, nil
}

func validateSnapshot(venue domain.VenueSnapshot) error {
	if strings.TrimSpace(venue.VenueID) == "" {
		return fmt.Errorf("%w: venueId is required", ErrInvalidVenue)
	}
	if strings.TrimSpace(venue.VenueName) == "" {
		return fmt.Errorf("%w: venueName is required", ErrInvalidVenue)
	}
	if _, err := domain.ParseVenueType(string(venue.VenueType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVenue, err)
	}
	if venue.VenueLat < -90 || venue.VenueLat > 90 {
		return fmt.Errorf("%w: venueLat out of range", ErrInvalidVenue)
	}
	if venue.VenueLng < -180 || venue.VenueLng > 180 {
		return fmt.Errorf("%w: venueLng out of range", ErrInvalidVenue)
	}
	return nil
}
