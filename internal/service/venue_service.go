package service

import (
	"context"
	"fmt"
	"log"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/overpass"
)

// VenueSearcher is the narrow upstream contract for the geodata provider,
// so the provider can be swapped or stubbed in tests.
type VenueSearcher interface {
	Execute(ctx context.Context, query string) ([]overpass.Element, error)
}

type VenueService struct {
	searcher VenueSearcher
}

func NewVenueService(searcher VenueSearcher) *VenueService {
	return &VenueService{searcher: searcher}
}

// Search queries the geodata provider for venues of the requested types
// inside the viewport and normalizes the results. An empty type set means
// "no results" and returns without touching the provider.
func (s *VenueService) Search(ctx context.Context, bounds domain.BoundingBox, types []domain.VenueType) ([]domain.Venue, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return []domain.Venue{}, nil
	}

	query := overpass.BuildQuery(bounds, types)
	elements, err := s.searcher.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}

	venues, unmatched := overpass.Normalize(elements)
	if unmatched > 0 {
		// The query only returns elements that matched some requested tag
		// predicate, so these are tag variants worth keeping an eye on.
		log.Printf("venue search: %d of %d elements matched no category predicate, used fallback", unmatched, len(elements))
	}
	return venues, nil
}
