package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kidspots/kidspots-api/internal/domain"
)

var ErrEmptyQuery = errors.New("search query must not be empty")

// Geocoder is the narrow upstream contract for the geocoding provider.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Location, error)
}

type LocationService struct {
	geocoder Geocoder
}

func NewLocationService(geocoder Geocoder) *LocationService {
	return &LocationService{geocoder: geocoder}
}

// Search geocodes a free-text place query. Results keep the provider's
// relevance order; an empty list is a valid "no match" outcome.
func (s *LocationService) Search(ctx context.Context, query string) ([]domain.Location, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	locations, err := s.geocoder.Search(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	return locations, nil
}
