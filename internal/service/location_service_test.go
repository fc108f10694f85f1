package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kidspots/kidspots-api/internal/domain"
)

type fakeGeocoder struct {
	query  string
	calls  int
	result []domain.Location
	err    error
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) ([]domain.Location, error) {
	f.calls++
	f.query = query
	return f.result, f.err
}

func TestLocationSearchTrimsQuery(t *testing.T) {
	geocoder := &fakeGeocoder{result: []domain.Location{{DisplayName: "Roma, Italia"}}}
	svc := NewLocationService(geocoder)

	locations, err := svc.Search(context.Background(), "  rome  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geocoder.query != "rome" {
		t.Fatalf("expected trimmed query, got %q", geocoder.query)
	}
	if len(locations) != 1 {
		t.Fatalf("expected one location, got %d", len(locations))
	}
}

func TestLocationSearchRejectsEmptyQuery(t *testing.T) {
	geocoder := &fakeGeocoder{}
	svc := NewLocationService(geocoder)

	if _, err := svc.Search(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if geocoder.calls != 0 {
		t.Fatalf("expected no upstream call for empty query")
	}
}

func TestLocationSearchNoMatchIsNotAnError(t *testing.T) {
	svc := NewLocationService(&fakeGeocoder{result: []domain.Location{}})

	locations, err := svc.Search(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("expected no error for zero matches, got %v", err)
	}
	if len(locations) != 0 {
		t.Fatalf("expected empty list, got %d", len(locations))
	}
}
