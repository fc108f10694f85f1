package overpass

import (
	"testing"

	"github.com/kidspots/kidspots-api/internal/domain"
)

func TestNormalizePreservesNodeCoordinates(t *testing.T) {
	elements := []Element{
		{
			Type: "node",
			ID:   123456,
			Lat:  41.91,
			Lon:  12.49,
			Tags: map[string]string{"leisure": "park", "name": "Villa Borghese"},
		},
	}

	venues, unmatched := Normalize(elements)
	if unmatched != 0 {
		t.Fatalf("expected no fallback classifications, got %d", unmatched)
	}
	if len(venues) != 1 {
		t.Fatalf("expected one venue, got %d", len(venues))
	}

	venue := venues[0]
	if venue.ID != "123456" {
		t.Fatalf("expected id \"123456\", got %q", venue.ID)
	}
	if venue.Name != "Villa Borghese" {
		t.Fatalf("expected name Villa Borghese, got %q", venue.Name)
	}
	if venue.Type != domain.VenueTypePark {
		t.Fatalf("expected type park, got %q", venue.Type)
	}
	if venue.Lat != 41.91 || venue.Lng != 12.49 {
		t.Fatalf("expected coordinates preserved exactly, got (%v, %v)", venue.Lat, venue.Lng)
	}
}

func TestNormalizeCoordinatePriority(t *testing.T) {
	tags := map[string]string{"tourism": "museum"}
	elements := []Element{
		{ID: 1, Lat: 1.5, Lon: 2.5, Center: &Point{Lat: 9, Lon: 9}, Tags: tags},
		{ID: 2, Center: &Point{Lat: 3.5, Lon: 4.5}, Geometry: []Point{{Lat: 9, Lon: 9}}, Tags: tags},
		{ID: 3, Geometry: []Point{{Lat: 5.5, Lon: 6.5}, {Lat: 9, Lon: 9}}, Tags: tags},
	}

	venues, _ := Normalize(elements)
	if len(venues) != 3 {
		t.Fatalf("expected three venues, got %d", len(venues))
	}

	if venues[0].Lat != 1.5 || venues[0].Lng != 2.5 {
		t.Fatalf("direct point should win over center, got (%v, %v)", venues[0].Lat, venues[0].Lng)
	}
	if venues[1].Lat != 3.5 || venues[1].Lng != 4.5 {
		t.Fatalf("center should win over geometry, got (%v, %v)", venues[1].Lat, venues[1].Lng)
	}
	if venues[2].Lat != 5.5 || venues[2].Lng != 6.5 {
		t.Fatalf("expected first geometry vertex, got (%v, %v)", venues[2].Lat, venues[2].Lng)
	}
}

func TestNormalizeDropsUnplaceableElements(t *testing.T) {
	elements := []Element{
		{ID: 1, Lat: 41.9, Lon: 12.5, Tags: map[string]string{"leisure": "playground"}},
		{ID: 2, Tags: map[string]string{"leisure": "playground"}},
	}

	venues, _ := Normalize(elements)
	if len(venues) != 1 {
		t.Fatalf("expected unplaceable element to be dropped, got %d venues", len(venues))
	}
	if venues[0].ID != "1" {
		t.Fatalf("expected the placeable element to survive, got id %q", venues[0].ID)
	}
}

func TestNormalizeCategoryPriorityOrder(t *testing.T) {
	// An element tagged both playground and museum classifies as playground:
	// the priority list is checked in order and playground comes first.
	elements := []Element{
		{ID: 1, Lat: 1, Lon: 1, Tags: map[string]string{"leisure": "playground", "tourism": "museum"}},
	}

	venues, unmatched := Normalize(elements)
	if unmatched != 0 {
		t.Fatalf("expected element to match a predicate")
	}
	if venues[0].Type != domain.VenueTypePlayground {
		t.Fatalf("expected playground to win by priority, got %q", venues[0].Type)
	}
}

func TestNormalizeUnmatchedTagsFallBackAndAreCounted(t *testing.T) {
	elements := []Element{
		{ID: 1, Lat: 1, Lon: 1, Tags: map[string]string{"leisure": "water_park"}},
	}

	venues, unmatched := Normalize(elements)
	if unmatched != 1 {
		t.Fatalf("expected one fallback classification, got %d", unmatched)
	}
	if venues[0].Type != domain.VenueTypes[0] {
		t.Fatalf("expected fallback to first priority category, got %q", venues[0].Type)
	}
}

func TestNormalizeFieldDerivation(t *testing.T) {
	elements := []Element{
		{ID: 1, Lat: 1, Lon: 1, Tags: map[string]string{"leisure": "park"}},
		{ID: 2, Lat: 1, Lon: 1, Tags: map[string]string{
			"leisure":     "park",
			"addr:street": "Via Veneto",
			"description": "old city park",
		}},
		{ID: 3, Lat: 1, Lon: 1, Tags: map[string]string{
			"leisure":   "park",
			"addr:full": "Via Veneto 1, Roma",
		}},
	}

	venues, _ := Normalize(elements)

	if venues[0].Name != "Unnamed Location" {
		t.Fatalf("expected placeholder name, got %q", venues[0].Name)
	}
	if venues[0].Description != "park" {
		t.Fatalf("expected leisure tag as description fallback, got %q", venues[0].Description)
	}
	if venues[1].Address != "Via Veneto" {
		t.Fatalf("expected street address fallback, got %q", venues[1].Address)
	}
	if venues[1].Description != "old city park" {
		t.Fatalf("expected description tag to win, got %q", venues[1].Description)
	}
	if venues[2].Address != "Via Veneto 1, Roma" {
		t.Fatalf("expected full address to win over street, got %q", venues[2].Address)
	}
}
