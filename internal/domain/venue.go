package domain

import "fmt"

// VenueType is the closed set of kid-friendly venue categories the app
// knows how to search for.
type VenueType string

const (
	VenueTypePlayground    VenueType = "playground"
	VenueTypePark          VenueType = "park"
	VenueTypeMuseum        VenueType = "museum"
	VenueTypeGallery       VenueType = "gallery"
	VenueTypeScienceCenter VenueType = "science_center"
	VenueTypePlanetarium   VenueType = "planetarium"
	VenueTypeSwimmingPool  VenueType = "swimming_pool"
)

// VenueTypes lists every category in priority order. The order matters:
// tag inference checks predicates in this order and the first match wins,
// and elements whose tags match no predicate fall back to the first entry.
var VenueTypes = []VenueType{
	VenueTypePlayground,
	VenueTypePark,
	VenueTypeMuseum,
	VenueTypeGallery,
	VenueTypeScienceCenter,
	VenueTypePlanetarium,
	VenueTypeSwimmingPool,
}

// VenueTypeConfig carries the OSM tag predicate and display metadata for a
// category. TagKey/TagValue form the predicate both for building Overpass
// queries and for classifying returned elements.
type VenueTypeConfig struct {
	TagKey   string
	TagValue string
	Icon     string
	Color    string
	Label    string
}

// Config returns the metadata for a venue type. The switch is total over the
// enumeration; an unknown value can only come from a programming error, so
// it panics rather than inventing a fallback.
func (t VenueType) Config() VenueTypeConfig {
	switch t {
	case VenueTypePlayground:
		return VenueTypeConfig{TagKey: "leisure", TagValue: "playground", Icon: "baby", Color: "#34C759", Label: "Playgrounds"}
	case VenueTypePark:
		return VenueTypeConfig{TagKey: "leisure", TagValue: "park", Icon: "trees", Color: "#34C759", Label: "Parks"}
	case VenueTypeMuseum:
		return VenueTypeConfig{TagKey: "tourism", TagValue: "museum", Icon: "building", Color: "#AF52DE", Label: "Museums"}
	case VenueTypeGallery:
		return VenueTypeConfig{TagKey: "tourism", TagValue: "gallery", Icon: "palette", Color: "#FF9500", Label: "Art Galleries"}
	case VenueTypeScienceCenter:
		return VenueTypeConfig{TagKey: "amenity", TagValue: "science_centre", Icon: "atom", Color: "#007AFF", Label: "Science Centers"}
	case VenueTypePlanetarium:
		return VenueTypeConfig{TagKey: "amenity", TagValue: "planetarium", Icon: "globe", Color: "#1C1C1E", Label: "Planetariums"}
	case VenueTypeSwimmingPool:
		return VenueTypeConfig{TagKey: "leisure", TagValue: "swimming_pool", Icon: "waves", Color: "#007AFF", Label: "Swimming Pools"}
	}
	panic(fmt.Sprintf("domain: unknown venue type %q", string(t)))
}

// Matches reports whether the tag map satisfies this type's predicate.
func (t VenueType) Matches(tags map[string]string) bool {
	cfg := t.Config()
	return tags[cfg.TagKey] == cfg.TagValue
}

// ParseVenueType validates a wire value against the enumeration.
func ParseVenueType(s string) (VenueType, error) {
	for _, t := range VenueTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown venue type %q", s)
}

// VenueTypeFromTags classifies an element by its tags. The second return is
// false when no predicate matched and the caller received the priority-order
// fallback instead of a real match.
func VenueTypeFromTags(tags map[string]string) (VenueType, bool) {
	for _, t := range VenueTypes {
		if t.Matches(tags) {
			return t, true
		}
	}
	return VenueTypes[0], false
}

// Venue is a transient search result normalized from an external geodata
// element. It is never persisted as its own entity; favorites and visited
// marks carry a denormalized snapshot instead.
type Venue struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        VenueType         `json:"type"`
	Lat         float64           `json:"lat"`
	Lng         float64           `json:"lng"`
	Address     string            `json:"address,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// BoundingBox is a map viewport in WGS84 decimal degrees.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Validate rejects out-of-range or inverted bounds. Antimeridian-crossing
// viewports (west > east) are rejected; callers must normalize them first.
func (b BoundingBox) Validate() error {
	if b.North < -90 || b.North > 90 || b.South < -90 || b.South > 90 {
		return fmt.Errorf("latitude bounds must be within [-90, 90]")
	}
	if b.East < -180 || b.East > 180 || b.West < -180 || b.West > 180 {
		return fmt.Errorf("longitude bounds must be within [-180, 180]")
	}
	if b.North <= b.South {
		return fmt.Errorf("north bound must be greater than south bound")
	}
	if b.East <= b.West {
		return fmt.Errorf("east bound must be greater than west bound")
	}
	return nil
}

// Location is a geocoding hit for a free-text place query. Transient.
type Location struct {
	Query       string  `json:"query"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}
