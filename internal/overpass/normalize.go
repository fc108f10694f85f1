package overpass

import (
	"strconv"

	"github.com/kidspots/kidspots-api/internal/domain"
)

// Normalize maps raw elements into uniform venues. Elements with no usable
// coordinate (no point, no centroid, no geometry) are dropped silently.
// The second return counts elements whose tags matched no category
// predicate and received the priority-order fallback; callers should log
// it so misclassification stays observable.
func Normalize(elements []Element) ([]domain.Venue, int) {
	venues := make([]domain.Venue, 0, len(elements))
	unmatched := 0

	for _, el := range elements {
		lat, lng, ok := resolveCoordinate(el)
		if !ok {
			continue
		}

		tags := el.Tags
		if tags == nil {
			tags = map[string]string{}
		}

		venueType, matched := domain.VenueTypeFromTags(tags)
		if !matched {
			unmatched++
		}

		name := tags["name"]
		if name == "" {
			name = "Unnamed Location"
		}

		address := tags["addr:full"]
		if address == "" {
			address = tags["addr:street"]
		}

		venues = append(venues, domain.Venue{
			ID:          strconv.FormatInt(el.ID, 10),
			Name:        name,
			Type:        venueType,
			Lat:         lat,
			Lng:         lng,
			Address:     address,
			Description: firstTag(tags, "description", "amenity", "leisure", "tourism"),
			Tags:        el.Tags,
		})
	}

	return venues, unmatched
}

// resolveCoordinate applies the placement priority: direct point, then
// precomputed centroid, then the first geometry vertex.
func resolveCoordinate(el Element) (float64, float64, bool) {
	if el.Lat != 0 || el.Lon != 0 {
		return el.Lat, el.Lon, true
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon, true
	}
	if len(el.Geometry) > 0 {
		return el.Geometry[0].Lat, el.Geometry[0].Lon, true
	}
	return 0, 0, false
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}
