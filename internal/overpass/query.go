package overpass

import (
	"fmt"
	"strings"

	"github.com/kidspots/kidspots-api/internal/domain"
)

// serverTimeout is the execution budget handed to the Overpass server.
const serverTimeout = 25

// BuildQuery composes a single Overpass QL request that unions one clause
// family (node, way, relation) per requested venue type inside the bounding
// box, asking for full geometry. Callers must not invoke this with an empty
// type set; a zero-type search is defined as "no results" and short-circuits
// before any query is built.
func BuildQuery(bounds domain.BoundingBox, types []domain.VenueType) string {
	bbox := fmt.Sprintf("%v,%v,%v,%v", bounds.South, bounds.West, bounds.North, bounds.East)

	var clauses strings.Builder
	for _, t := range types {
		cfg := t.Config()
		predicate := fmt.Sprintf("[%s=%s]", cfg.TagKey, cfg.TagValue)
		fmt.Fprintf(&clauses, "(node%s(%s);way%s(%s);relation%s(%s););\n",
			predicate, bbox, predicate, bbox, predicate, bbox)
	}

	return fmt.Sprintf("[out:json][timeout:%d];\n(\n%s);\nout geom;", serverTimeout, clauses.String())
}
