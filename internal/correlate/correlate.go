// Package correlate decides which highlight, if any, covers each OCR span.
//
// A span's box is taken from polygon vertices 0 and 2. Overlap uses closed
// intervals, so boxes that only share an edge or a corner still overlap.
package correlate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// Policy chooses between several overlapping regions.
type Policy string

const (
	// PolicyFirstMatch takes the first overlapping region in canonical order
	// (color, then top, left, bottom, right).
	PolicyFirstMatch Policy = "first-match"
	// PolicyMaxOverlap takes the region with the largest intersection area.
	PolicyMaxOverlap Policy = "max-overlap"
)

// ParsePolicy validates a policy name. Empty selects max-overlap.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFirstMatch, PolicyMaxOverlap:
		return p, nil
	case "":
		return PolicyMaxOverlap, nil
	default:
		return "", fmt.Errorf("invalid correlation policy %q (must be first-match or max-overlap)", s)
	}
}

// Result is a span annotated with the winning highlight. Region is nil when
// Color is highlight.None.
type Result struct {
	Span   ocr.Span          `json:"span"`
	Color  highlight.Color   `json:"color"`
	Region *highlight.Region `json:"region,omitempty"`
}

// SpanBox returns the box spanned by polygon vertices 0 and 2, normalised so
// min <= max.
func SpanBox(polygon [4]utils.Point) utils.Box {
	return utils.NewBox(polygon[0].X, polygon[0].Y, polygon[2].X, polygon[2].Y)
}

// Overlaps reports whether two boxes share at least one point, edges included.
func Overlaps(a, b utils.Box) bool {
	return !(a.MaxX < b.MinX || a.MinX > b.MaxX || a.MaxY < b.MinY || a.MinY > b.MaxY)
}

// IntersectionArea is the area shared by a and b; zero when they only touch
// or do not overlap.
func IntersectionArea(a, b utils.Box) float64 {
	inter, ok := a.Intersect(b)
	if !ok {
		return 0
	}
	return inter.Area()
}

// Correlator maps spans to highlight colours.
type Correlator struct {
	policy Policy
}

// New returns a correlator using policy.
func New(policy Policy) (*Correlator, error) {
	p, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	return &Correlator{policy: p}, nil
}

// Policy returns the active policy.
func (c *Correlator) Policy() Policy { return c.policy }

// Correlate returns the span with the colour of the winning region, or
// highlight.None when no region overlaps. The result does not depend on the
// order of regions.
func (c *Correlator) Correlate(span ocr.Span, regions []highlight.Region) Result {
	box := SpanBox(span.Polygon)
	var idx int
	if c.policy == PolicyFirstMatch {
		idx = firstMatch(box, regions)
	} else {
		idx = maxOverlap(box, regions)
	}
	if idx < 0 {
		return Result{Span: span, Color: highlight.None}
	}
	r := regions[idx]
	return Result{Span: span, Color: r.Color, Region: &r}
}

// CorrelateAll correlates every span, keeping order and length.
func (c *Correlator) CorrelateAll(spans []ocr.Span, regions []highlight.Region) []Result {
	out := make([]Result, len(spans))
	for i, s := range spans {
		out[i] = c.Correlate(s, regions)
	}
	return out
}

// compareRegions is the canonical region order: colour, MinY, MinX, MaxY, MaxX.
func compareRegions(a, b highlight.Region) int {
	switch {
	case a.Color != b.Color:
		return int(a.Color) - int(b.Color)
	case a.Box.MinY != b.Box.MinY:
		return cmpFloat(a.Box.MinY, b.Box.MinY)
	case a.Box.MinX != b.Box.MinX:
		return cmpFloat(a.Box.MinX, b.Box.MinX)
	case a.Box.MaxY != b.Box.MaxY:
		return cmpFloat(a.Box.MaxY, b.Box.MaxY)
	default:
		return cmpFloat(a.Box.MaxX, b.Box.MaxX)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func firstMatch(box utils.Box, regions []highlight.Region) int {
	best := -1
	for i, r := range regions {
		if !Overlaps(box, r.Box) {
			continue
		}
		if best < 0 || compareRegions(r, regions[best]) < 0 {
			best = i
		}
	}
	return best
}

// maxOverlap picks the largest intersection; ties go to the leftmost region,
// then the topmost, then the canonical order.
func maxOverlap(box utils.Box, regions []highlight.Region) int {
	best := -1
	var bestArea float64
	for i, r := range regions {
		if !Overlaps(box, r.Box) {
			continue
		}
		area := IntersectionArea(box, r.Box)
		if best < 0 || area > bestArea || (area == bestArea && tieBefore(r, regions[best])) {
			best, bestArea = i, area
		}
	}
	return best
}

func tieBefore(a, b highlight.Region) bool {
	if a.Box.MinX != b.Box.MinX {
		return a.Box.MinX < b.Box.MinX
	}
	if a.Box.MinY != b.Box.MinY {
		return a.Box.MinY < b.Box.MinY
	}
	return compareRegions(a, b) < 0
}

// SortRegions orders regions canonically in place.
func SortRegions(regions []highlight.Region) {
	slices.SortStableFunc(regions, compareRegions)
}
