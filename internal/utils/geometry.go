package utils

import (
	"image"
	"math"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box represents an axis-aligned bounding box in float coordinates.
type Box struct {
	MinX float64 `json:"x1"`
	MinY float64 `json:"y1"`
	MaxX float64 `json:"x2"`
	MaxY float64 `json:"y2"`
}

// NewBox constructs a Box from min/max coordinates ensuring ordering.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

// BoxFromRect converts an image.Rectangle to a Box.
func BoxFromRect(r image.Rectangle) Box {
	return NewBox(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// Width returns the box width.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Area returns the box area.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Center returns the box centre point.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Intersect returns the overlapping part of two boxes and whether it is non-empty.
// Boxes that only share an edge yield a zero-area box and ok=true.
func (b Box) Intersect(o Box) (Box, bool) {
	minX := math.Max(b.MinX, o.MinX)
	minY := math.Max(b.MinY, o.MinY)
	maxX := math.Min(b.MaxX, o.MaxX)
	maxY := math.Min(b.MaxY, o.MaxY)
	if minX > maxX || minY > maxY {
		return Box{}, false
	}
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}

// Polygon returns the four corners clockwise from the top-left.
func (b Box) Polygon() [4]Point {
	return [4]Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// ToRect converts a Box to an image.Rectangle, clamped to image bounds.
func (b Box) ToRect(bounds image.Rectangle) image.Rectangle {
	x1 := clampInt(int(math.Floor(b.MinX)), bounds.Min.X, bounds.Max.X)
	y1 := clampInt(int(math.Floor(b.MinY)), bounds.Min.Y, bounds.Max.Y)
	x2 := clampInt(int(math.Ceil(b.MaxX)), bounds.Min.X, bounds.Max.X)
	y2 := clampInt(int(math.Ceil(b.MaxY)), bounds.Min.Y, bounds.Max.Y)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return image.Rect(x1, y1, x2, y2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BoundingBox returns the axis-aligned bounding box for a set of points.
func BoundingBox(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// PolygonArea returns the absolute area of a closed polygon (shoelace formula).
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}
