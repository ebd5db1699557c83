package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxOrdersCoordinates(t *testing.T) {
	b := NewBox(10, 20, 2, 4)
	assert.Equal(t, Box{MinX: 2, MinY: 4, MaxX: 10, MaxY: 20}, b)
	assert.InDelta(t, 8.0, b.Width(), 1e-9)
	assert.InDelta(t, 16.0, b.Height(), 1e-9)
	assert.InDelta(t, 128.0, b.Area(), 1e-9)
	assert.Equal(t, Point{X: 6, Y: 12}, b.Center())
}

func TestBoxIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Box
		want   Box
		wantOK bool
	}{
		{
			name:   "partial overlap",
			a:      NewBox(0, 0, 10, 10),
			b:      NewBox(5, 5, 15, 15),
			want:   NewBox(5, 5, 10, 10),
			wantOK: true,
		},
		{
			name:   "touching edge",
			a:      NewBox(0, 0, 10, 10),
			b:      NewBox(10, 0, 20, 10),
			want:   NewBox(10, 0, 10, 10),
			wantOK: true,
		},
		{
			name:   "disjoint",
			a:      NewBox(0, 0, 10, 10),
			b:      NewBox(11, 11, 20, 20),
			wantOK: false,
		},
		{
			name:   "contained",
			a:      NewBox(0, 0, 100, 100),
			b:      NewBox(10, 10, 20, 20),
			want:   NewBox(10, 10, 20, 20),
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBoxPolygonAndBoundingBox(t *testing.T) {
	b := NewBox(60, 60, 140, 90)
	poly := b.Polygon()
	assert.Equal(t, Point{X: 60, Y: 60}, poly[0])
	assert.Equal(t, Point{X: 140, Y: 90}, poly[2])
	assert.Equal(t, b, BoundingBox(poly[:]))
	assert.Equal(t, Box{}, BoundingBox(nil))
}

func TestBoxToRectClamps(t *testing.T) {
	bounds := image.Rect(0, 0, 50, 50)
	r := NewBox(-5.5, 10.2, 60, 20.7).ToRect(bounds)
	assert.Equal(t, image.Rect(0, 10, 50, 21), r)
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)

	// Orientation does not matter.
	reversed := []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.InDelta(t, 100.0, PolygonArea(reversed), 1e-9)

	assert.Zero(t, PolygonArea([]Point{{0, 0}, {1, 1}}))
}
