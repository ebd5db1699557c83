package utils

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// CloneRGBA copies img into a new RGBA image anchored at the origin.
func CloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FillRect fills rect with a solid colour, clipped to dst.
func FillRect(dst draw.Image, rect image.Rectangle, col color.Color) {
	draw.Draw(dst, rect.Intersect(dst.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// DrawRect outlines rect with strokes of the given thickness drawn inside it.
func DrawRect(dst draw.Image, rect image.Rectangle, col color.Color, thickness int) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	t := min(max(thickness, 1), rect.Dx(), rect.Dy())
	FillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), col)
	FillRect(dst, image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), col)
	FillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), col)
	FillRect(dst, image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

// DrawPolygon outlines the closed polygon through pts.
func DrawPolygon(dst draw.Image, pts []Point, col color.Color, thickness int) {
	if len(pts) < 2 {
		return
	}
	for i, p := range pts {
		drawSegment(dst, p, pts[(i+1)%len(pts)], col, thickness)
	}
}

// drawSegment steps along the longer axis and stamps a square brush at every
// pixel position.
func drawSegment(dst draw.Image, a, b Point, col color.Color, thickness int) {
	r := (max(thickness, 1) - 1) / 2
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		x := int(math.Round(a.X + f*(b.X-a.X)))
		y := int(math.Round(a.Y + f*(b.Y-a.Y)))
		FillRect(dst, image.Rect(x-r, y-r, x+r+1, y+r+1), col)
	}
}
