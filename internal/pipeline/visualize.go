package pipeline

import (
	"image"
	"image/color"

	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// Overlay colours.
var (
	overlayYellow = color.RGBA{R: 230, G: 180, B: 0, A: 255}
	overlayGreen  = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	overlaySpan   = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	overlayPlain  = color.RGBA{R: 0, G: 80, B: 220, A: 255}
)

// RenderOverlay draws highlight regions in a darker shade of their colour and
// span polygons over the image: red for highlighted spans, blue for plain
// ones. It returns an RGBA copy with its origin at (0,0).
func RenderOverlay(img image.Image, res *Result) *image.RGBA {
	if img == nil {
		return nil
	}
	dst := utils.CloneRGBA(img)
	if res == nil {
		return dst
	}
	origin := img.Bounds().Min
	shift := func(p utils.Point) utils.Point {
		return utils.Point{X: p.X - float64(origin.X), Y: p.Y - float64(origin.Y)}
	}

	for _, r := range res.Regions {
		c := overlayGreen
		if r.Color == highlight.Yellow {
			c = overlayYellow
		}
		tl, br := shift(utils.Point{X: r.Box.MinX, Y: r.Box.MinY}), shift(utils.Point{X: r.Box.MaxX, Y: r.Box.MaxY})
		utils.DrawRect(dst, image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y)), c, 2)
	}
	for _, s := range res.Spans {
		c := overlayPlain
		if s.Color != highlight.None {
			c = overlaySpan
		}
		pts := make([]utils.Point, len(s.Span.Polygon))
		for i, p := range s.Span.Polygon {
			pts[i] = shift(p)
		}
		utils.DrawPolygon(dst, pts, c, 1)
	}
	return dst
}

// SaveOverlay renders the overlay and writes it as an image file.
func SaveOverlay(img image.Image, res *Result, path string) error {
	return utils.SaveImage(RenderOverlay(img, res), path)
}
