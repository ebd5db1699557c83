package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Highlighter ink colours that fall inside the default detection bands.
var (
	MarkerYellow = color.RGBA{R: 255, G: 240, B: 0, A: 255}
	MarkerGreen  = color.RGBA{R: 60, G: 210, B: 60, A: 255}
	PaperWhite   = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	InkBlack     = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Mark is a filled highlighter rectangle.
type Mark struct {
	Rect  image.Rectangle
	Color color.Color
}

// Word is a text string drawn with its baseline-left corner at At.
type Word struct {
	Text string
	At   image.Point
}

// PageConfig describes a synthetic scanned page.
type PageConfig struct {
	Width      int
	Height     int
	Background color.Color
	Marks      []Mark
	Words      []Word
}

// DefaultPageConfig returns a blank 320x240 page.
func DefaultPageConfig() PageConfig {
	return PageConfig{Width: 320, Height: 240, Background: PaperWhite}
}

// GeneratePage renders the marks first and the words on top of them.
func GeneratePage(cfg PageConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: cfg.Background}, image.Point{}, draw.Src)

	for _, m := range cfg.Marks {
		draw.Draw(img, m.Rect.Intersect(img.Bounds()), &image.Uniform{C: m.Color}, image.Point{}, draw.Src)
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: &image.Uniform{C: InkBlack}, Face: face}
	for _, w := range cfg.Words {
		drawer.Dot = fixed.P(w.At.X, w.At.Y)
		drawer.DrawString(w.Text)
	}
	return img
}

// SavePNG writes img to dir/name and returns the path.
func SavePNG(t *testing.T, img image.Image, dir, name string) string {
	t.Helper()
	require.NoError(t, EnsureDir(dir))
	p := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, p), "failed to save %s", p)
	return p
}

// WriteCorruptImage writes bytes that carry an image extension but do not decode.
func WriteCorruptImage(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("definitely not an image"), 0o600))
	return p
}
