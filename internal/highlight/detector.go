// Package highlight finds yellow and green highlighter marks in a page image.
//
// The image is converted to HSV, thresholded once per colour band, split into
// 8-connected blobs and each outermost blob whose contour encloses more than
// MinArea pixels becomes a Region with its bounding rectangle. Blobs lying in
// a hole of another blob of the same colour are ignored.
package highlight

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// DefaultMinArea is the contour area at or below which blobs are treated as noise.
const DefaultMinArea = 100.0

// Region is one highlighted blob: the bounding rectangle (x1,y1)-(x2,y2) with an
// exclusive max corner, its colour and the contour area that passed the noise filter.
type Region struct {
	Box   utils.Box `json:"box"`
	Color Color     `json:"color"`
	Area  float64   `json:"area"`
}

// Config controls highlight detection.
type Config struct {
	Bands      []Band
	MinArea    float64
	OpenKernel int // 0 or 1 disables the morphological opening of each mask
}

// DefaultConfig returns the detector defaults.
func DefaultConfig() Config {
	return Config{
		Bands:      DefaultBands(),
		MinArea:    DefaultMinArea,
		OpenKernel: 0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Bands) == 0 {
		return errors.New("at least one color band is required")
	}
	for i, b := range c.Bands {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("band %d: %w", i, err)
		}
		for j := range i {
			if c.Bands[j].Color != b.Color && c.Bands[j].Overlaps(b) {
				return fmt.Errorf("bands %d (%s) and %d (%s) overlap", j, c.Bands[j].Color, i, b.Color)
			}
		}
	}
	if c.MinArea < 0 {
		return fmt.Errorf("invalid min area: %.1f (must not be negative)", c.MinArea)
	}
	if c.OpenKernel < 0 {
		return fmt.Errorf("invalid open kernel: %d (must not be negative)", c.OpenKernel)
	}
	return nil
}

// Detector finds highlight regions.
type Detector struct {
	cfg Config
}

// NewDetector validates cfg and returns a detector.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid highlight config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns a copy of the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// Detect returns every highlight region in img, bands in configuration order and
// regions of one band in raster order. A nil or empty image yields no regions.
func (d *Detector) Detect(img image.Image) []Region {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	pixels, w, h := toHSV(img)
	origin := img.Bounds().Min

	var regions []Region
	for _, band := range d.cfg.Bands {
		mask := openMask(buildMask(pixels, band), w, h, d.cfg.OpenKernel)
		found := d.regionsFromMask(mask, w, h, band.Color)
		for i := range found {
			found[i].Box.MinX += float64(origin.X)
			found[i].Box.MaxX += float64(origin.X)
			found[i].Box.MinY += float64(origin.Y)
			found[i].Box.MaxY += float64(origin.Y)
		}
		slog.Debug("Highlight band scanned", "color", band.Color.String(), "regions", len(found))
		regions = append(regions, found...)
	}
	return regions
}

// regionsFromMask converts the components of one mask into regions.
func (d *Detector) regionsFromMask(mask []bool, w, h int, c Color) []Region {
	comps, labels := connectedComponents(mask, w, h)
	outside := outerBackground(mask, w, h)
	regions := make([]Region, 0, len(comps))
	for i, st := range comps {
		// Only outer contours count, so blobs inside another blob's hole are skipped.
		if nested(st, outside, w) {
			continue
		}
		// A component's contour area never exceeds its bounding-rect area.
		if float64(st.maxX-st.minX)*float64(st.maxY-st.minY) <= d.cfg.MinArea {
			continue
		}
		area := contourArea(traceContour(labels, w, h, i+1, st))
		if area <= d.cfg.MinArea {
			continue
		}
		regions = append(regions, Region{
			Box:   utils.NewBox(float64(st.minX), float64(st.minY), float64(st.maxX+1), float64(st.maxY+1)),
			Color: c,
			Area:  area,
		})
	}
	return regions
}
