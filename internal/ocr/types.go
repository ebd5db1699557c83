// Package ocr turns a page image into recognised text spans.
//
// An Engine performs the recognition itself; an Extractor wraps an engine
// together with a spelling corrector and produces the spans consumed by the
// highlight correlator.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// ErrEngineUnavailable is returned when an OCR engine cannot be initialised,
// for example when its native library or credentials are missing.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// Level selects the granularity of recognised spans.
type Level string

const (
	LevelWord Level = "word"
	LevelLine Level = "line"
)

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelWord:
		return LevelWord, nil
	case LevelLine, "":
		return LevelLine, nil
	default:
		return "", fmt.Errorf("invalid ocr level %q (must be word or line)", s)
	}
}

// Detection is one raw engine result: the recognised string and its
// quadrilateral in image pixel coordinates.
type Detection struct {
	Polygon    [4]utils.Point
	Text       string
	Confidence float64
}

// Span is a recognised text span after spelling correction.
type Span struct {
	Text       string         `json:"text"`
	Raw        string         `json:"raw"`
	Polygon    [4]utils.Point `json:"polygon"`
	Confidence float64        `json:"confidence"`
}

// Box returns the span's axis-aligned bounding box over all four vertices.
func (s Span) Box() utils.Box {
	return utils.BoundingBox(s.Polygon[:])
}

// Engine recognises text in an image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Detection, error)
	Name() string
	Close() error
}

// Config selects and configures an engine.
type Config struct {
	Engine         string
	Language       string
	Level          Level
	PageSegMode    int
	TessdataPrefix string
	Azure          AzureConfig
}

// AzureConfig holds Azure Computer Vision credentials.
type AzureConfig struct {
	Endpoint string
	Key      string
}

// DefaultConfig returns the OCR defaults: tesseract, English, line level.
func DefaultConfig() Config {
	return Config{
		Engine:      "tesseract",
		Language:    "eng",
		Level:       LevelLine,
		PageSegMode: 3,
	}
}

// RectPolygon returns the clockwise polygon TL, TR, BR, BL of r.
func RectPolygon(r image.Rectangle) [4]utils.Point {
	return utils.BoxFromRect(r).Polygon()
}
