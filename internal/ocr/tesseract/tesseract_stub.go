//go:build !ocr

package tesseract

import (
	"context"
	"fmt"
	"image"

	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
)

// Engine is the placeholder used when tesseract support is not compiled in.
type Engine struct{}

// New reports that tesseract support is missing from this build.
func New(cfg ocr.Config) (*Engine, error) {
	return nil, fmt.Errorf("%w: tesseract support not compiled in; rebuild with -tags ocr",
		ocr.ErrEngineUnavailable)
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize always fails.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Detection, error) {
	return nil, fmt.Errorf("%w: tesseract support not compiled in", ocr.ErrEngineUnavailable)
}

// Close is a no-op. It is safe to call on a nil engine.
func (e *Engine) Close() error { return nil }
