package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Yara1604/InnovNation-Hackathon/internal/spell"
)

// Extractor runs an engine and spell-corrects every detection.
type Extractor struct {
	engine    Engine
	corrector spell.Corrector
}

// NewExtractor returns an extractor. A nil corrector leaves text uncorrected.
func NewExtractor(engine Engine, corrector spell.Corrector) (*Extractor, error) {
	if engine == nil {
		return nil, errors.New("ocr engine is required")
	}
	if corrector == nil {
		corrector = spell.Nop{}
	}
	return &Extractor{engine: engine, corrector: corrector}, nil
}

// Engine returns the wrapped engine.
func (e *Extractor) Engine() Engine { return e.engine }

// Extract recognises img and returns spans in engine order. Detections whose
// text is blank are dropped; every other string goes through the corrector.
func (e *Extractor) Extract(ctx context.Context, img image.Image) ([]Span, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	dets, err := e.engine.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%s recognition failed: %w", e.engine.Name(), err)
	}

	spans := make([]Span, 0, len(dets))
	for _, d := range dets {
		raw := strings.Join(strings.Fields(norm.NFC.String(d.Text)), " ")
		if raw == "" {
			continue
		}
		text := e.corrector.Correct(raw)
		if strings.TrimSpace(text) == "" {
			text = raw
		}
		spans = append(spans, Span{
			Text:       text,
			Raw:        raw,
			Polygon:    d.Polygon,
			Confidence: d.Confidence,
		})
	}

	slog.Debug("Text extracted",
		"engine", e.engine.Name(),
		"detections", len(dets),
		"spans", len(spans),
		"duration_ms", time.Since(start).Milliseconds())
	return spans, nil
}

// Close releases the engine.
func (e *Extractor) Close() error {
	return e.engine.Close()
}
