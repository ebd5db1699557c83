package ocr

import (
	"context"
	"image"
	"sync"
)

// FixedEngine returns a preset list of detections for every image. It stands in
// for a real recogniser when the text is already known, such as in tests and
// dry runs.
type FixedEngine struct {
	mu         sync.Mutex
	detections []Detection
	err        error
	calls      int
	closed     bool
}

// NewFixedEngine returns an engine that always yields dets.
func NewFixedEngine(dets ...Detection) *FixedEngine {
	return &FixedEngine{detections: dets}
}

// FailWith makes every later Recognize call return err.
func (f *FixedEngine) FailWith(err error) *FixedEngine {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// Recognize returns a copy of the preset detections.
func (f *FixedEngine) Recognize(ctx context.Context, _ image.Image) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Detection, len(f.detections))
	copy(out, f.detections)
	return out, nil
}

// Calls reports how many times Recognize ran.
func (f *FixedEngine) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Closed reports whether Close was called.
func (f *FixedEngine) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FixedEngine) Name() string { return "fixed" }

func (f *FixedEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// RectDetection builds a detection from an axis-aligned rectangle.
func RectDetection(text string, r image.Rectangle) Detection {
	return Detection{Polygon: RectPolygon(r), Text: text, Confidence: 1}
}
