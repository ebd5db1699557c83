//go:build ocr

package tesseract

import (
	"context"
	"fmt"
	"image"
	"slices"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// Engine recognises text with a single long-lived gosseract client. The client
// is not safe for concurrent use, so calls are serialised.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
	level  gosseract.PageIteratorLevel
	cfg    ocr.Config
}

// New creates the engine. It returns ocr.ErrEngineUnavailable when the trained
// data for the configured language cannot be found.
func New(cfg ocr.Config) (*Engine, error) {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	cfg.TessdataPrefix = ResolveTessdataPrefix(cfg.TessdataPrefix, lang)
	if err := checkLanguage(lang, cfg.TessdataPrefix); err != nil {
		return nil, err
	}

	level := gosseract.RIL_TEXTLINE
	if cfg.Level == ocr.LevelWord {
		level = gosseract.RIL_WORD
	}

	client := gosseract.NewClient()
	if cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(lang); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("set language: %w", err)
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}

	cfg.Language = lang
	return &Engine{client: client, level: level, cfg: cfg}, nil
}

func checkLanguage(lang, prefix string) error {
	if prefix != "" {
		if !TrainedDataExists(prefix, lang) {
			return fmt.Errorf("%w: tesseract language data %s not found",
				ocr.ErrEngineUnavailable, TrainedDataPath(prefix, lang))
		}
		return nil
	}
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("%w: list tesseract languages: %v", ocr.ErrEngineUnavailable, err)
	}
	if !slices.Contains(langs, lang) {
		return fmt.Errorf("%w: tesseract language %q not installed (have %s)",
			ocr.ErrEngineUnavailable, lang, strings.Join(langs, ", "))
	}
	return nil
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs tesseract over the full image and returns one detection per
// word or text line.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := utils.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil, fmt.Errorf("%w: tesseract engine is closed", ocr.ErrEngineUnavailable)
	}
	if err := e.client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(e.level)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	return detectionsFromBoxes(boxes, img.Bounds().Min), nil
}

// detectionsFromBoxes converts tesseract boxes, which are relative to the
// encoded image, into detections in the caller's coordinate space.
func detectionsFromBoxes(boxes []gosseract.BoundingBox, origin image.Point) []ocr.Detection {
	out := make([]ocr.Detection, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, ocr.Detection{
			Polygon:    ocr.RectPolygon(b.Box.Add(origin)),
			Text:       strings.TrimSpace(b.Word),
			Confidence: b.Confidence / 100.0,
		})
	}
	return out
}

// Close releases the tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
