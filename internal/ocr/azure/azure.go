// Package azure provides an OCR engine backed by Azure Computer Vision.
package azure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"

	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// printedTextRecognizer is the subset of the Computer Vision client used here.
type printedTextRecognizer interface {
	RecognizePrintedTextInStream(ctx context.Context, detectOrientation bool, imageParameter io.ReadCloser,
		language computervision.OcrLanguages) (computervision.OcrResult, error)
}

// Engine sends the page to the Computer Vision OCR endpoint.
type Engine struct {
	client printedTextRecognizer
	level  ocr.Level
}

// New creates the engine. Missing credentials yield ocr.ErrEngineUnavailable.
func New(cfg ocr.Config) (*Engine, error) {
	if cfg.Azure.Endpoint == "" || cfg.Azure.Key == "" {
		return nil, fmt.Errorf("%w: azure endpoint and key are required", ocr.ErrEngineUnavailable)
	}
	client := computervision.New(cfg.Azure.Endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(cfg.Azure.Key)
	return newWithClient(client, cfg.Level), nil
}

func newWithClient(client printedTextRecognizer, level ocr.Level) *Engine {
	if level == "" {
		level = ocr.LevelLine
	}
	return &Engine{client: client, level: level}
}

func (e *Engine) Name() string { return "azure" }

// Recognize uploads img as PNG and converts the OCR result into detections.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Detection, error) {
	data, err := utils.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	result, err := e.client.RecognizePrintedTextInStream(
		ctx,
		false,
		io.NopCloser(bytes.NewReader(data)),
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	return detectionsFromResult(result, e.level, img.Bounds().Min)
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (e *Engine) Close() error { return nil }

// detectionsFromResult flattens regions and lines in service order. At word
// level each word becomes a detection; at line level the words are joined.
// A missing or malformed bounding box fails the whole result.
func detectionsFromResult(result computervision.OcrResult, level ocr.Level, origin image.Point) ([]ocr.Detection, error) {
	var out []ocr.Detection
	if result.Regions == nil {
		return out, nil
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			var words []computervision.OcrWord
			if line.Words != nil {
				words = *line.Words
			}

			if level == ocr.LevelWord {
				for _, w := range words {
					d, err := detection(w.BoundingBox, textOf(w.Text), origin)
					if err != nil {
						return nil, fmt.Errorf("word %q: %w", textOf(w.Text), err)
					}
					out = append(out, d)
				}
				continue
			}

			parts := make([]string, 0, len(words))
			for _, w := range words {
				if t := textOf(w.Text); t != "" {
					parts = append(parts, t)
				}
			}
			text := strings.Join(parts, " ")
			d, err := detection(line.BoundingBox, text, origin)
			if err != nil {
				return nil, fmt.Errorf("line %q: %w", text, err)
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func detection(bbox *string, text string, origin image.Point) (ocr.Detection, error) {
	if bbox == nil {
		return ocr.Detection{}, errors.New("missing bounding box")
	}
	r, err := ParseBoundingBox(*bbox)
	if err != nil {
		return ocr.Detection{}, fmt.Errorf("invalid bounding box %q: %w", *bbox, err)
	}
	return ocr.Detection{Polygon: ocr.RectPolygon(r.Add(origin)), Text: text, Confidence: 1}, nil
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ParseBoundingBox parses the service's "x,y,width,height" box format.
func ParseBoundingBox(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("value %d: %w", i, err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return image.Rectangle{}, fmt.Errorf("negative size %dx%d", v[2], v[3])
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
