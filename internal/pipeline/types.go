package pipeline

import (
	"fmt"
	"strings"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
)

// Order selects the paragraph order of the output document.
type Order string

const (
	// OrderDetection keeps the order in which the OCR engine reported spans.
	OrderDetection Order = "detection"
	// OrderReading sorts spans into lines top to bottom, then left to right.
	OrderReading Order = "reading"
)

// ParseOrder validates an order name. Empty selects detection order.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderDetection, OrderReading:
		return o, nil
	case "":
		return OrderDetection, nil
	default:
		return "", fmt.Errorf("invalid paragraph order %q (must be detection or reading)", s)
	}
}

// Result summarises one conversion.
type Result struct {
	ImagePath  string             `json:"image_path,omitempty"`
	ImageBytes int64              `json:"image_bytes,omitempty"`
	OutputPath string             `json:"output_path,omitempty"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Engine     string             `json:"engine"`
	Policy     correlate.Policy   `json:"policy"`
	Order      Order              `json:"order"`
	Regions    []highlight.Region `json:"regions"`
	Spans      []correlate.Result `json:"spans"`
	Processing struct {
		DetectionNs   int64 `json:"detection_ns"`
		ExtractionNs  int64 `json:"extraction_ns"`
		CorrelationNs int64 `json:"correlation_ns"`
		WriteNs       int64 `json:"write_ns"`
		TotalNs       int64 `json:"total_ns"`
	} `json:"processing"`
}

// Counts returns the number of spans per colour, including highlight.None.
func (r *Result) Counts() map[highlight.Color]int {
	counts := make(map[highlight.Color]int, 3)
	for _, s := range r.Spans {
		counts[s.Color]++
	}
	return counts
}

// Colors returns the colour of each span in output order.
func (r *Result) Colors() []highlight.Color {
	out := make([]highlight.Color, len(r.Spans))
	for i, s := range r.Spans {
		out[i] = s.Color
	}
	return out
}
