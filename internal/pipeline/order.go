package pipeline

import (
	"slices"

	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
)

// ReadingOrder returns spans sorted into text lines from top to bottom and,
// within a line, from left to right. A span joins the current line when its
// vertical centre lies inside the line's vertical extent. The input is not
// modified.
func ReadingOrder(spans []ocr.Span) []ocr.Span {
	if len(spans) < 2 {
		return append([]ocr.Span(nil), spans...)
	}

	byTop := append([]ocr.Span(nil), spans...)
	slices.SortStableFunc(byTop, func(a, b ocr.Span) int {
		return cmpFloat(a.Box().MinY, b.Box().MinY)
	})

	var (
		out        = make([]ocr.Span, 0, len(spans))
		line       []ocr.Span
		lineTop    float64
		lineBottom float64
	)
	flush := func() {
		slices.SortStableFunc(line, func(a, b ocr.Span) int {
			return cmpFloat(a.Box().MinX, b.Box().MinX)
		})
		out = append(out, line...)
		line = line[:0]
	}

	for _, s := range byTop {
		box := s.Box()
		cy := (box.MinY + box.MaxY) / 2
		if len(line) > 0 && (cy < lineTop || cy > lineBottom) {
			flush()
		}
		if len(line) == 0 {
			lineTop, lineBottom = box.MinY, box.MaxY
		} else {
			lineBottom = max(lineBottom, box.MaxY)
		}
		line = append(line, s)
	}
	flush()
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
