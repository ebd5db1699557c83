package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
)

// Report formats accepted by Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatNone = "none"
)

// Format renders res in the named format. FormatNone yields an empty string.
func Format(res *Result, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return ToText(res)
	case FormatJSON:
		return ToJSON(res)
	case FormatNone:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported report format %q (must be text, json or none)", format)
	}
}

// ToJSON serializes a result to pretty JSON.
func ToJSON(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToText renders a human-readable summary: one line per paragraph with its
// highlight, followed by totals.
func ToText(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	var sb strings.Builder
	if res.ImagePath != "" {
		fmt.Fprintf(&sb, "Image:   %s (%dx%d)\n", res.ImagePath, res.Width, res.Height)
	}
	if res.OutputPath != "" {
		fmt.Fprintf(&sb, "Output:  %s\n", res.OutputPath)
	}
	fmt.Fprintf(&sb, "Engine:  %s, policy %s, order %s\n", res.Engine, res.Policy, res.Order)
	fmt.Fprintf(&sb, "Regions: %d\n", len(res.Regions))
	for _, r := range res.Regions {
		fmt.Fprintf(&sb, "  %-6s (%.0f,%.0f)-(%.0f,%.0f) area %.0f\n",
			r.Color, r.Box.MinX, r.Box.MinY, r.Box.MaxX, r.Box.MaxY, r.Area)
	}

	fmt.Fprintf(&sb, "Paragraphs: %d\n", len(res.Spans))
	for i, s := range res.Spans {
		mark := "-"
		if s.Color != highlight.None {
			mark = s.Color.String()
		}
		line := fmt.Sprintf("  %3d [%s] %s", i+1, mark, s.Span.Text)
		if s.Span.Raw != "" && s.Span.Raw != s.Span.Text {
			line += fmt.Sprintf("  (ocr: %s)", s.Span.Raw)
		}
		sb.WriteString(line + "\n")
	}

	counts := res.Counts()
	fmt.Fprintf(&sb, "Highlighted: %d yellow, %d green, %d plain\n",
		counts[highlight.Yellow], counts[highlight.Green], counts[highlight.None])
	fmt.Fprintf(&sb, "Time: %s\n", time.Duration(res.Processing.TotalNs).Round(time.Millisecond))
	return sb.String(), nil
}
