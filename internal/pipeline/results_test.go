package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/spell"
	"github.com/Yara1604/InnovNation-Hackathon/internal/testutil"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

func sampleResult() *Result {
	region := highlight.Region{Box: utils.NewBox(50, 50, 150, 100), Color: highlight.Yellow, Area: 4851}
	res := &Result{
		ImagePath: "page.png",
		Width:     320,
		Height:    240,
		Engine:    "fixed",
		Policy:    correlate.PolicyMaxOverlap,
		Order:     OrderDetection,
		Regions:   []highlight.Region{region},
		Spans: []correlate.Result{
			{
				Span:   ocr.Span{Text: "Hello", Raw: "Helo", Polygon: ocr.RectPolygon(image.Rect(60, 60, 140, 90))},
				Color:  highlight.Yellow,
				Region: &region,
			},
			{Span: ocr.Span{Text: "plain", Raw: "plain", Polygon: ocr.RectPolygon(image.Rect(10, 200, 60, 215))}},
		},
	}
	res.Processing.TotalNs = int64(12 * time.Millisecond)
	return res
}

func TestToText(t *testing.T) {
	out, err := ToText(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, out, "Image:   page.png (320x240)")
	assert.Contains(t, out, "Regions: 1")
	assert.Contains(t, out, "yellow (50,50)-(150,100) area 4851")
	assert.Contains(t, out, "[yellow] Hello  (ocr: Helo)")
	assert.Contains(t, out, "[-] plain\n")
	assert.Contains(t, out, "Highlighted: 1 yellow, 0 green, 1 plain")
	assert.Contains(t, out, "Time: 12ms")

	_, err = ToText(nil)
	require.Error(t, err)
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "fixed", decoded["engine"])
	assert.Equal(t, "max-overlap", decoded["policy"])

	spans, ok := decoded["spans"].([]any)
	require.True(t, ok)
	require.Len(t, spans, 2)
	first := spans[0].(map[string]any)
	assert.Equal(t, "yellow", first["color"])
	assert.Contains(t, first, "region")
	second := spans[1].(map[string]any)
	assert.Equal(t, "none", second["color"])
	assert.NotContains(t, second, "region")

	_, err = ToJSON(nil)
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	res := sampleResult()
	for _, f := range []string{"", "text", "TEXT"} {
		out, err := Format(res, f)
		require.NoError(t, err)
		assert.Contains(t, out, "Paragraphs: 2")
	}
	out, err := Format(res, FormatJSON)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = Format(res, FormatNone)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Format(res, "yaml")
	require.Error(t, err)
}

func spanAt(text string, r image.Rectangle) ocr.Span {
	return ocr.Span{Text: text, Polygon: ocr.RectPolygon(r)}
}

func texts(spans []ocr.Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text
	}
	return out
}

func TestReadingOrder(t *testing.T) {
	spans := []ocr.Span{
		spanAt("d", image.Rect(100, 52, 150, 66)),
		spanAt("a", image.Rect(10, 10, 60, 25)),
		spanAt("c", image.Rect(10, 50, 60, 65)),
		spanAt("b", image.Rect(80, 13, 130, 27)),
	}
	orig := append([]ocr.Span(nil), spans...)

	got := ReadingOrder(spans)
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts(got))
	assert.Equal(t, orig, spans, "input untouched")

	assert.Empty(t, ReadingOrder(nil))
	single := []ocr.Span{spanAt("x", image.Rect(0, 0, 1, 1))}
	assert.Equal(t, single, ReadingOrder(single))
}

func TestReadingOrder_TallSpanSplitsLines(t *testing.T) {
	spans := []ocr.Span{
		spanAt("below", image.Rect(5, 40, 50, 55)),
		spanAt("tall", image.Rect(60, 0, 90, 30)),
		spanAt("beside", image.Rect(0, 5, 50, 20)),
	}
	assert.Equal(t, []string{"beside", "tall", "below"}, texts(ReadingOrder(spans)))
}

func TestRenderOverlay(t *testing.T) {
	img := testutil.GeneratePage(testutil.DefaultPageConfig())
	res := sampleResult()

	out := RenderOverlay(img, res)
	require.NotNil(t, out)
	assert.Equal(t, img.Bounds(), out.Bounds())
	assert.Equal(t, overlayYellow, out.RGBAAt(50, 50))
	assert.Equal(t, overlaySpan, out.RGBAAt(60, 60))
	assert.Equal(t, overlayPlain, out.RGBAAt(10, 200))
	assert.Equal(t, testutil.PaperWhite, img.RGBAAt(50, 50), "source untouched")

	assert.Nil(t, RenderOverlay(nil, res))
	assert.Equal(t, testutil.PaperWhite, RenderOverlay(img, nil).RGBAAt(50, 50))
}

func TestRenderOverlay_SubImage(t *testing.T) {
	page := testutil.GeneratePage(testutil.DefaultPageConfig())
	sub := page.SubImage(image.Rect(40, 40, 200, 200))
	res := &Result{Regions: []highlight.Region{{Box: utils.NewBox(50, 50, 150, 100), Color: highlight.Green}}}

	out := RenderOverlay(sub, res)
	assert.Equal(t, image.Rect(0, 0, 160, 160), out.Bounds())
	assert.Equal(t, overlayGreen, out.RGBAAt(10, 10))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()
	m.Observe(sampleResult(), nil, 20*time.Millisecond)
	m.Observe(nil, ErrInputUnreadable, time.Millisecond)
	m.Observe(nil, errors.New("engine down"), time.Millisecond)

	assert.InDelta(t, 1, promtest.ToFloat64(m.runsTotal.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.runsTotal.WithLabelValues("unreadable")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.runsTotal.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.regionsTotal.WithLabelValues("yellow")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.spansTotal.WithLabelValues("yellow")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.spansTotal.WithLabelValues("none")), 0)

	var nilMetrics *Metrics
	nilMetrics.Observe(nil, nil, 0)
}

func TestMetrics_RecordsRunsAndWritesTextfile(t *testing.T) {
	dir := t.TempDir()
	m := NewMetrics()
	p := newTestPipeline(t, heloEngine(), spell.Nop{}, func(b *Builder) { b.WithMetrics(m) })
	assert.Same(t, m, p.Metrics())

	_, err := p.Run(context.Background(), heloPage(t, dir), filepath.Join(dir, "out.docx"))
	require.NoError(t, err)
	_, err = p.Run(context.Background(), filepath.Join(dir, "missing.png"), filepath.Join(dir, "x.docx"))
	require.Error(t, err)

	assert.InDelta(t, 1, promtest.ToFloat64(m.runsTotal.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.runsTotal.WithLabelValues("unreadable")), 0)

	path := filepath.Join(dir, "markscan.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `markscan_runs_total{status="ok"} 1`)
	assert.Contains(t, string(data), `markscan_spans_total{color="yellow"} 1`)
	assert.Contains(t, string(data), "markscan_stage_duration_seconds_bucket")
}
