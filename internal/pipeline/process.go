package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Yara1604/InnovNation-Hackathon/internal/document"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/utils"
)

// Run converts the image at imagePath into a DOCX written to outputPath.
// A decode failure returns ErrInputUnreadable before any output is written.
func (p *Pipeline) Run(ctx context.Context, imagePath, outputPath string) (res *Result, err error) {
	start := time.Now()
	defer func() { p.observe(res, err, time.Since(start)) }()

	if outputPath == "" {
		return nil, errors.New("output path is empty")
	}

	img, meta, err := utils.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	slog.Info("Processing image", "path", imagePath, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	res, doc, err := p.process(ctx, img)
	if err != nil {
		return nil, err
	}
	res.ImagePath = meta.Path
	res.ImageBytes = meta.SizeBytes

	// Overlay before document. A failed run leaves neither file.
	writeStart := time.Now()
	if p.cfg.OverlayPath != "" {
		if err := SaveOverlay(img, res, p.cfg.OverlayPath); err != nil {
			_ = os.Remove(p.cfg.OverlayPath)
			return nil, fmt.Errorf("write overlay: %w", err)
		}
		slog.Debug("Overlay written", "path", p.cfg.OverlayPath)
	}
	if err := doc.Save(outputPath); err != nil {
		if p.cfg.OverlayPath != "" {
			_ = os.Remove(p.cfg.OverlayPath)
		}
		return nil, fmt.Errorf("write %s: %w", outputPath, err)
	}
	res.OutputPath = outputPath
	res.Processing.WriteNs = time.Since(writeStart).Nanoseconds()
	res.Processing.TotalNs = time.Since(start).Nanoseconds()

	counts := res.Counts()
	slog.Info("Document written",
		"output", outputPath,
		"paragraphs", len(res.Spans),
		"yellow", counts[highlight.Yellow],
		"green", counts[highlight.Green],
		"plain", counts[highlight.None],
		"duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

// Process runs detection, extraction and correlation on an in-memory image and
// builds the document without saving it.
func (p *Pipeline) Process(ctx context.Context, img image.Image) (*Result, *document.Document, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("%w: image is nil", ErrInputUnreadable)
	}
	return p.process(ctx, img)
}

func (p *Pipeline) process(ctx context.Context, img image.Image) (*Result, *document.Document, error) {
	start := time.Now()
	res := &Result{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Engine: p.Extractor.Engine().Name(),
		Policy: p.cfg.Policy,
		Order:  p.cfg.Order,
	}

	regions, spans, err := p.detectAndExtract(ctx, img, res)
	if err != nil {
		return nil, nil, err
	}
	res.Regions = regions

	if p.cfg.Order == OrderReading {
		spans = ReadingOrder(spans)
	}

	corrStart := time.Now()
	res.Spans = p.Correlator.CorrelateAll(spans, regions)
	res.Processing.CorrelationNs = time.Since(corrStart).Nanoseconds()

	doc := document.New()
	for i, s := range res.Spans {
		if err := doc.AddRun(s.Span.Text, s.Color); err != nil {
			return nil, nil, fmt.Errorf("span %d: %w", i, err)
		}
	}
	res.Processing.TotalNs = time.Since(start).Nanoseconds()
	return res, doc, nil
}

// detectAndExtract runs the two independent stages, concurrently when enabled.
// Both orders give the same result.
func (p *Pipeline) detectAndExtract(ctx context.Context, img image.Image, res *Result) ([]highlight.Region, []ocr.Span, error) {
	var (
		regions []highlight.Region
		spans   []ocr.Span
	)
	detect := func() error {
		t := time.Now()
		regions = p.Detector.Detect(img)
		res.Processing.DetectionNs = time.Since(t).Nanoseconds()
		slog.Debug("Highlights detected", "regions", len(regions))
		return nil
	}
	extract := func(ctx context.Context) error {
		t := time.Now()
		s, err := p.Extractor.Extract(ctx, img)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		spans = s
		res.Processing.ExtractionNs = time.Since(t).Nanoseconds()
		return nil
	}

	if !p.cfg.Parallel {
		if err := detect(); err != nil {
			return nil, nil, err
		}
		if err := extract(ctx); err != nil {
			return nil, nil, err
		}
		return regions, spans, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(detect)
	g.Go(func() error { return extract(gctx) })
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return regions, spans, nil
}

// observe feeds the metrics sink, if any.
func (p *Pipeline) observe(res *Result, err error, d time.Duration) {
	if p.metrics == nil {
		return
	}
	p.metrics.Observe(res, err, d)
}
