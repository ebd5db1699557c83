// Package pipeline converts a page image into a highlighted DOCX document.
//
// The stages are decode, highlight detection, text extraction, correlation and
// document writing. Detection and extraction are independent and may run
// concurrently; every other stage is sequential.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/spell"
)

// ErrInputUnreadable wraps any failure to open or decode the input image.
var ErrInputUnreadable = errors.New("input image unreadable")

// Config holds configuration for the pipeline and its components.
type Config struct {
	Highlight highlight.Config
	OCR       ocr.Config
	Spell     spell.Config
	Policy    correlate.Policy
	Order     Order
	Parallel  bool // run detection and extraction concurrently

	// OverlayPath, when set, receives a debug image of regions and spans.
	OverlayPath string
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		Highlight: highlight.DefaultConfig(),
		OCR:       ocr.DefaultConfig(),
		Spell:     spell.DefaultConfig(),
		Policy:    correlate.PolicyMaxOverlap,
		Order:     OrderDetection,
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg       Config
	engine    ocr.Engine
	corrector spell.Corrector
	metrics   *Metrics
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithEngine injects an OCR engine instead of building one from the OCR config.
// The pipeline takes ownership and closes it.
func (b *Builder) WithEngine(e ocr.Engine) *Builder {
	b.engine = e
	return b
}

// WithCorrector injects a spelling corrector instead of building one from the
// spell config.
func (b *Builder) WithCorrector(c spell.Corrector) *Builder {
	b.corrector = c
	return b
}

// WithMetrics records every run in m.
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// WithEngineName selects the OCR engine by name.
func (b *Builder) WithEngineName(name string) *Builder {
	if name != "" {
		b.cfg.OCR.Engine = name
	}
	return b
}

// WithLevel sets the OCR span granularity.
func (b *Builder) WithLevel(level ocr.Level) *Builder {
	if level != "" {
		b.cfg.OCR.Level = level
	}
	return b
}

// WithPolicy sets the correlation policy.
func (b *Builder) WithPolicy(p correlate.Policy) *Builder {
	if p != "" {
		b.cfg.Policy = p
	}
	return b
}

// WithOrder sets the paragraph order.
func (b *Builder) WithOrder(o Order) *Builder {
	if o != "" {
		b.cfg.Order = o
	}
	return b
}

// WithMinArea sets the highlight noise threshold (ignored when negative).
func (b *Builder) WithMinArea(area float64) *Builder {
	if area >= 0 {
		b.cfg.Highlight.MinArea = area
	}
	return b
}

// WithOpenKernel sets the morphological opening kernel for highlight masks.
func (b *Builder) WithOpenKernel(k int) *Builder {
	if k >= 0 {
		b.cfg.Highlight.OpenKernel = k
	}
	return b
}

// WithBands replaces the highlight colour bands.
func (b *Builder) WithBands(bands []highlight.Band) *Builder {
	if len(bands) > 0 {
		b.cfg.Highlight.Bands = bands
	}
	return b
}

// WithSpellCheck enables or disables spelling correction.
func (b *Builder) WithSpellCheck(enabled bool) *Builder {
	b.cfg.Spell.Enabled = enabled
	return b
}

// WithDictionaries adds user word lists for spelling correction.
func (b *Builder) WithDictionaries(paths []string) *Builder {
	for _, p := range paths {
		if p != "" {
			b.cfg.Spell.Dictionaries = append(b.cfg.Spell.Dictionaries, p)
		}
	}
	return b
}

// WithParallel toggles concurrent detection and extraction.
func (b *Builder) WithParallel(enabled bool) *Builder {
	b.cfg.Parallel = enabled
	return b
}

// WithOverlay writes a debug overlay image to path on every Run.
func (b *Builder) WithOverlay(path string) *Builder {
	b.cfg.OverlayPath = path
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks the configuration without constructing anything.
func (b *Builder) Validate() error {
	if err := b.cfg.Highlight.Validate(); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	if _, err := correlate.ParsePolicy(string(b.cfg.Policy)); err != nil {
		return err
	}
	if _, err := ParseOrder(string(b.cfg.Order)); err != nil {
		return err
	}
	if _, err := ocr.ParseLevel(string(b.cfg.OCR.Level)); err != nil {
		return err
	}
	return nil
}

// Pipeline wires together the detector, extractor and correlator.
type Pipeline struct {
	cfg        Config
	Detector   *highlight.Detector
	Extractor  *ocr.Extractor
	Correlator *correlate.Correlator
	metrics    *Metrics
}

// Build initialises the pipeline components. Expensive collaborators (the OCR
// engine and the spelling model) are created once here and reused by every run.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	det, err := highlight.NewDetector(b.cfg.Highlight)
	if err != nil {
		return nil, fmt.Errorf("init highlight detector: %w", err)
	}
	corr, err := correlate.New(b.cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("init correlator: %w", err)
	}

	corrector := b.corrector
	if corrector == nil {
		corrector, err = spell.New(b.cfg.Spell)
		if err != nil {
			return nil, fmt.Errorf("init spelling corrector: %w", err)
		}
	}

	engine := b.engine
	if engine == nil {
		engine, err = NewEngine(b.cfg.OCR)
		if err != nil {
			return nil, fmt.Errorf("init ocr engine: %w", err)
		}
	}

	ex, err := ocr.NewExtractor(engine, corrector)
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("init text extractor: %w", err)
	}

	order, _ := ParseOrder(string(b.cfg.Order))
	cfg := b.cfg
	cfg.Order = order
	cfg.Policy = corr.Policy()

	return &Pipeline{
		cfg:        cfg,
		Detector:   det,
		Extractor:  ex,
		Correlator: corr,
		metrics:    b.metrics,
	}, nil
}

// Config returns the resolved pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Metrics returns the metrics sink, or nil.
func (p *Pipeline) Metrics() *Metrics { return p.metrics }

// Close releases the OCR engine.
func (p *Pipeline) Close() error {
	if p == nil || p.Extractor == nil {
		return nil
	}
	return p.Extractor.Close()
}
