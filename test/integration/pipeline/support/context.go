// Package support holds the step definitions of the conversion feature suite.
package support

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/document"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/pipeline"
	"github.com/Yara1604/InnovNation-Hackathon/internal/spell"
	"github.com/Yara1604/InnovNation-Hackathon/internal/testutil"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	TempDir string

	Page       testutil.PageConfig
	Detections []ocr.Detection
	Spelling   bool
	Policy     correlate.Policy
	Order      pipeline.Order
	Parallel   bool

	InputPath  string
	OutputPath string
	Results    []*pipeline.Result
	Documents  [][]document.Paragraph
	LastError  error
}

// NewTestContext creates a scenario context with its own temporary directory.
func NewTestContext() (*TestContext, error) {
	dir, err := os.MkdirTemp("", "markscan-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &TestContext{
		TempDir:  dir,
		Page:     testutil.DefaultPageConfig(),
		Spelling: true,
		Policy:   correlate.PolicyMaxOverlap,
		Order:    pipeline.OrderDetection,
	}, nil
}

// Cleanup removes the scenario's temporary directory.
func (tc *TestContext) Cleanup() error {
	if tc.TempDir == "" {
		return nil
	}
	return os.RemoveAll(tc.TempDir)
}

// build constructs a pipeline around a scripted engine that reports the
// scenario's detections.
func (tc *TestContext) build() (*pipeline.Pipeline, error) {
	corrector, err := spell.New(spell.Config{Enabled: tc.Spelling, Depth: 2})
	if err != nil {
		return nil, err
	}
	return pipeline.NewBuilder().
		WithEngine(ocr.NewFixedEngine(tc.Detections...)).
		WithCorrector(corrector).
		WithPolicy(tc.Policy).
		WithOrder(tc.Order).
		WithParallel(tc.Parallel).
		Build()
}

// writePage renders the scenario page as PNG unless an input already exists.
func (tc *TestContext) writePage() error {
	if tc.InputPath != "" {
		return nil
	}
	tc.InputPath = filepath.Join(tc.TempDir, "page.png")
	return imaging.Save(testutil.GeneratePage(tc.Page), tc.InputPath)
}

// convert runs one conversion and records its outcome.
func (tc *TestContext) convert(name string) error {
	if err := tc.writePage(); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	p, err := tc.build()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer func() { _ = p.Close() }()

	tc.OutputPath = filepath.Join(tc.TempDir, name)
	res, err := p.Run(context.Background(), tc.InputPath, tc.OutputPath)
	tc.LastError = err
	if err != nil {
		return nil
	}
	paras, err := document.Read(tc.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", tc.OutputPath, err)
	}
	tc.Results = append(tc.Results, res)
	tc.Documents = append(tc.Documents, paras)
	return nil
}

// lastDocument returns the paragraphs of the most recent conversion.
func (tc *TestContext) lastDocument() ([]document.Paragraph, error) {
	if tc.LastError != nil {
		return nil, fmt.Errorf("conversion failed: %w", tc.LastError)
	}
	if len(tc.Documents) == 0 {
		return nil, fmt.Errorf("no conversion has run")
	}
	return tc.Documents[len(tc.Documents)-1], nil
}

func markerColor(name string) (color.Color, error) {
	switch name {
	case "yellow":
		return testutil.MarkerYellow, nil
	case "green":
		return testutil.MarkerGreen, nil
	default:
		return nil, fmt.Errorf("unknown marker colour %q", name)
	}
}

func rect(x1, y1, x2, y2 int) image.Rectangle {
	return image.Rect(x1, y1, x2, y2)
}
