package support

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/pipeline"
	"github.com/Yara1604/InnovNation-Hackathon/internal/testutil"
)

// RegisterSteps wires every step of the suite.
func (tc *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a blank page of (\d+)x(\d+) pixels$`, tc.aBlankPage)
	sc.Step(`^a (yellow|green) highlight from \((\d+),(\d+)\) to \((\d+),(\d+)\)$`, tc.aHighlight)
	sc.Step(`^the OCR engine reads "([^"]*)" from \((\d+),(\d+)\) to \((\d+),(\d+)\)$`, tc.theEngineReads)
	sc.Step(`^spelling correction is (enabled|disabled)$`, tc.spellingIs)
	sc.Step(`^the correlation policy is "([^"]*)"$`, tc.thePolicyIs)
	sc.Step(`^paragraphs are in (detection|reading) order$`, tc.theOrderIs)
	sc.Step(`^detection and recognition run in parallel$`, tc.runInParallel)
	sc.Step(`^the input file is corrupt$`, tc.theInputIsCorrupt)
	sc.Step(`^the input file does not exist$`, tc.theInputIsMissing)

	sc.Step(`^I convert the page$`, func() error { return tc.convert("out.docx") })
	sc.Step(`^I convert the page again$`, func() error { return tc.convert("again.docx") })

	sc.Step(`^the document has (\d+) paragraphs?$`, tc.theDocumentHasParagraphs)
	sc.Step(`^paragraph (\d+) reads "([^"]*)" with (yellow|green|no) highlight$`, tc.paragraphReads)
	sc.Step(`^(\d+) highlight regions? (?:is|are) detected$`, tc.regionsDetected)
	sc.Step(`^the conversion fails because the input is unreadable$`, tc.failsUnreadable)
	sc.Step(`^no document is written$`, tc.noDocument)
	sc.Step(`^both conversions produce the same paragraphs$`, tc.sameParagraphs)
}

func (tc *TestContext) aBlankPage(w, h int) error {
	tc.Page = testutil.PageConfig{Width: w, Height: h, Background: testutil.PaperWhite}
	return nil
}

func (tc *TestContext) aHighlight(name string, x1, y1, x2, y2 int) error {
	c, err := markerColor(name)
	if err != nil {
		return err
	}
	tc.Page.Marks = append(tc.Page.Marks, testutil.Mark{Rect: rect(x1, y1, x2, y2), Color: c})
	return nil
}

func (tc *TestContext) theEngineReads(text string, x1, y1, x2, y2 int) error {
	tc.Detections = append(tc.Detections, ocr.RectDetection(text, rect(x1, y1, x2, y2)))
	tc.Page.Words = append(tc.Page.Words, testutil.Word{Text: text, At: image.Pt(x1+2, y2-4)})
	return nil
}

func (tc *TestContext) spellingIs(state string) error {
	tc.Spelling = state == "enabled"
	return nil
}

func (tc *TestContext) thePolicyIs(name string) error {
	p, err := correlate.ParsePolicy(name)
	if err != nil {
		return err
	}
	tc.Policy = p
	return nil
}

func (tc *TestContext) theOrderIs(name string) error {
	o, err := pipeline.ParseOrder(name)
	if err != nil {
		return err
	}
	tc.Order = o
	return nil
}

func (tc *TestContext) runInParallel() error {
	tc.Parallel = true
	return nil
}

func (tc *TestContext) theInputIsCorrupt() error {
	tc.InputPath = filepath.Join(tc.TempDir, "corrupt.png")
	return os.WriteFile(tc.InputPath, []byte("definitely not an image"), 0o600)
}

func (tc *TestContext) theInputIsMissing() error {
	tc.InputPath = filepath.Join(tc.TempDir, "missing.png")
	return nil
}

func (tc *TestContext) theDocumentHasParagraphs(n int) error {
	paras, err := tc.lastDocument()
	if err != nil {
		return err
	}
	if len(paras) != n {
		return fmt.Errorf("expected %d paragraphs, got %d: %+v", n, len(paras), paras)
	}
	return nil
}

func (tc *TestContext) paragraphReads(n int, text, colour string) error {
	paras, err := tc.lastDocument()
	if err != nil {
		return err
	}
	if n < 1 || n > len(paras) {
		return fmt.Errorf("paragraph %d out of range (document has %d)", n, len(paras))
	}
	want := highlight.None
	if colour != "no" {
		if want, err = highlight.ParseColor(colour); err != nil {
			return err
		}
	}
	got := paras[n-1]
	if got.Text != text || got.Color != want {
		return fmt.Errorf("paragraph %d: expected %q with %s highlight, got %q with %s", n, text, want, got.Text, got.Color)
	}
	return nil
}

func (tc *TestContext) regionsDetected(n int) error {
	if tc.LastError != nil {
		return fmt.Errorf("conversion failed: %w", tc.LastError)
	}
	res := tc.Results[len(tc.Results)-1]
	if len(res.Regions) != n {
		return fmt.Errorf("expected %d regions, got %d: %+v", n, len(res.Regions), res.Regions)
	}
	return nil
}

func (tc *TestContext) failsUnreadable() error {
	if tc.LastError == nil {
		return errors.New("expected the conversion to fail")
	}
	if !errors.Is(tc.LastError, pipeline.ErrInputUnreadable) {
		return fmt.Errorf("expected an unreadable input error, got: %w", tc.LastError)
	}
	return nil
}

func (tc *TestContext) noDocument() error {
	if _, err := os.Stat(tc.OutputPath); !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("expected no document at %s (stat error: %v)", tc.OutputPath, err)
	}
	return nil
}

func (tc *TestContext) sameParagraphs() error {
	if len(tc.Documents) < 2 {
		return fmt.Errorf("expected two conversions, got %d", len(tc.Documents))
	}
	a, b := tc.Documents[len(tc.Documents)-2], tc.Documents[len(tc.Documents)-1]
	if !reflect.DeepEqual(a, b) {
		return fmt.Errorf("documents differ:\n%+v\n%+v", a, b)
	}
	return nil
}
