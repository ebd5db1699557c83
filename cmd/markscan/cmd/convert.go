package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Yara1604/InnovNation-Hackathon/internal/pipeline"
)

// buildPipeline constructs the pipeline for convert; tests swap it to inject
// a scripted OCR engine.
var buildPipeline = func(b *pipeline.Builder) (*pipeline.Pipeline, error) {
	return b.Build()
}

func newConvertCommand(st *state) *cobra.Command {
	var noSpell bool

	c := &cobra.Command{
		Use:   "convert <image> <output.docx>",
		Short: "Convert a page image into a highlighted DOCX document",
		Long: `Convert one page image into a DOCX document.

Every recognised line (or word, with --level word) becomes its own paragraph.
Text covered by a yellow or green highlighter mark keeps that highlight in the
document. Recognised text is spell-checked against an English dictionary
unless --no-spell is given.

Supported formats: JPEG, PNG, BMP, TIFF, GIF

Examples:
  markscan convert page.jpg notes.docx
  markscan convert page.png notes.docx --engine azure --report json
  markscan convert page.png notes.docx --overlay debug.png --order reading`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.cfg
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			pc, err := cfg.ToPipelineConfig()
			if err != nil {
				return err
			}
			if noSpell {
				pc.Spell.Enabled = false
			}

			var metrics *pipeline.Metrics
			if cfg.Metrics.Textfile != "" {
				metrics = pipeline.NewMetrics()
			}

			p, err := buildPipeline(pipeline.NewBuilder().WithConfig(pc).WithMetrics(metrics))
			if err != nil {
				return fmt.Errorf("failed to initialize pipeline: %w", err)
			}
			defer func() {
				if err := p.Close(); err != nil {
					slog.Warn("Failed to close pipeline", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
			defer stop()

			res, runErr := p.Run(ctx, args[0], args[1])
			if metrics != nil {
				if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					runErr = errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
				}
			}
			if runErr != nil {
				return runErr
			}

			report, err := pipeline.Format(res, cfg.Output.Report)
			if err != nil {
				return err
			}
			if report != "" {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), report); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}
			return nil
		},
	}

	f := c.Flags()
	f.String("engine", "tesseract", "OCR engine (tesseract, azure)")
	f.String("language", "eng", "tesseract language")
	f.String("tessdata", "", "tesseract tessdata directory")
	f.String("level", "line", "span granularity (line, word)")
	f.String("policy", "max-overlap", "choice between overlapping highlights (max-overlap, first-match)")
	f.String("order", "detection", "paragraph order (detection, reading)")
	f.Float64("min-area", 100, "highlight blobs with a contour area at or below this are ignored")
	f.Int("open-kernel", 0, "morphological opening kernel for highlight masks (0 disables)")
	f.BoolVar(&noSpell, "no-spell", false, "disable spelling correction")
	f.StringArray("dict", nil, "extra word list for spelling correction (repeatable)")
	f.String("overlay", "", "write a debug overlay image to this path")
	f.String("report", "text", "report printed after conversion (text, json, none)")
	f.String("metrics-textfile", "", "write run metrics in Prometheus textfile format to this path")
	f.Bool("parallel", false, "run highlight detection and text recognition concurrently")

	bindKey(f, "engine", "ocr.engine")
	bindKey(f, "language", "ocr.language")
	bindKey(f, "tessdata", "ocr.tessdata_prefix")
	bindKey(f, "level", "ocr.level")
	bindKey(f, "policy", "pipeline.policy")
	bindKey(f, "order", "pipeline.order")
	bindKey(f, "min-area", "highlight.min_area")
	bindKey(f, "open-kernel", "highlight.open_kernel")
	bindKey(f, "dict", "spell.dictionaries")
	bindKey(f, "overlay", "output.overlay")
	bindKey(f, "report", "output.report")
	bindKey(f, "metrics-textfile", "metrics.textfile")
	bindKey(f, "parallel", "pipeline.parallel")
	return c
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
