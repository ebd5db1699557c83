package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/pipeline"
	"github.com/Yara1604/InnovNation-Hackathon/internal/spell"
)

// Config represents the complete configuration for markscan. It is loaded from
// configuration files, environment variables and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight" json:"highlight"`
	OCR       OCRConfig       `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Spell     SpellConfig     `mapstructure:"spell" yaml:"spell" json:"spell"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// HighlightConfig contains highlight detection settings.
type HighlightConfig struct {
	MinArea    float64      `mapstructure:"min_area" yaml:"min_area" json:"min_area"`
	OpenKernel int          `mapstructure:"open_kernel" yaml:"open_kernel" json:"open_kernel"`
	Bands      []BandConfig `mapstructure:"bands" yaml:"bands" json:"bands"`
}

// BandConfig is one HSV colour band. Lower and Upper hold H, S and V with H in
// 0..179 and S, V in 0..255.
type BandConfig struct {
	Color string `mapstructure:"color" yaml:"color" json:"color"`
	Lower []int  `mapstructure:"lower" yaml:"lower,flow" json:"lower"`
	Upper []int  `mapstructure:"upper" yaml:"upper,flow" json:"upper"`
}

// OCRConfig contains text extraction settings.
type OCRConfig struct {
	Engine         string      `mapstructure:"engine" yaml:"engine" json:"engine"`
	Language       string      `mapstructure:"language" yaml:"language" json:"language"`
	Level          string      `mapstructure:"level" yaml:"level" json:"level"`
	PageSegMode    int         `mapstructure:"page_seg_mode" yaml:"page_seg_mode" json:"page_seg_mode"`
	TessdataPrefix string      `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix" json:"tessdata_prefix"`
	Azure          AzureConfig `mapstructure:"azure" yaml:"azure" json:"azure"`
}

// AzureConfig holds Computer Vision credentials.
type AzureConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Key      string `mapstructure:"key" yaml:"key" json:"-"`
}

// SpellConfig contains spelling correction settings.
type SpellConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Dictionaries []string `mapstructure:"dictionaries" yaml:"dictionaries" json:"dictionaries"`
	Depth        int      `mapstructure:"depth" yaml:"depth" json:"depth"`
}

// PipelineConfig contains correlation and ordering settings.
type PipelineConfig struct {
	Policy   string `mapstructure:"policy" yaml:"policy" json:"policy"`
	Order    string `mapstructure:"order" yaml:"order" json:"order"`
	Parallel bool   `mapstructure:"parallel" yaml:"parallel" json:"parallel"`
}

// OutputConfig contains report and debug output settings.
type OutputConfig struct {
	Report  string `mapstructure:"report" yaml:"report" json:"report"`
	Overlay string `mapstructure:"overlay" yaml:"overlay" json:"overlay"`
}

// MetricsConfig contains metrics export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile" json:"textfile"`
}

// DefaultConfig returns a configuration with all default values.
func DefaultConfig() *Config {
	hl := highlight.DefaultConfig()
	o := ocr.DefaultConfig()
	sp := spell.DefaultConfig()

	bands := make([]BandConfig, 0, len(hl.Bands))
	for _, b := range hl.Bands {
		bands = append(bands, bandToConfig(b))
	}

	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Highlight: HighlightConfig{
			MinArea:    hl.MinArea,
			OpenKernel: hl.OpenKernel,
			Bands:      bands,
		},
		OCR: OCRConfig{
			Engine:      o.Engine,
			Language:    o.Language,
			Level:       string(o.Level),
			PageSegMode: o.PageSegMode,
		},
		Spell: SpellConfig{
			Enabled: sp.Enabled,
			Depth:   sp.Depth,
		},
		Pipeline: PipelineConfig{
			Policy: string(correlate.PolicyMaxOverlap),
			Order:  string(pipeline.OrderDetection),
		},
		Output: OutputConfig{
			Report: pipeline.FormatText,
		},
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel))
	}

	if _, err := c.HighlightConfig(); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.OCR.Engine) {
	case pipeline.EngineTesseract, pipeline.EngineAzure:
	default:
		errs = append(errs, fmt.Errorf("invalid ocr engine: %s (must be tesseract or azure)", c.OCR.Engine))
	}
	if _, err := ocr.ParseLevel(c.OCR.Level); err != nil {
		errs = append(errs, err)
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		errs = append(errs, fmt.Errorf("invalid page segmentation mode: %d (must be between 0 and 13)", c.OCR.PageSegMode))
	}

	if c.Spell.Depth < 1 || c.Spell.Depth > 2 {
		errs = append(errs, fmt.Errorf("invalid spell depth: %d (must be 1 or 2)", c.Spell.Depth))
	}

	if _, err := correlate.ParsePolicy(c.Pipeline.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := pipeline.ParseOrder(c.Pipeline.Order); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Output.Report) {
	case pipeline.FormatText, pipeline.FormatJSON, pipeline.FormatNone:
	default:
		errs = append(errs, fmt.Errorf("invalid report format: %s (must be one of: text, json, none)", c.Output.Report))
	}

	return errors.Join(errs...)
}

// HighlightConfig converts the highlight section into detector settings.
func (c *Config) HighlightConfig() (highlight.Config, error) {
	if c.Highlight.MinArea < 0 {
		return highlight.Config{}, fmt.Errorf("invalid min area: %.1f (must not be negative)", c.Highlight.MinArea)
	}
	cfg := highlight.Config{
		MinArea:    c.Highlight.MinArea,
		OpenKernel: c.Highlight.OpenKernel,
	}
	for i, bc := range c.Highlight.Bands {
		b, err := bc.Band()
		if err != nil {
			return highlight.Config{}, fmt.Errorf("highlight band %d: %w", i, err)
		}
		cfg.Bands = append(cfg.Bands, b)
	}
	if err := cfg.Validate(); err != nil {
		return highlight.Config{}, fmt.Errorf("highlight: %w", err)
	}
	return cfg, nil
}

// Band converts the band to detector form.
func (b BandConfig) Band() (highlight.Band, error) {
	c, err := highlight.ParseColor(b.Color)
	if err != nil {
		return highlight.Band{}, err
	}
	lower, err := hsvFromInts(b.Lower, "lower")
	if err != nil {
		return highlight.Band{}, err
	}
	upper, err := hsvFromInts(b.Upper, "upper")
	if err != nil {
		return highlight.Band{}, err
	}
	band := highlight.Band{Color: c, Lower: lower, Upper: upper}
	if err := band.Validate(); err != nil {
		return highlight.Band{}, err
	}
	return band, nil
}

func hsvFromInts(v []int, name string) (highlight.HSV, error) {
	if len(v) != 3 {
		return highlight.HSV{}, fmt.Errorf("%s bound must have 3 values (h, s, v), got %d", name, len(v))
	}
	for _, x := range v {
		if x < 0 || x > 255 {
			return highlight.HSV{}, fmt.Errorf("%s bound value %d out of range 0..255", name, x)
		}
	}
	return highlight.HSV{H: uint8(v[0]), S: uint8(v[1]), V: uint8(v[2])}, nil
}

func bandToConfig(b highlight.Band) BandConfig {
	return BandConfig{
		Color: b.Color.String(),
		Lower: []int{int(b.Lower.H), int(b.Lower.S), int(b.Lower.V)},
		Upper: []int{int(b.Upper.H), int(b.Upper.S), int(b.Upper.V)},
	}
}

// ToPipelineConfig converts the configuration to pipeline settings.
func (c *Config) ToPipelineConfig() (pipeline.Config, error) {
	hl, err := c.HighlightConfig()
	if err != nil {
		return pipeline.Config{}, err
	}
	level, err := ocr.ParseLevel(c.OCR.Level)
	if err != nil {
		return pipeline.Config{}, err
	}
	policy, err := correlate.ParsePolicy(c.Pipeline.Policy)
	if err != nil {
		return pipeline.Config{}, err
	}
	order, err := pipeline.ParseOrder(c.Pipeline.Order)
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		Highlight: hl,
		OCR: ocr.Config{
			Engine:         strings.ToLower(c.OCR.Engine),
			Language:       c.OCR.Language,
			Level:          level,
			PageSegMode:    c.OCR.PageSegMode,
			TessdataPrefix: c.OCR.TessdataPrefix,
			Azure: ocr.AzureConfig{
				Endpoint: c.OCR.Azure.Endpoint,
				Key:      c.OCR.Azure.Key,
			},
		},
		Spell: spell.Config{
			Enabled:      c.Spell.Enabled,
			Dictionaries: append([]string(nil), c.Spell.Dictionaries...),
			Depth:        c.Spell.Depth,
		},
		Policy:      policy,
		Order:       order,
		Parallel:    c.Pipeline.Parallel,
		OverlayPath: c.Output.Overlay,
	}, nil
}
