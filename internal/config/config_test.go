package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yara1604/InnovNation-Hackathon/internal/correlate"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
	"github.com/Yara1604/InnovNation-Hackathon/internal/ocr"
	"github.com/Yara1604/InnovNation-Hackathon/internal/pipeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.InDelta(t, highlight.DefaultMinArea, cfg.Highlight.MinArea, 0)
	require.Len(t, cfg.Highlight.Bands, 2)
	assert.Equal(t, BandConfig{Color: "yellow", Lower: []int{20, 100, 100}, Upper: []int{30, 255, 255}}, cfg.Highlight.Bands[0])
	assert.Equal(t, BandConfig{Color: "green", Lower: []int{40, 40, 40}, Upper: []int{90, 255, 255}}, cfg.Highlight.Bands[1])
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "line", cfg.OCR.Level)
	assert.True(t, cfg.Spell.Enabled)
	assert.Equal(t, "max-overlap", cfg.Pipeline.Policy)
	assert.Equal(t, "detection", cfg.Pipeline.Order)
	assert.Equal(t, "text", cfg.Output.Report)
}

func TestDefaultConfigMatchesPipelineDefaults(t *testing.T) {
	pc, err := DefaultConfig().ToPipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig(), pc)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Config)
		wantErr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "invalid log level"},
		{"engine", func(c *Config) { c.OCR.Engine = "abacus" }, "invalid ocr engine"},
		{"level", func(c *Config) { c.OCR.Level = "glyph" }, "invalid ocr level"},
		{"page seg mode", func(c *Config) { c.OCR.PageSegMode = 14 }, "page segmentation mode"},
		{"spell depth", func(c *Config) { c.Spell.Depth = 3 }, "spell depth"},
		{"policy", func(c *Config) { c.Pipeline.Policy = "loudest" }, "correlation policy"},
		{"order", func(c *Config) { c.Pipeline.Order = "random" }, "paragraph order"},
		{"report", func(c *Config) { c.Output.Report = "csv" }, "invalid report format"},
		{"min area", func(c *Config) { c.Highlight.MinArea = -1 }, "min area"},
		{"open kernel", func(c *Config) { c.Highlight.OpenKernel = -2 }, "open kernel"},
		{"no bands", func(c *Config) { c.Highlight.Bands = nil }, "at least one color band"},
		{"band color", func(c *Config) { c.Highlight.Bands[0].Color = "pink" }, "unknown highlight color"},
		{"band none", func(c *Config) { c.Highlight.Bands[0].Color = "none" }, "must be yellow or green"},
		{"band arity", func(c *Config) { c.Highlight.Bands[0].Lower = []int{1, 2} }, "3 values"},
		{"band range", func(c *Config) { c.Highlight.Bands[1].Upper = []int{90, 256, 255} }, "out of range"},
		{"band hue", func(c *Config) { c.Highlight.Bands[1].Upper = []int{200, 255, 255} }, "exceeds 179"},
		{"band inverted", func(c *Config) { c.Highlight.Bands[0].Lower = []int{31, 100, 100} }, "exceeds upper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	cfg.Pipeline.Order = "random"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
	assert.Contains(t, err.Error(), "paragraph order")
}

func TestToPipelineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Engine = "Azure"
	cfg.OCR.Level = "word"
	cfg.OCR.Azure = AzureConfig{Endpoint: "https://example.cognitiveservices.azure.com/", Key: "secret"}
	cfg.Spell.Dictionaries = []string{"names.txt"}
	cfg.Pipeline = PipelineConfig{Policy: "first-match", Order: "reading", Parallel: true}
	cfg.Output.Overlay = "overlay.png"
	cfg.Highlight.MinArea = 50
	cfg.Highlight.Bands = cfg.Highlight.Bands[1:]

	pc, err := cfg.ToPipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "azure", pc.OCR.Engine)
	assert.Equal(t, ocr.LevelWord, pc.OCR.Level)
	assert.Equal(t, "secret", pc.OCR.Azure.Key)
	assert.Equal(t, []string{"names.txt"}, pc.Spell.Dictionaries)
	assert.Equal(t, correlate.PolicyFirstMatch, pc.Policy)
	assert.Equal(t, pipeline.OrderReading, pc.Order)
	assert.True(t, pc.Parallel)
	assert.Equal(t, "overlay.png", pc.OverlayPath)
	assert.InDelta(t, 50, pc.Highlight.MinArea, 0)
	require.Len(t, pc.Highlight.Bands, 1)
	assert.Equal(t, highlight.Green, pc.Highlight.Bands[0].Color)

	cfg.Pipeline.Order = "sideways"
	_, err = cfg.ToPipelineConfig()
	require.Error(t, err)
}

func TestMarshalAndRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Azure.Key = "hunter2"

	out, err := Marshal(Redacted(cfg))
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "log_level: info")
	assert.Contains(t, s, "lower: [20, 100, 100]")
	assert.Contains(t, s, "policy: max-overlap")
	assert.NotContains(t, s, "hunter2")
	assert.True(t, strings.Contains(s, "key: '********'") || strings.Contains(s, `key: "********"`))
	assert.Equal(t, "hunter2", cfg.OCR.Azure.Key, "original untouched")
}
