package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	return NewLoaderWithViper(viper.New()).WithEnvFile("")
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	require.NotNil(t, l)
	assert.Same(t, viper.GetViper(), l.GetViper())
}

func TestLoadWithNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), withNilDictionaries(cfg))
}

// withNilDictionaries normalises the empty dictionary default for comparison.
func withNilDictionaries(c *Config) *Config {
	if len(c.Spell.Dictionaries) == 0 {
		c.Spell.Dictionaries = nil
	}
	return c
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "markscan.yaml", `
log_level: debug
ocr:
  level: word
pipeline:
  policy: first-match
  parallel: true
spell:
  dictionaries: [names.txt, places.txt]
`)

	l := newTestLoader()
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "word", cfg.OCR.Level)
	assert.Equal(t, "first-match", cfg.Pipeline.Policy)
	assert.True(t, cfg.Pipeline.Parallel)
	assert.Equal(t, []string{"names.txt", "places.txt"}, cfg.Spell.Dictionaries)
	assert.Equal(t, "tesseract", cfg.OCR.Engine, "unset keys keep defaults")
	assert.Len(t, cfg.Highlight.Bands, 2)
	assert.Contains(t, l.GetConfigFileUsed(), "markscan.yaml")
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", `
highlight:
  min_area: 250
  open_kernel: 3
  bands:
    - color: green
      lower: [45, 60, 60]
      upper: [85, 255, 255]
output:
  report: json
  overlay: debug.png
metrics:
  textfile: markscan.prom
`)

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 250, cfg.Highlight.MinArea, 0)
	assert.Equal(t, 3, cfg.Highlight.OpenKernel)
	assert.Equal(t, []BandConfig{{Color: "green", Lower: []int{45, 60, 60}, Upper: []int{85, 255, 255}}}, cfg.Highlight.Bands)
	assert.Equal(t, "json", cfg.Output.Report)
	assert.Equal(t, "debug.png", cfg.Output.Overlay)
	assert.Equal(t, "markscan.prom", cfg.Metrics.Textfile)

	pc, err := cfg.ToPipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug.png", pc.OverlayPath)
}

func TestLoadWithFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestLoader().LoadWithFile(filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	bad := writeConfig(t, dir, "bad.yaml", "pipeline: [unclosed\n")
	_, err = newTestLoader().LoadWithFile(bad)
	require.Error(t, err)

	invalid := writeConfig(t, dir, "invalid.yaml", "pipeline:\n  order: sideways\n")
	_, err = newTestLoader().LoadWithFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	cfg, err := newTestLoader().LoadWithFileWithoutValidation(invalid)
	require.NoError(t, err)
	assert.Equal(t, "sideways", cfg.Pipeline.Order)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MARKSCAN_PIPELINE_POLICY", "first-match")
	t.Setenv("MARKSCAN_HIGHLIGHT_MIN_AREA", "42")
	t.Setenv("MARKSCAN_SPELL_ENABLED", "false")
	t.Setenv("AZURE_VISION_ENDPOINT", "https://vision.example.com/")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "first-match", cfg.Pipeline.Policy)
	assert.InDelta(t, 42, cfg.Highlight.MinArea, 0)
	assert.False(t, cfg.Spell.Enabled)
	assert.Equal(t, "https://vision.example.com/", cfg.OCR.Azure.Endpoint)
}

func TestPrefixedEnvWinsOverConventionalName(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MARKSCAN_OCR_AZURE_KEY", "prefixed")
	t.Setenv("AZURE_VISION_KEY", "conventional")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.OCR.Azure.Key)
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	const key = "MARKSCAN_OCR_AZURE_ENDPOINT"
	t.Setenv(key, "placeholder")
	require.NoError(t, os.Unsetenv(key))

	envFile := writeConfig(t, dir, "azure.env", key+"=https://from-dotenv.example.com/\n")
	cfg, err := newTestLoader().WithEnvFile(envFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://from-dotenv.example.com/", cfg.OCR.Azure.Endpoint)

	_, err = newTestLoader().WithEnvFile(filepath.Join(dir, "missing.env")).Load()
	require.NoError(t, err, "a missing env file is not an error")
}

func TestReloadPicksUpOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	l := newTestLoader()
	_, err := l.Load()
	require.NoError(t, err)

	l.Set("pipeline.order", "reading")
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, "reading", cfg.Pipeline.Order)
	assert.Equal(t, "reading", l.Get("pipeline.order"))
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "markscan.yaml")
	require.NoError(t, GenerateDefaultConfigFile(path))

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), withNilDictionaries(cfg))

	err = GenerateDefaultConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	paths := GetConfigSearchPaths()
	assert.Equal(t, ".", paths[0])
	assert.Contains(t, paths, filepath.Join("/xdg", "markscan"))
	assert.Equal(t, "/etc/markscan", paths[len(paths)-1])
}
