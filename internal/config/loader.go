package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "markscan"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "MARKSCAN"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a loader on the global viper instance, so flags bound with
// viper.BindPFlag take part in resolution.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper(), envFile: ".env"}
}

// NewLoaderWithViper creates a loader on v.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{v: v, envFile: ".env"}
}

// WithEnvFile changes the dotenv file read before resolution. An empty path
// disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load searches the standard locations for a config file, merges environment
// variables and defaults, and validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.LoadWithoutValidation()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithoutValidation is Load without the final Validate.
func (l *Loader) LoadWithoutValidation() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	if err := l.prepare(); err != nil {
		return nil, err
	}

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return l.unmarshal()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	cfg, err := l.LoadWithFileWithoutValidation(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithFileWithoutValidation loads configuration from a specific file path without validation.
func (l *Loader) LoadWithFileWithoutValidation(configFile string) (*Config, error) {
	if configFile == "" {
		return l.LoadWithoutValidation()
	}
	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	if err := l.prepare(); err != nil {
		return nil, err
	}
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	return l.unmarshal()
}

// Reload unmarshals the current state again, picking up flags that were bound
// after the first load.
func (l *Loader) Reload() (*Config, error) {
	return l.unmarshal()
}

func (l *Loader) prepare() error {
	if err := l.loadEnvFile(); err != nil {
		return err
	}
	l.setupEnvironmentVariables()
	l.setDefaults()
	return nil
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile reads KEY=value pairs into the process environment without
// overriding variables that are already set.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	switch {
	case err == nil:
		slog.Debug("Loaded environment file", "path", l.envFile)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("error reading env file %s: %w", l.envFile, err)
	}
}

// Get returns a value from the configuration.
func (l *Loader) Get(key string) any {
	return l.v.Get(key)
}

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	for _, p := range GetConfigSearchPaths() {
		l.v.AddConfigPath(p)
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Azure credentials are also accepted under their conventional names.
	_ = l.v.BindEnv("ocr.azure.endpoint", EnvPrefix+"_OCR_AZURE_ENDPOINT", "AZURE_VISION_ENDPOINT")
	_ = l.v.BindEnv("ocr.azure.key", EnvPrefix+"_OCR_AZURE_KEY", "AZURE_VISION_KEY")
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("highlight.min_area", defaults.Highlight.MinArea)
	l.v.SetDefault("highlight.open_kernel", defaults.Highlight.OpenKernel)
	bands := make([]map[string]any, 0, len(defaults.Highlight.Bands))
	for _, b := range defaults.Highlight.Bands {
		bands = append(bands, map[string]any{"color": b.Color, "lower": b.Lower, "upper": b.Upper})
	}
	l.v.SetDefault("highlight.bands", bands)

	l.v.SetDefault("ocr.engine", defaults.OCR.Engine)
	l.v.SetDefault("ocr.language", defaults.OCR.Language)
	l.v.SetDefault("ocr.level", defaults.OCR.Level)
	l.v.SetDefault("ocr.page_seg_mode", defaults.OCR.PageSegMode)
	l.v.SetDefault("ocr.tessdata_prefix", defaults.OCR.TessdataPrefix)
	l.v.SetDefault("ocr.azure.endpoint", defaults.OCR.Azure.Endpoint)
	l.v.SetDefault("ocr.azure.key", defaults.OCR.Azure.Key)

	l.v.SetDefault("spell.enabled", defaults.Spell.Enabled)
	l.v.SetDefault("spell.dictionaries", []string{})
	l.v.SetDefault("spell.depth", defaults.Spell.Depth)

	l.v.SetDefault("pipeline.policy", defaults.Pipeline.Policy)
	l.v.SetDefault("pipeline.order", defaults.Pipeline.Order)
	l.v.SetDefault("pipeline.parallel", defaults.Pipeline.Parallel)

	l.v.SetDefault("output.report", defaults.Output.Report)
	l.v.SetDefault("output.overlay", defaults.Output.Overlay)

	l.v.SetDefault("metrics.textfile", defaults.Metrics.Textfile)
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		paths = append(paths, filepath.Join(configDir, "markscan"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "markscan"))
	}
	return append(paths, "/etc/markscan")
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return out, nil
}

// Redacted returns a copy of cfg with secrets masked.
func Redacted(cfg *Config) *Config {
	c := *cfg
	if c.OCR.Azure.Key != "" {
		c.OCR.Azure.Key = "********"
	}
	return &c
}

// GenerateDefaultConfigFile writes the default configuration as YAML. It
// refuses to overwrite an existing file.
func GenerateDefaultConfigFile(filename string) error {
	if filename == "" {
		filename = ConfigFileName + ".yaml"
	}
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("config file already exists: %s", filename)
	}
	data, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
