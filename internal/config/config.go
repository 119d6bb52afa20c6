// Package config provides configuration types, defaults and validation for
// headline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/directive"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/tracing"
)

// Config holds all configuration options for headline.
type Config struct {
	Parser     ParserConfig     `mapstructure:"parser"`
	Directives DirectivesConfig `mapstructure:"directives"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
	Debug      bool             `mapstructure:"debug"`
	LogPath    string           `mapstructure:"log_path"`
}

// ParserConfig bounds header scanning.
type ParserConfig struct {
	// MaxLineLength caps the header line in bytes; 0 disables the cap.
	MaxLineLength int `mapstructure:"max_line_length"`
}

// Options converts the parser settings to directive options.
func (p ParserConfig) Options() directive.Options {
	return directive.Options{MaxLineLength: p.MaxLineLength}
}

// DirectivesConfig lists the directive names offered for completion.
type DirectivesConfig struct {
	Names []string `mapstructure:"names"`
}

// ThemeConfig holds highlight colors keyed by role:
// marker, name, key, equals, value.
type ThemeConfig struct {
	Colors map[string]string `mapstructure:"colors"`
}

// Theme builds the highlight theme.
func (t ThemeConfig) Theme() (directive.Theme, error) {
	return directive.ThemeFromColors(t.Colors)
}

// WatchConfig configures `headline watch`.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig configures the analysis cache.
type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Disable bool          `mapstructure:"disable"`
}

// DefaultTracesFilePath returns ~/.config/headline/traces/traces.jsonl, or
// "" when the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "headline", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Parser:     ParserConfig{MaxLineLength: directive.DefaultMaxLineLength},
		Directives: DirectivesConfig{Names: complete.DefaultNames()},
		Theme:      ThemeConfig{},
		Watch:      WatchConfig{Debounce: 200 * time.Millisecond},
		Cache:      CacheConfig{TTL: 10 * time.Minute},
		Tracing:    tc,
	}
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if c.Parser.MaxLineLength < 0 {
		return fmt.Errorf("parser.max_line_length must be >= 0, got %d", c.Parser.MaxLineLength)
	}
	if err := complete.ValidateNames(c.Directives.Names); err != nil {
		return fmt.Errorf("directives.names: %w", err)
	}
	if _, err := c.Theme.Theme(); err != nil {
		return fmt.Errorf("theme.colors: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", c.Watch.Debounce)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled && tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# headline configuration

# Header parsing
parser:
  # Longest header line accepted, in bytes. 0 disables the limit.
  max_line_length: 4096

# Directive names suggested while typing "@..."
directives:
  names:
    - option
    - multi_option
    - matching_pair

# Highlight colors (hex). Keys: marker, name, key, equals, value
theme:
  colors: {}
  # colors:
  #   name: "#82AAFF"
  #   value: "#C3E88D"

# headline watch
watch:
  debounce: 200ms

# Analysis cache
cache:
  ttl: 10m
  disable: false

# Tracing of parse/tokenize calls
# tracing:
#   enabled: false
#   exporter: file          # none, file, stdout, otlp
#   file_path: ~/.config/headline/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default template to configPath, creating the
// parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
