package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/headline/internal/directive"
	"github.com/zjrosen/headline/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, directive.DefaultMaxLineLength, cfg.Parser.MaxLineLength)
	require.Equal(t, []string{"option", "multi_option", "matching_pair"}, cfg.Directives.Names)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestParserConfig_Options(t *testing.T) {
	opts := ParserConfig{MaxLineLength: 12}.Options()
	require.Equal(t, directive.Options{MaxLineLength: 12}, opts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative line length",
			mutate:  func(c *Config) { c.Parser.MaxLineLength = -1 },
			wantErr: "parser.max_line_length must be >= 0, got -1",
		},
		{
			name:   "zero line length disables the limit",
			mutate: func(c *Config) { c.Parser.MaxLineLength = 0 },
		},
		{
			name:    "name with a space",
			mutate:  func(c *Config) { c.Directives.Names = []string{"multi option"} },
			wantErr: "directives.names",
		},
		{
			name:    "unknown theme key",
			mutate:  func(c *Config) { c.Theme.Colors = map[string]string{"comment": "#ffffff"} },
			wantErr: `theme.colors: unknown theme color "comment"`,
		},
		{
			name:    "bad hex",
			mutate:  func(c *Config) { c.Theme.Colors = map[string]string{"name": "blue"} },
			wantErr: "theme.colors: theme color name: invalid hex",
		},
		{
			name:   "valid theme",
			mutate: func(c *Config) { c.Theme.Colors = map[string]string{"name": "#82AAFF", "value": "#abc"} },
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: "watch.debounce must be >= 0",
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.Cache.TTL = -time.Second },
			wantErr: "cache.ttl must be >= 0",
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: "tracing.sample_rate must be between 0.0 and 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr bool
	}{
		{name: "defaults", cfg: tracing.DefaultConfig()},
		{name: "empty exporter", cfg: tracing.Config{SampleRate: 1}},
		{name: "stdout", cfg: tracing.Config{Enabled: true, Exporter: tracing.ExporterStdout, SampleRate: 0.5}},
		{name: "unknown exporter", cfg: tracing.Config{Exporter: "jaeger", SampleRate: 1}, wantErr: true},
		{name: "negative rate", cfg: tracing.Config{SampleRate: -0.1}, wantErr: true},
		{name: "file without path", cfg: tracing.Config{Enabled: true, Exporter: tracing.ExporterFile, SampleRate: 1}, wantErr: true},
		{name: "disabled file without path", cfg: tracing.Config{Exporter: tracing.ExporterFile, SampleRate: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var parsed struct {
		Parser struct {
			MaxLineLength int `yaml:"max_line_length"`
		} `yaml:"parser"`
		Directives struct {
			Names []string `yaml:"names"`
		} `yaml:"directives"`
		Theme struct {
			Colors map[string]string `yaml:"colors"`
		} `yaml:"theme"`
		Watch struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"watch"`
		Cache struct {
			TTL string `yaml:"ttl"`
		} `yaml:"cache"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))

	defaults := Defaults()
	require.Equal(t, defaults.Parser.MaxLineLength, parsed.Parser.MaxLineLength)
	require.Equal(t, defaults.Directives.Names, parsed.Directives.Names)
	require.Empty(t, parsed.Theme.Colors)

	debounce, err := time.ParseDuration(parsed.Watch.Debounce)
	require.NoError(t, err)
	require.Equal(t, defaults.Watch.Debounce, debounce)

	ttl, err := time.ParseDuration(parsed.Cache.TTL)
	require.NoError(t, err)
	require.Equal(t, defaults.Cache.TTL, ttl)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "headline", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
