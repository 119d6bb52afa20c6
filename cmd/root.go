package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/headline/internal/analysis"
	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/config"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/tracing"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".headline/config.yaml"
	defaultLogPath  = "debug.log"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	provider   *tracing.Provider
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "headline",
	Short: "Parse, tokenize and edit directive headers",
	Long: `headline works with the directive header on the first non-blank line of a
document, such as:

  @option layout=grid columns=3

It prints the parsed directive, the token spans used for highlighting, and
offers a terminal playground for editing headers with completion.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/headline/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also HEADLINE_DEBUG=1)")
}

func initConfig() {
	viper.Reset()

	defaults := config.Defaults()
	viper.SetDefault("parser.max_line_length", defaults.Parser.MaxLineLength)
	viper.SetDefault("directives.names", defaults.Directives.Names)
	viper.SetDefault("theme.colors", map[string]string{})
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.disable", defaults.Cache.Disable)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("log_path", defaultLogPath)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .headline/config.yaml (current directory)
		// 2. ~/.config/headline/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented default to the user config.
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "headline")
}

// configPath returns the config file in use, or where one would be written.
func configPath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return filepath.Join(userConfigDir(), "config.yaml")
}

// setup validates configuration and starts logging and tracing.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", configPath(), err)
	}

	if os.Getenv("HEADLINE_DEBUG") != "" || cfg.Debug {
		logPath := os.Getenv("HEADLINE_LOG")
		if logPath == "" {
			logPath = cfg.LogPath
		}
		cleanup, err := log.InitWithTeaLog(logPath, "headline")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "headline starting", "command", cmd.Name(), "config", viper.ConfigFileUsed())
	}

	p, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	provider = p
	if p.Enabled() {
		log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Tracing.Exporter)
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	var err error
	if provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("flushing traces: %w", shutdownErr)
		}
		provider = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
		log.Reset()
	}
	return err
}

// newAnalyzer builds an analyzer from the loaded configuration.
func newAnalyzer() *analysis.Analyzer {
	tp := provider
	if tp == nil {
		tp = tracing.Noop()
	}
	return analysis.New(analysis.Config{
		Options:      cfg.Parser.Options(),
		TTL:          cfg.Cache.TTL,
		DisableCache: cfg.Cache.Disable,
		Tracer:       tp.Tracer(),
	})
}

func newCompleter() *complete.Completer {
	return complete.New(cfg.Directives.Names)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
