package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/flightdeck/internal/app"
	"github.com/zjrosen/flightdeck/internal/config"
	"github.com/zjrosen/flightdeck/internal/history"
	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/paths"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the header.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	cfgPath   string
	cfg       config.Config
	cfgErr    error
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "flightdeck",
	Short: "A terminal dashboard for Elite Dangerous telemetry",
	Long: `A terminal dashboard for Elite Dangerous commanders.

The sidebar groups panels by activity (mining, hauling, combat,
colonization); activity panels carry their own sub-tabs. Values come from
a YAML snapshot written by an external journal collector and are reloaded
whenever the file changes.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/flightdeck/config.yaml)")
	rootCmd.PersistentFlags().StringP("start", "s", "",
		"navigation key to open first (see 'flightdeck keys')")
	rootCmd.PersistentFlags().String("snapshot", "",
		"telemetry snapshot file to display")
	rootCmd.Flags().BoolVarP(&debugMode, "debug", "d", false,
		"write a debug log and enable the log pane (ctrl+x)")

	_ = viper.BindPFlag("start", rootCmd.PersistentFlags().Lookup("start"))
	_ = viper.BindPFlag("telemetry.snapshot_path", rootCmd.PersistentFlags().Lookup("snapshot"))
}

func initConfig() {
	cfg, cfgPath, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// setDefaults registers every default so that Unmarshal sees them even
// when the config file omits a section.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("ui.show_header", defaults.UI.ShowHeader)
	v.SetDefault("ui.show_footer", defaults.UI.ShowFooter)
	v.SetDefault("ui.remember_last", defaults.UI.RememberLast)
	v.SetDefault("telemetry.watch", defaults.Telemetry.Watch)
	v.SetDefault("telemetry.debounce", defaults.Telemetry.Debounce)
	v.SetDefault("telemetry.history", defaults.Telemetry.History)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

// loadConfig reads the config file into v and decodes it. Without an
// explicit file the lookup order is .flightdeck/config.yaml, then
// ~/.config/flightdeck/config.yaml; when neither exists a commented default
// is written to the user config so later saves have a home.
func loadConfig(v *viper.Viper, file string) (config.Config, string, error) {
	setDefaults(v)
	v.SetEnvPrefix("FLIGHTDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := file
	if path == "" {
		var found bool
		path, found = paths.FindConfig()
		if !found {
			if err := config.WriteDefaultConfig(path); err != nil {
				// Run on defaults; saves will fail later and are logged.
				log.Warn(log.CatConfig, "Could not write default config", "path", path, "error", err)
			}
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || (!errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist)) {
			return config.Config{}, path, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, path, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if c.Tracing.FilePath == "" {
		c.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	return c, path, nil
}

// newFeed builds the snapshot feed described by the telemetry config.
// hist may be nil.
func newFeed(c config.Config, tracer trace.Tracer, hist telemetry.History) *telemetry.Feed {
	return telemetry.NewFeed(telemetry.FeedConfig{
		Path:     paths.Expand(c.Telemetry.SnapshotPath),
		Watch:    c.Telemetry.Watch,
		Debounce: c.Telemetry.Debounce,
		Tracer:   tracer,
		History:  hist,
	})
}

// openHistory opens the session series store, or returns nil when history
// is disabled or there is no snapshot to accumulate.
func openHistory(c config.Config, tracer trace.Tracer) (*history.Store, error) {
	if !c.Telemetry.History || c.Telemetry.SnapshotPath == "" {
		return nil, nil
	}
	return history.Open(history.Config{
		Limit:     c.Telemetry.HistoryLimit,
		Retention: c.Telemetry.HistoryRetention,
		Tracer:    tracer,
	})
}

func runApp(_ *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sessionID := uuid.NewString()
	if os.Getenv("FLIGHTDECK_DEBUG") != "" {
		debugMode = true
	}
	if debugMode {
		logPath := filepath.Join(paths.ConfigDir(), "debug.log")
		closeLog, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer closeLog()
		log.SetSession(sessionID)
		log.Info(log.CatApp, "Starting flightdeck", "version", version, "config", cfgPath)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     paths.Expand(cfg.Tracing.FilePath),
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		SessionID:    sessionID,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracer shutdown failed", err)
		}
	}()

	store, err := openHistory(cfg, provider.Tracer())
	if err != nil {
		return fmt.Errorf("opening series history: %w", err)
	}
	var hist telemetry.History
	if store != nil {
		hist = store
		defer func() { _ = store.Close() }()
	}

	zone.NewGlobal()
	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Feed:       newFeed(cfg, provider.Tracer(), hist),
		Tracer:     provider.Tracer(),
		Debug:      debugMode,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
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
