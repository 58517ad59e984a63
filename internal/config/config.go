// Package config provides configuration types, defaults and persistence for flightdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/nav"
)

// Config holds all configuration options for flightdeck.
type Config struct {
	// Start is the navigation key shown first (default: first leaf).
	Start      string              `mapstructure:"start"`
	UI         UIConfig            `mapstructure:"ui"`
	Theme      ThemeConfig         `mapstructure:"theme"`
	Navigation []NavCategoryConfig `mapstructure:"navigation"`
	Telemetry  TelemetryConfig     `mapstructure:"telemetry"`
	Tracing    TracingConfig       `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	SidebarWidth  int        `mapstructure:"sidebar_width"`  // 0 uses the built-in width
	MarkdownStyle string     `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
	ShowHeader    bool       `mapstructure:"show_header"`
	ShowFooter    bool       `mapstructure:"show_footer"`
	RememberLast  bool       `mapstructure:"remember_last"` // Write the last viewed key back as start on quit
	Keys          KeysConfig `mapstructure:"keys"`
}

// KeysConfig rebinds the few keys users tend to collide with their terminal.
type KeysConfig struct {
	Focus  string `mapstructure:"focus"`
	Reload string `mapstructure:"reload"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "elite", "amber", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     border:
	//       focus: "#FF7100"
	// Or quoted dot notation:
	//   colors:
	//     "border.focus": "#FF7100"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// NavCategoryConfig is one sidebar group.
type NavCategoryConfig struct {
	Label  string          `mapstructure:"label" yaml:"label"`
	Leaves []NavLeafConfig `mapstructure:"leaves" yaml:"leaves"`
}

// NavLeafConfig is one selectable sidebar entry. Key must name a built-in panel.
type NavLeafConfig struct {
	Label string `mapstructure:"label" yaml:"label"`
	Key   string `mapstructure:"key" yaml:"key"`
}

// TelemetryConfig points the dashboard at an externally produced snapshot.
type TelemetryConfig struct {
	// SnapshotPath is a YAML file written by a collector. Empty shows placeholders only.
	SnapshotPath string `mapstructure:"snapshot_path"`

	// Watch reloads the snapshot whenever the file changes.
	// Default: true
	Watch bool `mapstructure:"watch"`

	// Debounce is how long writes must settle before a reload.
	// Default: 300ms
	Debounce time.Duration `mapstructure:"debounce"`

	// History accumulates chart series across reloads for the running
	// session instead of showing only the points of the latest snapshot.
	// Default: true
	History bool `mapstructure:"history"`

	// HistoryLimit caps the points kept on screen per series. 0 uses 500.
	HistoryLimit int `mapstructure:"history_limit"`

	// HistoryRetention drops samples older than this. 0 keeps the whole session.
	HistoryRetention time.Duration `mapstructure:"history_retention"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/flightdeck/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Sidebar width bounds accepted from config.
const (
	MinSidebarWidth = 16
	MaxSidebarWidth = 60
)

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/flightdeck/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flightdeck", "traces", "traces.jsonl")
}

// Categories converts the configured navigation into tree categories.
// It returns nil when no navigation is configured.
func (c Config) Categories() []nav.Category {
	if len(c.Navigation) == 0 {
		return nil
	}
	out := make([]nav.Category, 0, len(c.Navigation))
	for _, cat := range c.Navigation {
		leaves := make([]nav.Leaf, 0, len(cat.Leaves))
		for _, l := range cat.Leaves {
			leaves = append(leaves, nav.Leaf{Label: l.Label, Key: nav.Key(l.Key)})
		}
		out = append(out, nav.Category{Label: cat.Label, Leaves: leaves})
	}
	return out
}

// Validate runs every section validator.
func Validate(c Config) error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateNavigation(c.Navigation); err != nil {
		return err
	}
	if err := ValidateTelemetry(c.Telemetry); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateUI checks ui configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.SidebarWidth != 0 && (ui.SidebarWidth < MinSidebarWidth || ui.SidebarWidth > MaxSidebarWidth) {
		return fmt.Errorf("ui.sidebar_width must be between %d and %d, got %d", MinSidebarWidth, MaxSidebarWidth, ui.SidebarWidth)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\" or \"notty\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateNavigation checks the navigation override. Empty uses the
// built-in layout. Whether each key names a panel is checked later, when
// the shell validates against the registry.
func ValidateNavigation(cats []NavCategoryConfig) error {
	seen := make(map[string]string)
	for i, cat := range cats {
		if strings.TrimSpace(cat.Label) == "" {
			return fmt.Errorf("navigation %d: label is required", i)
		}
		if len(cat.Leaves) == 0 {
			return fmt.Errorf("navigation %d (%s): at least one leaf is required", i, cat.Label)
		}
		for j, leaf := range cat.Leaves {
			if strings.TrimSpace(leaf.Label) == "" {
				return fmt.Errorf("navigation %d (%s) leaf %d: label is required", i, cat.Label, j)
			}
			if strings.TrimSpace(leaf.Key) == "" {
				return fmt.Errorf("navigation %d (%s) leaf %d: key is required", i, cat.Label, j)
			}
			if prev, dup := seen[leaf.Key]; dup {
				return fmt.Errorf("navigation key %q is used by both %q and %q", leaf.Key, prev, leaf.Label)
			}
			seen[leaf.Key] = leaf.Label
		}
	}
	return nil
}

// ValidateTelemetry checks telemetry configuration for errors.
func ValidateTelemetry(t TelemetryConfig) error {
	if t.Debounce < 0 {
		return fmt.Errorf("telemetry.debounce must not be negative, got %s", t.Debounce)
	}
	if t.HistoryLimit < 0 {
		return fmt.Errorf("telemetry.history_limit must not be negative, got %d", t.HistoryLimit)
	}
	if t.HistoryRetention < 0 {
		return fmt.Errorf("telemetry.history_retention must not be negative, got %s", t.HistoryRetention)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			MarkdownStyle: "dark",
			ShowHeader:    true,
			ShowFooter:    true,
		},
		Telemetry: TelemetryConfig{
			Watch:    true,
			Debounce: 300 * time.Millisecond,
			History:  true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Flightdeck Configuration

# Navigation key shown at startup (default: first leaf)
# start: realtime

# UI settings
ui:
  show_header: true       # Title bar above the dashboard
  show_footer: true       # Connection status under the sidebar
  # sidebar_width: 26     # 16-60 columns
  # markdown_style: dark  # Placeholder text style: "dark" (default), "light" or "notty"
  # remember_last: false  # Reopen on the last viewed panel
  # keys:
  #   focus: tab          # Toggle focus between sidebar and content
  #   reload: r           # Reload the telemetry snapshot

# Theme configuration
theme:
  # Use a preset (run 'flightdeck themes' to see available presets):
  # preset: amber
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   border.focus: "#FF7100"
  #   accent.gold: "#FFD700"

# Telemetry snapshot produced by your journal collector.
# Without one every panel shows placeholders.
telemetry:
  # snapshot_path: ~/.config/flightdeck/snapshot.yaml
  watch: true
  debounce: 300ms
  history: true            # Charts keep growing across reloads (session only)
  # history_limit: 500      # Points shown per chart
  # history_retention: 4h   # Drop samples older than this

# Sidebar layout. Omit to use the built-in layout.
# Every key must name a built-in panel (run 'flightdeck keys' to list them).
# navigation:
#   - label: GLOBAL
#     leaves:
#       - label: Real-Time
#         key: realtime
#       - label: Analysis
#         key: analysis
#   - label: MINING
#     leaves:
#       - label: Asteroid Mining
#         key: mining

# Tracing of startup and panel switches
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/flightdeck/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
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
