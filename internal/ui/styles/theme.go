package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// Theme is a resolved color palette. The zero value is not usable; build
// one with NewTheme or DefaultTheme.
type Theme struct {
	name   string
	colors map[ColorToken]lipgloss.Color
}

// DefaultTheme returns the elite preset without overrides.
func DefaultTheme() Theme {
	t, _ := NewTheme(ThemeConfig{})
	return t
}

// NewTheme resolves a theme configuration.
// Order: the elite preset, then the named preset, then individual overrides.
func NewTheme(cfg ThemeConfig) (Theme, error) {
	colors := maps.Clone(ElitePreset.Colors)

	name := cfg.Preset
	if name == "" {
		name = DefaultPresetName
	}
	if name != DefaultPresetName {
		preset, ok := Presets[name]
		if !ok {
			return Theme{}, fmt.Errorf("unknown theme preset: %s", name)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return Theme{}, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return Theme{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	resolved := make(map[ColorToken]lipgloss.Color, len(colors))
	for tok, hex := range colors {
		resolved[tok] = lipgloss.Color(hex)
	}
	return Theme{name: name, colors: resolved}, nil
}

// Name returns the preset the theme was built from.
func (t Theme) Name() string {
	return t.name
}

// Color returns the color for tok, or the primary text color when tok is unknown.
func (t Theme) Color(tok ColorToken) lipgloss.Color {
	if c, ok := t.colors[tok]; ok {
		return c
	}
	return t.colors[TokenTextPrimary]
}

// Fg returns a fresh style with tok as foreground.
func (t Theme) Fg(tok ColorToken) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color(tok))
}

// Title is the bold accent style used for section and card titles.
func (t Theme) Title() lipgloss.Style {
	return t.Fg(TokenNavHeader).Bold(true)
}

// Muted is the style for hints, labels and footers.
func (t Theme) Muted() lipgloss.Style {
	return t.Fg(TokenTextMuted)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
