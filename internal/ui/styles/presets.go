package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPresetName is used when the config names no preset.
const DefaultPresetName = "elite"

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"elite":         ElitePreset,
	"amber":         AmberPreset,
	"high-contrast": HighContrastPreset,
}

// ElitePreset is the dark navy/cyan cockpit scheme.
var ElitePreset = Preset{
	Name:        "elite",
	Description: "Dark navy with cyan highlights",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#AAAAAA",
		TokenTextMuted:     "#888888",

		TokenBorderDefault: "#3A3A5A",
		TokenBorderFocus:   "#00D4FF",

		TokenNavHeader:     "#00D4FF",
		TokenNavCategory:   "#AAAAAA",
		TokenNavSelected:   "#00D4FF",
		TokenNavSelectedBg: "#252550",

		TokenStatusSuccess: "#00FF88",
		TokenStatusWarning: "#FF9F00",
		TokenStatusError:   "#FF4444",

		TokenChartLine: "#00D4FF",

		TokenAccentCyan:   "#00D4FF",
		TokenAccentGreen:  "#00FF88",
		TokenAccentOrange: "#FF9F00",
		TokenAccentPurple: "#BF00FF",
		TokenAccentGold:   "#FFD700",
		TokenAccentRed:    "#FF4444",
		TokenAccentSilver: "#E5E4E2",
	},
}

// AmberPreset mimics the orange ship HUD.
var AmberPreset = Preset{
	Name:        "amber",
	Description: "Orange HUD tones",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFB000",
		TokenTextSecondary: "#D08C00",
		TokenTextMuted:     "#8A5C00",
		TokenBorderDefault: "#5A3C00",
		TokenBorderFocus:   "#FF7B00",
		TokenNavHeader:     "#FF7B00",
		TokenNavCategory:   "#D08C00",
		TokenNavSelected:   "#FFFFFF",
		TokenNavSelectedBg: "#5A3C00",
		TokenChartLine:     "#FF7B00",
		TokenAccentCyan:    "#FFB000",
	},
}

// HighContrastPreset favours legibility over mood.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#C0C0C0",
		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",
		TokenNavHeader:     "#FFFF00",
		TokenNavCategory:   "#FFFFFF",
		TokenNavSelected:   "#000000",
		TokenNavSelectedBg: "#FFFF00",
		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",
		TokenChartLine:     "#FFFFFF",
	},
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}
