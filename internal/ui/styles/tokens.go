// Package styles holds the dashboard color theme. A Theme is an immutable
// value built once from config and passed into panel construction; nothing
// in this package is process-wide mutable state.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Navigation
	TokenNavHeader     ColorToken = "nav.header"
	TokenNavCategory   ColorToken = "nav.category"
	TokenNavSelected   ColorToken = "nav.selected"
	TokenNavSelectedBg ColorToken = "nav.selected.bg"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Charts
	TokenChartLine ColorToken = "chart.line"

	// Card accents
	TokenAccentCyan   ColorToken = "accent.cyan"
	TokenAccentGreen  ColorToken = "accent.green"
	TokenAccentOrange ColorToken = "accent.orange"
	TokenAccentPurple ColorToken = "accent.purple"
	TokenAccentGold   ColorToken = "accent.gold"
	TokenAccentRed    ColorToken = "accent.red"
	TokenAccentSilver ColorToken = "accent.silver"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenNavHeader,
		TokenNavCategory,
		TokenNavSelected,
		TokenNavSelectedBg,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenChartLine,

		TokenAccentCyan,
		TokenAccentGreen,
		TokenAccentOrange,
		TokenAccentPurple,
		TokenAccentGold,
		TokenAccentRed,
		TokenAccentSilver,
	}
}
