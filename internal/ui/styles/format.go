package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Placeholder is rendered wherever an externally supplied value is absent.
const Placeholder = "---"

// TruncateString truncates a string to fit within maxWidth, adding an
// ellipsis if needed. ANSI sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// ValueOr returns v, or Placeholder when v is blank.
func ValueOr(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}
