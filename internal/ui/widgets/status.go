package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Status levels understood by StatusIndicator.
const (
	LevelOK    = "ok"
	LevelWarn  = "warn"
	LevelError = "error"
)

// StatusIndicator is a labeled live value such as GAME STATUS: Docked.
type StatusIndicator struct {
	Label string
	Value string
	Level string
}

func levelToken(level string) styles.ColorToken {
	switch level {
	case LevelOK:
		return styles.TokenStatusSuccess
	case LevelWarn:
		return styles.TokenStatusWarning
	case LevelError:
		return styles.TokenStatusError
	default:
		return styles.TokenTextPrimary
	}
}

// RenderIndicator renders "LABEL value" on a single line.
func RenderIndicator(ind StatusIndicator, theme styles.Theme) string {
	label := theme.Muted().Render(ind.Label)
	value := theme.Fg(levelToken(ind.Level)).Bold(ind.Level != "").Render(styles.ValueOr(ind.Value))
	return label + " " + value
}

// StatusBar wraps indicators across as many lines as width requires.
func StatusBar(items []StatusIndicator, width int, theme styles.Theme) string {
	if len(items) == 0 {
		return ""
	}
	const gap = "   "

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, it := range items {
		cell := RenderIndicator(it, theme)
		w := lipgloss.Width(cell)
		if lineWidth > 0 && lineWidth+len(gap)+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(gap)
			lineWidth += len(gap)
		}
		line.WriteString(cell)
		lineWidth += w
	}
	lines = append(lines, line.String())

	for i, l := range lines {
		lines[i] = styles.TruncateString(l, width)
	}
	return strings.Join(lines, "\n")
}

// Dot renders "● text" colored by level, as used in headers and footers.
func Dot(text, level string, theme styles.Theme) string {
	return theme.Fg(levelToken(level)).Render("● " + text)
}
