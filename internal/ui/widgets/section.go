package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Placeholder describes a section whose content is supplied later by a
// data source. Description is markdown.
type Placeholder struct {
	Title       string
	Description string
}

// Section renders a titled block with a rule under the title.
func Section(title, body string, width int, theme styles.Theme) string {
	width = max(width, 1)
	head := theme.Title().Render(styles.TruncateString(strings.ToUpper(title), width))
	rule := lipgloss.NewStyle().Foreground(theme.Color(styles.TokenBorderDefault)).
		Render(strings.Repeat("─", width))
	if body == "" {
		return head + "\n" + rule
	}
	return head + "\n" + rule + "\n" + body
}

// RenderPlaceholder renders a placeholder section. The description goes
// through md when given; otherwise the raw text is shown muted.
func RenderPlaceholder(p Placeholder, width int, theme styles.Theme, md *markdown.Cache) string {
	var body string
	switch {
	case strings.TrimSpace(p.Description) == "":
		body = theme.Muted().Render(styles.Placeholder)
	case md != nil:
		body = md.Render(p.Description, width)
	default:
		body = theme.Muted().Render(p.Description)
	}
	return Section(p.Title, body, width, theme)
}

// KeyValues renders aligned "key  value" rows. Blank values show the placeholder.
func KeyValues(rows [][2]string, width int, theme styles.Theme) string {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(r[0]))
	}
	keyStyle := theme.Muted().Width(keyWidth + 2)
	valStyle := theme.Fg(styles.TokenTextPrimary)

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		line := keyStyle.Render(r[0]) + valStyle.Render(styles.ValueOr(r[1]))
		out = append(out, styles.TruncateString(line, width))
	}
	return strings.Join(out, "\n")
}
