// Package widgets holds the small render-only building blocks panels are
// assembled from: metric cards, status rows, placeholder sections, the
// event feed and series charts. Every function here is pure; panels own
// the state and call these from View.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// MinCardWidth is the narrowest a metric card is laid out.
const MinCardWidth = 18

// MetricCard is a headline number with a colored accent.
type MetricCard struct {
	Title    string
	Value    string
	Subtitle string
	Accent   styles.ColorToken
}

// RenderCard draws one card exactly width cells wide. Absent values render
// as the placeholder.
func RenderCard(card MetricCard, width int, theme styles.Theme) string {
	width = max(width, MinCardWidth)
	inner := width - 4 // border + padding

	accent := theme.Color(card.Accent)
	title := theme.Fg(card.Accent).Bold(true).Render(styles.TruncateString(card.Title, inner))
	value := lipgloss.NewStyle().Foreground(theme.Color(styles.TokenTextPrimary)).Bold(true).
		Render(styles.TruncateString(styles.ValueOr(card.Value), inner))

	lines := []string{title, value}
	if sub := strings.TrimSpace(card.Subtitle); sub != "" {
		lines = append(lines, theme.Muted().Render(wordwrap.String(sub, inner)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

// CardGrid lays cards out left to right, wrapping to a new row when the
// next card would not fit.
func CardGrid(cards []MetricCard, width int, theme styles.Theme) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := max(1, min(len(cards), width/MinCardWidth))
	cardWidth := max(MinCardWidth, width/perRow)

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rendered := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			rendered = append(rendered, RenderCard(c, cardWidth, theme))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
