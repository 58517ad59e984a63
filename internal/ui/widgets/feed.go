package widgets

import (
	"strings"

	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// EmptyFeedText is shown when no events have been supplied.
const EmptyFeedText = "Waiting for journal events..."

// EventFeed renders the newest limit events, one per line, newest first.
// Events must already be ordered.
func EventFeed(events []telemetry.Event, width, limit int, theme styles.Theme) string {
	if len(events) == 0 {
		return theme.Muted().Render(styles.TruncateString(EmptyFeedText, width))
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	timeStyle := theme.Muted()
	kindStyle := theme.Fg(styles.TokenAccentCyan).Bold(true)
	detailStyle := theme.Fg(styles.TokenTextPrimary)

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		stamp := styles.Placeholder
		if !ev.Time.IsZero() {
			stamp = ev.Time.Format("15:04:05")
		}
		line := timeStyle.Render(stamp) + " " + kindStyle.Render(ev.Kind)
		if ev.Detail != "" {
			line += " " + detailStyle.Render(ev.Detail)
		}
		lines = append(lines, styles.TruncateString(line, width))
	}
	return strings.Join(lines, "\n")
}
