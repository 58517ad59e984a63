package panels

import (
	"fmt"
	"strings"

	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
	"github.com/zjrosen/flightdeck/internal/ui/widgets"
)

// renderCtx is everything a block needs to draw itself.
type renderCtx struct {
	snap  telemetry.Snapshot
	width int
	theme styles.Theme
	md    *markdown.Cache
}

// block is one vertical section of a page.
type block func(rc renderCtx) string

const chartHeight = 8

func renderBlocks(rc renderCtx, blocks []block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if out := b(rc); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// placeholder is a section whose data source is not wired yet.
func placeholder(title, description string) block {
	return func(rc renderCtx) string {
		return widgets.RenderPlaceholder(widgets.Placeholder{Title: title, Description: description}, rc.width, rc.theme, rc.md)
	}
}

type statusSpec struct {
	key   string
	label string
}

// statusRow renders live status indicators from the snapshot.
func statusRow(specs ...statusSpec) block {
	return func(rc renderCtx) string {
		items := make([]widgets.StatusIndicator, 0, len(specs))
		for _, s := range specs {
			ind := widgets.StatusIndicator{Label: s.label}
			if rec, ok := telemetry.LookupStatus(rc.snap, s.key); ok {
				ind.Value = rec.Value
				ind.Level = rec.Level
				if rec.Label != "" {
					ind.Label = rec.Label
				}
			}
			items = append(items, ind)
		}
		return widgets.StatusBar(items, rc.width, rc.theme)
	}
}

type cardSpec struct {
	key    string
	title  string
	accent styles.ColorToken
}

// cards renders a metric card grid for one metrics group.
func cards(group string, specs ...cardSpec) block {
	return func(rc renderCtx) string {
		out := make([]widgets.MetricCard, 0, len(specs))
		for _, s := range specs {
			card := widgets.MetricCard{Title: s.title, Accent: s.accent}
			if m, ok := telemetry.LookupMetric(rc.snap, group, s.key); ok {
				card.Value = m.Value
				card.Subtitle = m.Subtitle
			}
			out = append(out, card)
		}
		return widgets.CardGrid(out, rc.width, rc.theme)
	}
}

// eventFeed renders the newest events.
func eventFeed(title string, limit int) block {
	return func(rc renderCtx) string {
		return widgets.Section(title, widgets.EventFeed(rc.snap.Events(), rc.width, limit, rc.theme), rc.width, rc.theme)
	}
}

// chart renders a named series, falling back to the placeholder
// description while the series is absent.
func chart(title, series, description string) block {
	return func(rc renderCtx) string {
		points := rc.snap.Series(series)
		if len(points) == 0 {
			return placeholder(title, description)(rc)
		}
		return widgets.Section(title, widgets.SeriesChart(points, rc.width, chartHeight, rc.theme), rc.width, rc.theme)
	}
}

// forecasts lists prediction results with their confidence band.
func forecasts(title, description string, keys ...string) block {
	return func(rc renderCtx) string {
		var rows [][2]string
		for _, k := range keys {
			f, ok := telemetry.LookupForecast(rc.snap, k)
			if !ok {
				continue
			}
			label := f.Label
			if label == "" {
				label = f.Key
			}
			rows = append(rows, [2]string{label, formatForecast(f)})
		}
		if len(rows) == 0 {
			return placeholder(title, description)(rc)
		}
		return widgets.Section(title, widgets.KeyValues(rows, rc.width, rc.theme), rc.width, rc.theme)
	}
}

func formatForecast(f telemetry.Forecast) string {
	out := styles.ValueOr(f.Value)
	if f.Low != nil && f.High != nil {
		out += fmt.Sprintf(" (%.2f to %.2f)", *f.Low, *f.High)
	}
	if f.Confidence > 0 {
		out += fmt.Sprintf(" %.0f%%", f.Confidence*100)
	}
	return out
}

// banner is a bold page heading with an optional "label: value" status dot
// underneath. The value comes only from the snapshot.
func banner(title, subtitle string, dot statusSpec) block {
	return func(rc renderCtx) string {
		head := rc.theme.Title().Render(title)
		if subtitle != "" {
			head += "\n" + rc.theme.Muted().Render(subtitle)
		}
		if dot.key == "" {
			return head
		}
		value, level := styles.Placeholder, ""
		if rec, ok := telemetry.LookupStatus(rc.snap, dot.key); ok {
			value, level = styles.ValueOr(rec.Value), rec.Level
		}
		return head + "\n" + widgets.Dot(dot.label+": "+value, level, rc.theme)
	}
}

// details renders key/value rows sourced from status records.
func details(title string, specs ...statusSpec) block {
	return func(rc renderCtx) string {
		rows := make([][2]string, 0, len(specs))
		for _, s := range specs {
			var v string
			if rec, ok := telemetry.LookupStatus(rc.snap, s.key); ok {
				v = rec.Value
			}
			rows = append(rows, [2]string{s.label, v})
		}
		return widgets.Section(title, widgets.KeyValues(rows, rc.width, rc.theme), rc.width, rc.theme)
	}
}
