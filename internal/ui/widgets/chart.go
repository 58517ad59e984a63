package widgets

import (
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Smallest chart canvas that still draws axes and a line.
const (
	minChartWidth  = 12
	minChartHeight = 4
)

// SeriesChart renders points as a braille time-series line. With no points
// it returns the placeholder so the panel layout stays stable.
func SeriesChart(points []telemetry.Point, width, height int, theme styles.Theme) string {
	if len(points) == 0 {
		return theme.Muted().Render(styles.Placeholder)
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	start, end := points[0].Time, points[0].Time
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Time.Before(start) {
			start = p.Time
		}
		if p.Time.After(end) {
			end = p.Time
		}
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	if hi <= lo {
		hi = lo + 1
	}

	chart := tslc.New(width, height)
	chart.SetStyle(lipgloss.NewStyle().Foreground(theme.Color(styles.TokenChartLine)))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(theme.Color(styles.TokenBorderDefault))
	chart.LabelStyle = theme.Muted()
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo, hi)
	chart.SetViewYRange(lo, hi)

	for _, p := range points {
		chart.Push(tslc.TimePoint{Time: p.Time, Value: p.Value})
	}
	chart.DrawBraille()
	return chart.View()
}
