package widgets

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderCard(t *testing.T) {
	theme := styles.DefaultTheme()
	out := RenderCard(MetricCard{
		Title:    "TOTAL WEALTH",
		Value:    "1.2B CR",
		Subtitle: "+4% this week",
		Accent:   styles.TokenAccentGreen,
	}, 24, theme)

	require.Contains(t, out, "TOTAL WEALTH")
	require.Contains(t, out, "1.2B CR")
	require.Contains(t, out, "+4% this week")
	for _, line := range strings.Split(out, "\n") {
		require.Equal(t, 24, lipgloss.Width(line))
	}
}

func TestRenderCard_AbsentValue(t *testing.T) {
	out := RenderCard(MetricCard{Title: "PLAY TIME", Accent: styles.TokenAccentCyan}, 20, styles.DefaultTheme())
	require.Contains(t, out, styles.Placeholder)
	require.Equal(t, 4, lipgloss.Height(out))
}

func TestRenderCard_NarrowWidthClamped(t *testing.T) {
	out := RenderCard(MetricCard{Title: "X", Value: "1"}, 3, styles.DefaultTheme())
	require.Equal(t, MinCardWidth, lipgloss.Width(out))
}

func TestCardGrid_Wraps(t *testing.T) {
	cards := []MetricCard{
		{Title: "A", Value: "1"},
		{Title: "B", Value: "2"},
		{Title: "C", Value: "3"},
	}
	theme := styles.DefaultTheme()

	wide := CardGrid(cards, 80, theme)
	require.Equal(t, 4, lipgloss.Height(wide))

	narrow := CardGrid(cards, 40, theme)
	require.Equal(t, 8, lipgloss.Height(narrow))

	require.Empty(t, CardGrid(nil, 80, theme))
}

func TestStatusBar(t *testing.T) {
	theme := styles.DefaultTheme()
	items := []StatusIndicator{
		{Label: "GAME STATUS", Value: "Docked", Level: LevelOK},
		{Label: "CURRENT SHIP", Value: ""},
	}

	out := StatusBar(items, 80, theme)
	require.Equal(t, "GAME STATUS Docked   CURRENT SHIP ---", out)

	wrapped := StatusBar(items, 20, theme)
	require.Equal(t, "GAME STATUS Docked\nCURRENT SHIP ---", wrapped)

	require.Empty(t, StatusBar(nil, 80, theme))
}

func TestDot(t *testing.T) {
	require.Equal(t, "● Game Connected", Dot("Game Connected", LevelOK, styles.DefaultTheme()))
}

func TestSection(t *testing.T) {
	theme := styles.DefaultTheme()
	out := Section("fuel level", "body", 10, theme)
	require.Equal(t, "FUEL LEVEL\n──────────\nbody", out)

	require.Equal(t, "CARGO\n─────", Section("cargo", "", 5, theme))
}

func TestRenderPlaceholder_NoMarkdown(t *testing.T) {
	theme := styles.DefaultTheme()
	out := RenderPlaceholder(Placeholder{Title: "Cargo Hold", Description: "Cargo manifest goes here"}, 40, theme, nil)
	require.Contains(t, out, "CARGO HOLD")
	require.Contains(t, out, "Cargo manifest goes here")

	empty := RenderPlaceholder(Placeholder{Title: "Cargo Hold"}, 40, theme, nil)
	require.Contains(t, empty, styles.Placeholder)
}

func TestKeyValues(t *testing.T) {
	out := KeyValues([][2]string{{"Fuel", "32 t"}, {"Jump Range", ""}}, 40, styles.DefaultTheme())
	require.Equal(t, "Fuel        32 t\nJump Range  ---", out)
}

func TestEventFeed(t *testing.T) {
	theme := styles.DefaultTheme()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []telemetry.Event{
		{Time: base.Add(2 * time.Minute), Kind: "MarketSell", Detail: "Painite x 64"},
		{Time: base, Kind: "Docked"},
		{Kind: "Undated"},
	}

	out := EventFeed(events, 60, 2, theme)
	require.Equal(t, "12:02:00 MarketSell Painite x 64\n12:00:00 Docked", out)

	all := EventFeed(events, 60, 0, theme)
	require.Contains(t, all, "--- Undated")

	require.Equal(t, EmptyFeedText, EventFeed(nil, 60, 5, theme))
}

func TestEventFeed_TruncatesLines(t *testing.T) {
	events := []telemetry.Event{{Time: time.Now(), Kind: "FSDJump", Detail: strings.Repeat("x", 100)}}
	out := EventFeed(events, 30, 0, styles.DefaultTheme())
	require.LessOrEqual(t, ansi.StringWidth(out), 30)
}

func TestSeriesChart(t *testing.T) {
	theme := styles.DefaultTheme()
	require.Equal(t, styles.Placeholder, SeriesChart(nil, 40, 8, theme))

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := []telemetry.Point{
		{Time: base, Value: 1.0},
		{Time: base.Add(24 * time.Hour), Value: 1.4},
		{Time: base.Add(48 * time.Hour), Value: 1.2},
	}
	out := SeriesChart(points, 40, 8, theme)
	require.NotEmpty(t, strings.TrimSpace(out))
	require.LessOrEqual(t, lipgloss.Height(out), 8)
}

func TestSeriesChart_SinglePoint(t *testing.T) {
	out := SeriesChart([]telemetry.Point{{Time: time.Now(), Value: 5}}, 20, 5, styles.DefaultTheme())
	require.NotEmpty(t, strings.TrimSpace(out))
}
