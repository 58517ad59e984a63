// Package logpane shows recent log lines inside the dashboard. Lines arrive
// as log.LogEvent messages; the pane keeps a bounded buffer of them.
package logpane

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/ui/panes"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// MaxEntries bounds the buffer; older lines are dropped first.
const MaxEntries = 500

// Model is the log pane state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	entries  []string
	viewport viewport.Model
	theme    styles.Theme
}

// New creates a hidden pane.
func New(theme styles.Theme) Model {
	return Model{
		minLevel: log.LevelDebug,
		theme:    theme,
	}
}

// Append adds a log line.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if over := len(m.entries) - MaxEntries; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
	if m.visible {
		m.refresh(true)
	}
}

// Entries returns the lines that pass the current level filter.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.entries {
		if m.matchesLevel(e) {
			out = append(out, e)
		}
	}
	return out
}

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Update handles keys while the pane is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "c":
		m.entries = nil
		m.refresh(false)
	case "d":
		m.setLevel(log.LevelDebug)
	case "i":
		m.setLevel(log.LevelInfo)
	case "w":
		m.setLevel(log.LevelWarn)
	case "e":
		m.setLevel(log.LevelError)
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "esc":
		m.visible = false
	}
	return m, nil
}

func (m *Model) setLevel(level log.Level) {
	m.minLevel = level
	m.refresh(true)
}

// View renders the pane at its full size.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content:  m.viewport.View() + "\n" + m.filterHint(),
		Width:    m.width,
		Height:   m.height,
		TopLeft:  "Logs",
		TopRight: m.minLevel.String() + "+",
		Focused:  true,
		Theme:    m.theme,
	})
}

// Visible reports whether the pane is shown.
func (m Model) Visible() bool { return m.visible }

// Toggle shows or hides the pane.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh(true)
	}
}

// SetSize sets the outer size of the pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh(m.viewport.AtBottom())
}

// refresh rebuilds the viewport. The hint line takes one row.
func (m *Model) refresh(follow bool) {
	if m.width == 0 || m.height == 0 {
		return
	}
	w := max(m.width-2, 1)
	h := max(m.height-3, 1)

	offset := m.viewport.YOffset
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
	if follow {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(offset)
	}
}

func (m Model) content(width int) string {
	filtered := m.Entries()
	if len(filtered) == 0 {
		return m.theme.Muted().Italic(true).Render("No logs to display")
	}
	lines := make([]string, len(filtered))
	for i, e := range filtered {
		lines[i] = m.colorize(e, width)
	}
	return strings.Join(lines, "\n")
}

// matchesLevel keeps entries at or above minLevel. Lines without a level
// tag are always shown.
func (m Model) matchesLevel(entry string) bool {
	level, ok := entryLevel(entry)
	if !ok {
		return true
	}
	return level >= m.minLevel
}

func entryLevel(entry string) (log.Level, bool) {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError, true
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn, true
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo, true
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug, true
	}
	return 0, false
}

func (m Model) colorize(entry string, maxWidth int) string {
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, max(maxWidth-3, 0), "...")
	}

	tok := styles.TokenTextPrimary
	if level, ok := entryLevel(entry); ok {
		switch level {
		case log.LevelError:
			tok = styles.TokenStatusError
		case log.LevelWarn:
			tok = styles.TokenStatusWarning
		case log.LevelInfo:
			tok = styles.TokenAccentCyan
		default:
			tok = styles.TokenTextMuted
		}
	}
	return m.theme.Fg(tok).Render(entry)
}

// filterHint lists the filter keys with the active one in bold.
func (m Model) filterHint() string {
	hint := m.theme.Muted()
	active := m.theme.Fg(styles.TokenTextPrimary).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
