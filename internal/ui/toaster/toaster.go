// Package toaster shows short-lived notifications over the dashboard.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/ui/overlay"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Style determines the border color and icon of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up when nothing replaces it.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state.
type Model struct {
	theme   styles.Theme
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New(theme styles.Theme) Model {
	return Model{theme: theme}
}

// Show displays message and returns the command that dismisses it after d.
// A newer toast invalidates the dismissal of an older one.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m, ScheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var tok styles.ColorToken
	var icon string
	switch m.style {
	case StyleError:
		tok, icon = styles.TokenStatusError, "✗"
	case StyleInfo:
		tok, icon = styles.TokenAccentCyan, "i"
	case StyleWarn:
		tok, icon = styles.TokenStatusWarning, "!"
	default:
		tok, icon = styles.TokenStatusSuccess, "✓"
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Color(tok)).
		Render(m.theme.Fg(tok).Render(icon) + " " + m.message)
}

// Overlay draws the toast in the bottom right corner of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.BottomRight,
		PadX:     2,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast with the matching sequence number.
type DismissMsg struct{ Seq int }

// ScheduleDismiss returns a command that dismisses toast seq after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}
