// Package panes contains the bordered and scrollable pane chrome shared by
// the navigation sidebar, the content slot and every panel section.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered pane.
type BorderConfig struct {
	Content string // The content to render inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	TopLeft     string // Title on top border, left-aligned
	TopRight    string // Title on top border, right-aligned
	BottomLeft  string // Title on bottom border, left-aligned
	BottomRight string // Title on bottom border, right-aligned

	Focused bool
	Theme   styles.Theme

	// Optional overrides; nil falls back to the theme.
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// BorderedPane renders content within a rounded border with optional titles.
// Content is clipped and padded to exactly Width x Height cells.
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg)
	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = cfg.Theme.Color(styles.TokenNavHeader)
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	top := buildBorderLine(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle)
	bottom := buildBorderLine(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle)

	contentLines := strings.Split(cfg.Content, "\n")
	side := borderStyle.Render(borderVertical)

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = styles.TruncateString(contentLines[i], innerWidth)
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(side)
		b.WriteString(line)
		b.WriteString(side)
		b.WriteString("\n")
	}
	b.WriteString(bottom)
	return b.String()
}

// resolveBorderColor picks the border color.
//   - Focused: FocusedBorderColor, else BorderColor, else theme focus color
//   - Unfocused: BorderColor, else theme default border color
func resolveBorderColor(cfg BorderConfig) lipgloss.TerminalColor {
	if cfg.Focused {
		switch {
		case cfg.FocusedBorderColor != nil:
			return cfg.FocusedBorderColor
		case cfg.BorderColor != nil:
			return cfg.BorderColor
		default:
			return cfg.Theme.Color(styles.TokenBorderFocus)
		}
	}
	if cfg.BorderColor != nil {
		return cfg.BorderColor
	}
	return cfg.Theme.Color(styles.TokenBorderDefault)
}

// buildBorderLine renders one horizontal border with optional embedded
// titles: ╭─ Left ──────── Right ─╮. Titles that do not fit are dropped
// right first, then the left one is truncated.
func buildBorderLine(leftCorner, rightCorner, leftTitle, rightTitle string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := func() string {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}
	if leftTitle == "" && rightTitle == "" {
		return plain()
	}

	leftWidth := lipgloss.Width(leftTitle)
	rightWidth := lipgloss.Width(rightTitle)

	// "─ " + left + " " + dashes + " " + right + " ─"
	if leftTitle != "" && rightTitle != "" && innerWidth < leftWidth+rightWidth+7 {
		rightTitle = ""
		rightWidth = 0
	}

	if rightTitle == "" {
		if innerWidth < 5 {
			return plain()
		}
		leftTitle = styles.TruncateString(leftTitle, innerWidth-4)
		dashes := max(innerWidth-3-lipgloss.Width(leftTitle), 0)
		return borderStyle.Render(leftCorner+borderHorizontal+" ") +
			titleStyle.Render(leftTitle) +
			borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes)+rightCorner)
	}

	if leftTitle == "" {
		if innerWidth < rightWidth+4 {
			return plain()
		}
		dashes := innerWidth - rightWidth - 3
		return borderStyle.Render(leftCorner+strings.Repeat(borderHorizontal, dashes)+" ") +
			titleStyle.Render(rightTitle) +
			borderStyle.Render(" "+borderHorizontal+rightCorner)
	}

	dashes := max(innerWidth-leftWidth-rightWidth-6, 1)
	return borderStyle.Render(leftCorner+borderHorizontal+" ") +
		titleStyle.Render(leftTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes)+" ") +
		titleStyle.Render(rightTitle) +
		borderStyle.Render(" "+borderHorizontal+rightCorner)
}
