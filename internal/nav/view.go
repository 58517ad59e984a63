package nav

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Zone ID format: nav:{tree id}:{leaf key}
const zonePrefix = "nav:"

func (t *Tree) zoneID(key Key) string {
	return zonePrefix + t.id + ":" + string(key)
}

// HandleMouse selects the leaf under a left-click release. Other mouse
// events and clicks outside any leaf yield nil.
func (t *Tree) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil
	}
	for _, leaf := range t.leaves {
		if z := zone.Get(t.zoneID(leaf.Key)); z != nil && z.InBounds(msg) {
			return t.SelectLeaf(leaf.Key)
		}
	}
	return nil
}

// ViewSidebar renders the tree vertically: bold category headers with their
// leaves indented below. The current leaf carries an indicator and, when the
// sidebar is focused, the cursor row is underlined. Output is clipped to
// height lines.
func (t *Tree) ViewSidebar(width, height int, focused bool) string {
	categoryStyle := t.theme.Fg(styles.TokenNavCategory).Bold(true)
	leafStyle := t.theme.Fg(styles.TokenTextSecondary)
	selectedStyle := t.theme.Fg(styles.TokenNavSelected).
		Background(t.theme.Color(styles.TokenNavSelectedBg)).
		Bold(true)
	cursorStyle := leafStyle.Underline(true)

	labelWidth := max(width-4, 1)
	var lines []string

	leafIndex := 0
	for ci, cat := range t.categories {
		if ci > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, " "+categoryStyle.Render(runewidth.Truncate(cat.Label, max(width-1, 1), "…")))

		for _, leaf := range cat.Leaves {
			label := runewidth.Truncate(leaf.Label, labelWidth, "…")
			var row string
			switch {
			case leafIndex == t.current:
				row = selectedStyle.Render("▸ " + runewidth.FillRight(label, labelWidth))
			case focused && leafIndex == t.cursor:
				row = "  " + cursorStyle.Render(label)
			default:
				row = "  " + leafStyle.Render(label)
			}
			lines = append(lines, " "+zone.Mark(t.zoneID(leaf.Key), row))
			leafIndex++
		}
	}

	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// ViewTabs renders the tree as a single-line tab strip. With more than one
// category, each group is prefixed by its category label. Tabs that do not
// fit in width are replaced by an ellipsis.
func (t *Tree) ViewTabs(width int, focused bool) string {
	groupStyle := t.theme.Muted()
	tabStyle := t.theme.Fg(styles.TokenTextSecondary).Padding(0, 1)
	activeStyle := t.theme.Fg(styles.TokenNavSelected).
		Background(t.theme.Color(styles.TokenNavSelectedBg)).
		Bold(true).
		Padding(0, 1)
	if focused {
		activeStyle = activeStyle.Underline(true)
	}
	sep := t.theme.Fg(styles.TokenBorderDefault).Render("│")

	showGroups := len(t.categories) > 1
	var parts []string
	used := 0
	leafIndex := 0

	add := func(s string) bool {
		w := lipgloss.Width(s)
		if width > 0 && used+w > width {
			return false
		}
		parts = append(parts, s)
		used += w
		return true
	}

outer:
	for ci, cat := range t.categories {
		if showGroups {
			prefix := groupStyle.Render(cat.Label + ":")
			if ci > 0 {
				prefix = " " + prefix
			}
			if !add(prefix) {
				break
			}
		}
		for li, leaf := range cat.Leaves {
			style := tabStyle
			if leafIndex == t.current {
				style = activeStyle
			}
			tab := style.Render(leaf.Label)
			if li > 0 {
				tab = sep + tab
			}
			if width > 0 && used+lipgloss.Width(tab)+1 > width && leafIndex < len(t.leaves)-1 {
				add("…")
				break outer
			}
			if !add(zone.Mark(t.zoneID(leaf.Key), tab)) {
				break outer
			}
			leafIndex++
		}
	}

	return strings.Join(parts, "")
}
