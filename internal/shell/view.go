package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/ui/panes"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// contentSize is the area handed to panels.
func (s *Shell) contentSize() (int, int) {
	w, h := s.Width, s.Height
	if s.layout == LayoutTabs {
		// tab strip + rule
		return max(w, 1), max(h-2, 1)
	}
	// content pane border on every side
	return max(w-s.sidebarWidth-2, 1), max(h-2, 1)
}

// View renders the navigation and the visible panel only.
func (s *Shell) View() string {
	p := s.visiblePanel()
	if p == nil {
		return ""
	}
	if s.layout == LayoutTabs {
		return s.viewTabs(p.View())
	}
	return s.viewSidebar(p.View())
}

func (s *Shell) viewTabs(content string) string {
	rule := s.theme.Fg(styles.TokenBorderDefault).Render(strings.Repeat("─", max(s.Width, 1)))
	return s.tree.ViewTabs(s.Width, false) + "\n" + rule + "\n" + content
}

func (s *Shell) viewSidebar(content string) string {
	innerW := max(s.sidebarWidth-2, 1)
	innerH := max(s.Height-2, 1)

	var footer string
	if s.footer != nil {
		footer = s.footer(innerW)
	}
	navHeight := innerH
	if footer != "" {
		navHeight = max(innerH-lipgloss.Height(footer)-1, 1)
	}

	navView := s.tree.ViewSidebar(innerW, navHeight, s.navFocused)
	if footer != "" {
		pad := navHeight - lipgloss.Height(navView)
		navView += strings.Repeat("\n", max(pad, 0)+1) + footer
	}

	sidebar := panes.BorderedPane(panes.BorderConfig{
		Content: navView,
		Width:   s.sidebarWidth,
		Height:  s.Height,
		TopLeft: s.title,
		Focused: s.navFocused,
		Theme:   s.theme,
	})

	var label, category string
	if leaf, ok := s.tree.LeafByKey(s.current); ok {
		label = leaf.Label
	}
	category, _ = s.tree.CategoryOf(s.current)

	main := panes.BorderedPane(panes.BorderConfig{
		Content:  content,
		Width:    max(s.Width-s.sidebarWidth, 3),
		Height:   s.Height,
		TopLeft:  label,
		TopRight: category,
		Focused:  !s.navFocused,
		Theme:    s.theme,
	})

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}
