package shell

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/flightdeck/internal/keys"
	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/panel"
)

// Update routes a message. Selections for this shell's tree switch panels.
// Keyboard and mouse input reach only the visible panel, and only once the
// navigation layer has declined it. Every other message is delivered to all
// panels so hidden panels stay current with data and size changes.
func (s *Shell) Update(msg tea.Msg) tea.Cmd {
	if !s.initialized {
		return nil
	}

	switch msg := msg.(type) {
	case nav.SelectedMsg:
		if msg.Tree == s.tree.ID() {
			s.OnSelection(msg.Key)
			return nil
		}
		return s.broadcast(msg)

	case tea.KeyMsg:
		if s.layout == LayoutTabs {
			return s.handleTabsKey(msg)
		}
		return s.handleSidebarKey(msg)

	case tea.MouseMsg:
		if cmd := s.tree.HandleMouse(msg); cmd != nil {
			if s.layout == LayoutSidebar {
				s.navFocused = true
			}
			return s.apply(cmd)
		}
		return s.forward(msg)

	default:
		return s.broadcast(msg)
	}
}

func (s *Shell) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Shell.Focus):
		s.navFocused = !s.navFocused
		return nil
	case !s.navFocused && key.Matches(msg, keys.Shell.Back):
		s.navFocused = true
		return nil
	}

	if !s.navFocused {
		return s.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.Shell.Up):
		s.tree.MoveCursor(-1)
	case key.Matches(msg, keys.Shell.Down):
		s.tree.MoveCursor(1)
	case key.Matches(msg, keys.Shell.Select):
		return s.apply(s.tree.Confirm())
	case key.Matches(msg, keys.Shell.Jump):
		return s.jump(msg.String())
	}
	return nil
}

func (s *Shell) handleTabsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Tabs.Prev):
		return s.apply(s.tree.Cycle(-1))
	case key.Matches(msg, keys.Tabs.Next):
		return s.apply(s.tree.Cycle(1))
	case key.Matches(msg, keys.Tabs.Jump):
		return s.jump(msg.String())
	}
	return s.forward(msg)
}

func (s *Shell) jump(k string) tea.Cmd {
	i, ok := keys.JumpIndex(k)
	if !ok {
		return nil
	}
	leaf, ok := s.tree.LeafAt(i)
	if !ok {
		return nil
	}
	return s.apply(s.tree.SelectLeaf(leaf.Key))
}

// apply runs a selection command from this shell's own tree inline and
// switches panels before Update returns. Bubble Tea runs returned commands
// concurrently, so a round trip through the program could deliver two quick
// selections out of order.
func (s *Shell) apply(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	sel, ok := cmd().(nav.SelectedMsg)
	if !ok || sel.Tree != s.tree.ID() {
		return nil
	}
	s.OnSelection(sel.Key)
	return nil
}

// forward delivers input to the visible panel.
func (s *Shell) forward(msg tea.Msg) tea.Cmd {
	if p := s.visiblePanel(); p != nil {
		return p.Update(msg)
	}
	return nil
}

// broadcast delivers msg to every registered panel.
func (s *Shell) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	s.registry.Each(func(_ nav.Key, p panel.Panel) {
		if cmd := p.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	})
	return tea.Batch(cmds...)
}
