package panels

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/flightdeck/internal/keys"
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/panes"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Page is a scrolling stack of blocks. Bordered pages draw their own frame
// with a scroll indicator; unbordered pages rely on the enclosing shell's.
type Page struct {
	panel.Base

	title    string
	bordered bool
	blocks   []block
	theme    styles.Theme
	md       *markdown.Cache

	snap     telemetry.Snapshot
	viewport viewport.Model
	renders  int
}

var _ panel.Panel = (*Page)(nil)

func newPage(title string, bordered bool, opts Options, blocks ...block) *Page {
	return &Page{
		title:    title,
		bordered: bordered,
		blocks:   blocks,
		theme:    opts.Theme,
		md:       opts.Markdown,
		snap:     opts.Snapshot,
	}
}

func (p *Page) Mount() {
	if !p.MarkMounted() {
		return
	}
	p.viewport = viewport.New(max(p.Width, 1), max(p.Height, 1))
}

// Title is the heading shown on the page frame.
func (p *Page) Title() string { return p.title }

// Snapshot returns the values the page last rendered from.
func (p *Page) Snapshot() telemetry.Snapshot { return p.snap }

// YOffset exposes the scroll position.
func (p *Page) YOffset() int { return p.viewport.YOffset }

// Renders counts content builds.
func (p *Page) Renders() int { return p.renders }

func (p *Page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case telemetry.SnapshotMsg:
		p.snap = msg.Snapshot
	case tea.KeyMsg:
		p.scroll(msg)
	case tea.MouseMsg:
		if !p.Visible() {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.viewport.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			p.viewport.ScrollDown(3)
		}
	}
	return nil
}

func (p *Page) scroll(msg tea.KeyMsg) {
	vp := &p.viewport
	switch {
	case key.Matches(msg, keys.Content.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, keys.Content.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, keys.Content.PageUp):
		vp.ScrollUp(max(vp.Height, 1))
	case key.Matches(msg, keys.Content.PageDown):
		vp.ScrollDown(max(vp.Height, 1))
	case key.Matches(msg, keys.Content.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Content.Bottom):
		vp.GotoBottom()
	}
}

func (p *Page) content(width int) string {
	p.renders++
	return renderBlocks(renderCtx{snap: p.snap, width: width, theme: p.theme, md: p.md}, p.blocks)
}

// View renders the page. The viewport is refreshed here so scroll keys
// between frames act on the last rendered content.
func (p *Page) View() string {
	if !p.Mounted() {
		return ""
	}
	if p.bordered {
		return panes.ScrollablePane(p.Width, p.Height, panes.ScrollableConfig{
			Viewport:  &p.viewport,
			LeftTitle: p.title,
			Theme:     p.theme,
		}, p.content)
	}

	offset := p.viewport.YOffset
	p.viewport.Width = max(p.Width, 1)
	p.viewport.Height = max(p.Height, 1)
	p.viewport.SetContent(p.content(p.viewport.Width))
	p.viewport.SetYOffset(offset)
	return p.viewport.View()
}
