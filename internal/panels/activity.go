package panels

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/shell"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Activity is a header of summary blocks above a tab shell. The tabs are a
// nested shell.Shell, so tab switching follows the same rules as the
// sidebar.
type Activity struct {
	panel.Base

	header []block
	tabs   *shell.Shell
	theme  styles.Theme
	md     *markdown.Cache
	snap   telemetry.Snapshot

	headerView string
}

var _ panel.Panel = (*Activity)(nil)

func newActivity(opts Options, tabs *shell.Shell, header ...block) *Activity {
	return &Activity{
		header: header,
		tabs:   tabs,
		theme:  opts.Theme,
		md:     opts.Markdown,
		snap:   opts.Snapshot,
	}
}

// Tabs returns the nested tab shell.
func (a *Activity) Tabs() *shell.Shell { return a.tabs }

// Validate reports configuration errors in the nested shell.
func (a *Activity) Validate() error {
	return a.tabs.Validate()
}

func (a *Activity) Mount() {
	if !a.MarkMounted() {
		return
	}
	a.tabs.Mount()
	a.layout()
}

func (a *Activity) SetSize(width, height int) {
	a.Base.SetSize(width, height)
	a.layout()
}

// layout renders the header at the current width and hands the rest to
// the tab shell.
func (a *Activity) layout() {
	if len(a.header) == 0 {
		a.headerView = ""
	} else {
		a.headerView = renderBlocks(renderCtx{snap: a.snap, width: max(a.Width, 1), theme: a.theme, md: a.md}, a.header)
	}
	a.tabs.SetSize(a.Width, max(a.Height-a.headerHeight(), 3))
}

func (a *Activity) headerHeight() int {
	if a.headerView == "" {
		return 0
	}
	return lipgloss.Height(a.headerView) + 1
}

func (a *Activity) Update(msg tea.Msg) tea.Cmd {
	if snap, ok := msg.(telemetry.SnapshotMsg); ok {
		a.snap = snap.Snapshot
		if a.Mounted() {
			a.layout()
		}
	}
	if !a.Mounted() {
		return nil
	}
	return a.tabs.Update(msg)
}

func (a *Activity) View() string {
	if !a.Mounted() {
		return ""
	}
	body := a.tabs.View()
	if a.headerView == "" {
		return body
	}
	return a.headerView + "\n\n" + body
}
