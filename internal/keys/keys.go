// Package keys contains keybinding definitions.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ShellKeyMap drives a sidebar navigation shell.
type ShellKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Focus  key.Binding
	Back   key.Binding
	Jump   key.Binding
}

// TabsKeyMap drives a nested sub-tab shell.
type TabsKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Jump key.Binding
}

// ContentKeyMap scrolls panel content.
type ContentKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// AppKeyMap holds global bindings.
type AppKeyMap struct {
	Help   key.Binding
	Reload key.Binding
	Logs   key.Binding // only active with --debug
	Quit   key.Binding
}

// Active bindings. ApplyConfig may rebind some of them at startup.
var (
	Shell   = defaultShell()
	Tabs    = defaultTabs()
	Content = defaultContent()
	App     = defaultApp()
)

func defaultShell() ShellKeyMap {
	return ShellKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to navigation"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to entry"),
		),
	}
}

func defaultTabs() TabsKeyMap {
	return TabsKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left", "["),
			key.WithHelp("h/←", "previous tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right", "]"),
			key.WithHelp("l/→", "next tab"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to tab"),
		),
	}
}

func defaultContent() ContentKeyMap {
	return ContentKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

func defaultApp() AppKeyMap {
	return AppKeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload telemetry"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JumpIndex returns the zero-based index for a digit key press ("1" → 0).
func JumpIndex(msg string) (int, bool) {
	if len(msg) != 1 || msg[0] < '1' || msg[0] > '9' {
		return 0, false
	}
	return int(msg[0] - '1'), true
}

// ApplyConfig rebinds the focus and reload keys. Empty strings keep defaults.
func ApplyConfig(focus, reload string) {
	if focus = normalize(focus); focus != "" {
		Shell.Focus = key.NewBinding(key.WithKeys(focus), key.WithHelp(focus, "switch focus"))
	}
	if reload = normalize(reload); reload != "" {
		App.Reload = key.NewBinding(key.WithKeys(reload), key.WithHelp(reload, "reload telemetry"))
	}
}

// ResetForTesting restores every binding to its default.
func ResetForTesting() {
	Shell = defaultShell()
	Tabs = defaultTabs()
	Content = defaultContent()
	App = defaultApp()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// HelpMap adapts the bindings to bubbles/help.
type HelpMap struct{}

// ShortHelp returns keybindings for the short help view.
func (HelpMap) ShortHelp() []key.Binding {
	return []key.Binding{Shell.Focus, Tabs.Next, App.Help, App.Quit}
}

// FullHelp returns keybindings for the full help view.
func (HelpMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Shell.Up, Shell.Down, Shell.Select, Shell.Jump},
		{Shell.Focus, Shell.Back, Tabs.Prev, Tabs.Next},
		{Content.Up, Content.Down, Content.PageUp, Content.PageDown, Content.Top, Content.Bottom},
		{App.Reload, App.Help, App.Quit},
	}
}
