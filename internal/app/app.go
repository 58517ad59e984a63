// Package app contains the root application model: a title bar, the main
// navigation shell, the help line and the debug log pane, plus the wiring
// that turns snapshot and log events into messages.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/flightdeck/internal/config"
	"github.com/zjrosen/flightdeck/internal/keys"
	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/panels"
	"github.com/zjrosen/flightdeck/internal/pubsub"
	"github.com/zjrosen/flightdeck/internal/shell"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/tracing"
	"github.com/zjrosen/flightdeck/internal/ui/logpane"
	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
	"github.com/zjrosen/flightdeck/internal/ui/toaster"
	"github.com/zjrosen/flightdeck/internal/ui/widgets"
)

// MainTreeID scopes the sidebar's selection messages and mouse zones.
const MainTreeID = "main"

const (
	appTitle    = "ELITE ANALYTICS"
	appSubtitle = "Advanced Data Platform"
)

type feedState int

const (
	feedWaiting feedState = iota
	feedLoaded
	feedFailed
)

// Options configures the root model.
type Options struct {
	Config config.Config
	// ConfigPath is where remember_last writes the start key.
	ConfigPath string
	// Feed supplies snapshots. Nil means placeholders only.
	Feed   *telemetry.Feed
	Tracer trace.Tracer
	Debug  bool
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	theme      styles.Theme
	debug      bool

	shell *shell.Shell
	feed  *telemetry.Feed

	snapshot telemetry.Snapshot
	state    feedState

	ctx          context.Context
	cancel       context.CancelFunc
	feedListener *pubsub.ContinuousListener[telemetry.Snapshot]
	logListener  *log.LogListener

	logs     logpane.Model
	toast    toaster.Model
	help     help.Model
	showHelp bool

	width  int
	height int
}

var _ tea.Model = (*Model)(nil)

// New builds the panel catalog and the navigation shell and initializes the
// shell. Any configuration error (unknown theme, bad navigation, a leaf
// without a panel) is returned before a program starts.
func New(opts Options) (*Model, error) {
	cfg := opts.Config

	theme, err := styles.NewTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	})
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	keys.ApplyConfig(cfg.UI.Keys.Focus, cfg.UI.Keys.Reload)

	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}
	feed := opts.Feed
	if feed == nil {
		feed = telemetry.NewFeed(telemetry.FeedConfig{Tracer: tracer})
	}

	registry, err := panels.Build(panels.Options{
		Theme:    theme,
		Markdown: markdown.NewCache(cfg.UI.MarkdownStyle),
		Tracer:   tracer,
		Snapshot: feed.Current(),
	})
	if err != nil {
		return nil, err
	}

	categories := cfg.Categories()
	if categories == nil {
		categories = panels.DefaultNavigation()
	}
	tree, err := nav.New(MainTreeID, categories...)
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		theme:      theme,
		debug:      opts.Debug,
		feed:       feed,
		snapshot:   feed.Current(),
		logs:       logpane.New(theme),
		toast:      toaster.New(theme),
		help:       help.New(),
	}

	var footer func(int) string
	if cfg.UI.ShowFooter {
		footer = m.footer
	}
	m.shell = shell.New(shell.Config{
		ID:           MainTreeID,
		Tree:         tree,
		Registry:     registry,
		Layout:       shell.LayoutSidebar,
		Theme:        theme,
		Tracer:       tracer,
		Title:        "NAVIGATION",
		SidebarWidth: cfg.UI.SidebarWidth,
		Start:        nav.Key(cfg.Start),
		Footer:       footer,
	})
	if err := m.shell.Initialize(); err != nil {
		return nil, err
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.feedListener = pubsub.NewContinuousListener[telemetry.Snapshot](m.ctx, feed.Broker())
	if m.debug {
		m.logListener = log.NewListener(m.ctx)
	}
	return m, nil
}

// Init starts the snapshot feed and the event listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.feedListener.Listen(), m.startFeed()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) startFeed() tea.Cmd {
	feed, ctx := m.feed, m.ctx
	return func() tea.Msg {
		if err := feed.Start(ctx); err != nil {
			log.ErrorErr(log.CatFeed, "Snapshot feed started with errors", err, "path", feed.Path())
		}
		return nil
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case pubsub.Event[telemetry.Snapshot]:
		return m, tea.Batch(m.handleFeedEvent(msg), m.feedListener.Listen())

	case log.LogEvent:
		m.logs.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case telemetry.SnapshotMsg:
		m.snapshot = msg.Snapshot
		return m, m.shell.Update(msg)

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.shell.Update(msg)
}

func (m *Model) handleFeedEvent(ev pubsub.Event[telemetry.Snapshot]) tea.Cmd {
	var toast tea.Cmd
	switch ev.Type {
	case pubsub.LoadedEvent:
		m.state = feedLoaded
	case pubsub.ReloadedEvent:
		m.state = feedLoaded
		m.toast, toast = m.toast.Show("Snapshot reloaded", toaster.StyleSuccess, toaster.DefaultDuration)
	case pubsub.FailedEvent:
		m.state = feedFailed
		msg := "Snapshot could not be read"
		if err := m.feed.LastError(); err != nil {
			msg = err.Error()
		}
		m.toast, toast = m.toast.Show(msg, toaster.StyleError, toaster.DefaultDuration)
		return toast
	default:
		return nil
	}
	m.snapshot = ev.Payload
	return tea.Batch(m.shell.Update(telemetry.SnapshotMsg{Snapshot: ev.Payload}), toast)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.logs.Visible() {
		if key.Matches(msg, keys.App.Logs) {
			m.logs.Toggle()
			return nil
		}
		m.logs, _ = m.logs.Update(msg)
		return nil
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m.quit()
	case m.debug && key.Matches(msg, keys.App.Logs):
		m.logs.Toggle()
		return nil
	case key.Matches(msg, keys.App.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		return nil
	case key.Matches(msg, keys.App.Reload):
		return m.reload()
	}
	return m.shell.Update(msg)
}

// reload re-reads the snapshot; the result arrives as a feed event.
func (m *Model) reload() tea.Cmd {
	feed, ctx := m.feed, m.ctx
	return func() tea.Msg {
		_ = feed.Reload(ctx)
		return nil
	}
}

func (m *Model) quit() tea.Cmd {
	if m.cfg.UI.RememberLast && m.configPath != "" {
		if err := config.SaveStart(m.configPath, string(m.shell.Current())); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to remember last panel", err, "path", m.configPath)
		}
	}
	return tea.Quit
}

// layout hands the space left after the header and help line to the shell.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = m.width
	h := m.height - m.headerHeight() - lipgloss.Height(m.helpView())
	m.shell.SetSize(m.width, max(h, 3))
	m.logs.SetSize(m.width, max(h, 3))
}

func (m *Model) headerHeight() int {
	if m.cfg.UI.ShowHeader {
		return 1
	}
	return 0
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var sections []string
	if m.cfg.UI.ShowHeader {
		sections = append(sections, m.header())
	}
	if m.logs.Visible() {
		sections = append(sections, m.logs.View())
	} else {
		sections = append(sections, m.shell.View())
	}
	sections = append(sections, m.helpView())

	view := m.toast.Overlay(lipgloss.JoinVertical(lipgloss.Left, sections...), m.width, m.height)
	return zone.Scan(view)
}

func (m *Model) helpView() string {
	return m.help.View(keys.HelpMap{})
}

func (m *Model) header() string {
	left := m.theme.Title().Render(appTitle) + "  " + m.theme.Muted().Render(appSubtitle)
	text, level := m.gameStatus()
	right := widgets.Dot(text, level, m.theme)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.TruncateString(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// gameStatus summarizes whether the collector is delivering data.
func (m *Model) gameStatus() (string, string) {
	switch m.state {
	case feedFailed:
		return "Snapshot Error", widgets.LevelError
	case feedLoaded:
		if _, ok := telemetry.LookupStatus(m.snapshot, telemetry.StatusGame); ok {
			return "Game Connected", widgets.LevelOK
		}
		return "Game Offline", widgets.LevelWarn
	}
	return "Waiting for Data", widgets.LevelWarn
}

// footer is drawn at the bottom of the sidebar.
func (m *Model) footer(width int) string {
	text, level := m.gameStatus()
	lines := []string{
		styles.TruncateString(widgets.Dot(text, level, m.theme), width),
	}

	db := styles.Placeholder
	if rec, ok := telemetry.LookupStatus(m.snapshot, telemetry.StatusDatabase); ok {
		db = styles.ValueOr(rec.Value)
	}
	lines = append(lines, styles.TruncateString(m.theme.Muted().Render("Data: "+db), width))
	return strings.Join(lines, "\n")
}

// Shell returns the main navigation shell.
func (m *Model) Shell() *shell.Shell { return m.shell }

// Snapshot returns the snapshot the panels last received.
func (m *Model) Snapshot() telemetry.Snapshot { return m.snapshot }

// LogsVisible reports whether the debug log pane is open.
func (m *Model) LogsVisible() bool { return m.logs.Visible() }

// Toast returns the notification overlay.
func (m *Model) Toast() toaster.Model { return m.toast }

// HelpExpanded reports whether the full help is shown.
func (m *Model) HelpExpanded() bool { return m.showHelp }

// Close stops the listeners and the feed.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return m.feed.Close()
}
