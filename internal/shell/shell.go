// Package shell composes a navigation tree and a panel registry into a
// single content slot. Exactly one registered panel is visible at a time;
// selecting a leaf hides the previous panel and shows the new one.
//
// A Shell is itself a panel.Panel, so sub-tabs are a nested Shell in the
// tabs layout registered under a parent shell's key.
package shell

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/tracing"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// ErrAlreadyInitialized is returned by a second Initialize call.
var ErrAlreadyInitialized = errors.New("shell already initialized")

// Layout selects how the navigation tree is drawn.
type Layout int

const (
	// LayoutSidebar draws the tree as a vertical list left of the content.
	LayoutSidebar Layout = iota
	// LayoutTabs draws the tree as a tab strip above the content.
	LayoutTabs
)

const defaultSidebarWidth = 26

// Config configures a Shell.
type Config struct {
	ID       string
	Tree     *nav.Tree
	Registry *panel.Registry
	Layout   Layout
	Theme    styles.Theme
	Tracer   trace.Tracer

	// Title is shown on the sidebar border.
	Title        string
	SidebarWidth int

	// Start overrides the tree's default key for the initial selection.
	Start nav.Key

	// Footer renders the sidebar status footer for the given inner width.
	Footer func(width int) string
}

// Shell routes navigation selections to panels.
type Shell struct {
	panel.Base

	id       string
	tree     *nav.Tree
	registry *panel.Registry
	layout   Layout
	theme    styles.Theme
	tracer   trace.Tracer
	title    string
	start    nav.Key
	footer   func(int) string

	sidebarWidth int
	navFocused   bool

	initialized bool
	current     nav.Key
	switches    int
}

var _ panel.Panel = (*Shell)(nil)

// New creates a shell. Nothing is mounted or shown until Initialize.
func New(cfg Config) *Shell {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}
	width := cfg.SidebarWidth
	if width <= 0 {
		width = defaultSidebarWidth
	}
	theme := cfg.Theme
	if theme.Name() == "" {
		theme = styles.DefaultTheme()
	}
	id := cfg.ID
	if id == "" && cfg.Tree != nil {
		id = cfg.Tree.ID()
	}
	if cfg.Tree != nil {
		cfg.Tree.SetTheme(theme)
	}

	return &Shell{
		id:           id,
		tree:         cfg.Tree,
		registry:     cfg.Registry,
		layout:       cfg.Layout,
		theme:        theme,
		tracer:       tracer,
		title:        cfg.Title,
		start:        cfg.Start,
		footer:       cfg.Footer,
		sidebarWidth: width,
		navFocused:   cfg.Layout == LayoutSidebar,
	}
}

// ID returns the shell id.
func (s *Shell) ID() string { return s.id }

// Tree returns the navigation tree.
func (s *Shell) Tree() *nav.Tree { return s.tree }

// Registry returns the panel registry the shell resolves keys against.
func (s *Shell) Registry() *panel.Registry { return s.registry }

// Current returns the selected key; empty before Initialize.
func (s *Shell) Current() nav.Key { return s.current }

// Switches counts visible-panel changes after the initial selection.
func (s *Shell) Switches() int { return s.switches }

// Initialized reports whether Initialize succeeded.
func (s *Shell) Initialized() bool { return s.initialized }

// NavFocused reports whether keyboard input goes to the navigation tree.
func (s *Shell) NavFocused() bool { return s.navFocused }

// Validate checks the static configuration: a tree and registry are present,
// every leaf has a panel, the start key is a leaf, and every nested panel
// that can validate itself does.
func (s *Shell) Validate() error {
	if s.tree == nil {
		return &nav.ConfigError{Label: s.id, Reason: "shell has no navigation tree"}
	}
	if s.registry == nil {
		return &nav.ConfigError{Label: s.id, Reason: "shell has no panel registry"}
	}
	if err := s.registry.Validate(s.tree.Keys()); err != nil {
		return fmt.Errorf("shell %q: %w", s.id, err)
	}
	if s.start != "" && !s.tree.Contains(s.start) {
		reason := "start key is not a navigation leaf"
		if sugg, ok := s.registry.Suggest(s.start); ok {
			reason += fmt.Sprintf(" (did you mean %q?)", sugg)
		}
		return &nav.ConfigError{Key: s.start, Label: s.id, Reason: reason}
	}

	var err error
	s.registry.Each(func(key nav.Key, p panel.Panel) {
		if err != nil {
			return
		}
		if v, ok := p.(interface{ Validate() error }); ok {
			if verr := v.Validate(); verr != nil {
				err = fmt.Errorf("panel %q: %w", key, verr)
			}
		}
	})
	return err
}

// Initialize validates the configuration, mounts every registered panel
// once, hides them all and shows the start panel (the first leaf of the
// first category unless Config.Start is set).
func (s *Shell) Initialize() (err error) {
	if s.initialized {
		return ErrAlreadyInitialized
	}

	_, span := s.tracer.Start(context.Background(), tracing.SpanShellInitialize,
		trace.WithAttributes(attribute.String(tracing.AttrShellID, s.id)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.Validate(); err != nil {
		return err
	}

	cw, ch := s.contentSize()
	s.registry.Each(func(key nav.Key, p panel.Panel) {
		p.Mount()
		p.SetSize(cw, ch)
		p.SetVisible(false)
		span.AddEvent(tracing.EventPanelMounted, trace.WithAttributes(attribute.String(tracing.AttrNavKey, string(key))))
	})

	start := s.start
	if start == "" {
		start = s.tree.DefaultKey()
	}
	p, err := s.registry.Resolve(start)
	if err != nil {
		return err
	}
	p.SetVisible(true)
	s.current = start
	s.tree.MarkCurrent(start)
	s.initialized = true

	span.SetAttributes(
		attribute.String(tracing.AttrNavKey, string(start)),
		attribute.Int(tracing.AttrPanelCount, s.registry.Len()),
	)
	log.Info(log.CatShell, "shell initialized", "shell", s.id, "panels", s.registry.Len(), "current", string(start))
	return nil
}

// OnSelection switches the visible panel to key. Selecting the current key
// is a no-op. A key without a panel is logged and ignored, leaving the
// current panel visible.
func (s *Shell) OnSelection(key nav.Key) {
	if !s.initialized || key == s.current {
		return
	}

	_, span := s.tracer.Start(context.Background(), tracing.SpanShellSelect,
		trace.WithAttributes(
			attribute.String(tracing.AttrShellID, s.id),
			attribute.String(tracing.AttrNavKey, string(key)),
			attribute.String(tracing.AttrNavPrevKey, string(s.current)),
		))
	defer span.End()

	next, err := s.registry.Resolve(key)
	if err != nil {
		log.ErrorErr(log.CatShell, "selection ignored", err, "shell", s.id, "key", string(key))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tree.MarkCurrent(s.current)
		return
	}
	prev, err := s.registry.Resolve(s.current)
	if err != nil {
		// Registrations are permanent, so this only fires on a broken registry.
		log.ErrorErr(log.CatShell, "current panel vanished", err, "shell", s.id, "key", string(s.current))
		return
	}

	prev.SetVisible(false)
	next.SetVisible(true)
	s.current = key
	s.switches++
	s.tree.MarkCurrent(key)

	span.AddEvent(tracing.EventPanelShown)
	span.SetAttributes(attribute.Int(tracing.AttrSwitchCount, s.switches))
	log.Debug(log.CatShell, "panel switched", "shell", s.id, "key", string(key))
}

// VisibleKey returns the key of the visible panel, or "" if none is.
func (s *Shell) VisibleKey() nav.Key {
	keys := s.VisibleKeys()
	if len(keys) != 1 {
		return ""
	}
	return keys[0]
}

// VisibleKeys lists every registered key whose panel reports visible.
func (s *Shell) VisibleKeys() []nav.Key {
	var keys []nav.Key
	if s.registry == nil {
		return nil
	}
	s.registry.Each(func(key nav.Key, p panel.Panel) {
		if p.Visible() {
			keys = append(keys, key)
		}
	})
	return keys
}

// Mount initializes the shell when it is used as a nested panel.
func (s *Shell) Mount() {
	if !s.MarkMounted() {
		return
	}
	if err := s.Initialize(); err != nil && !errors.Is(err, ErrAlreadyInitialized) {
		log.ErrorErr(log.CatShell, "nested shell failed to initialize", err, "shell", s.id)
	}
}

// SetSize resizes the shell and every registered panel.
func (s *Shell) SetSize(width, height int) {
	s.Base.SetSize(width, height)
	if s.registry == nil {
		return
	}
	cw, ch := s.contentSize()
	s.registry.Each(func(_ nav.Key, p panel.Panel) {
		p.SetSize(cw, ch)
	})
}

func (s *Shell) visiblePanel() panel.Panel {
	if !s.initialized {
		return nil
	}
	p, err := s.registry.Resolve(s.current)
	if err != nil {
		return nil
	}
	return p
}
