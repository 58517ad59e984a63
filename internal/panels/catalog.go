// Package panels is the dashboard's panel catalog: the content pages behind
// every navigation key, built from reusable blocks over a telemetry
// snapshot. Activity panels carry their own sub-tabs as a nested shell.
package panels

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/shell"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/tracing"
	"github.com/zjrosen/flightdeck/internal/ui/markdown"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// Navigation keys of the built-in panels.
const (
	KeyRealTime     nav.Key = "realtime"
	KeyAnalysis     nav.Key = "analysis"
	KeyPrediction   nav.Key = "prediction"
	KeyMining       nav.Key = "mining"
	KeyHauling      nav.Key = "hauling"
	KeyCombat       nav.Key = "combat"
	KeyColonization nav.Key = "colonization"
	KeyCommander    nav.Key = "commander"
)

// Options carries what every panel is built with.
type Options struct {
	Theme    styles.Theme
	Markdown *markdown.Cache
	Tracer   trace.Tracer
	// Snapshot seeds panels before the first SnapshotMsg arrives.
	Snapshot telemetry.Snapshot
}

func (o Options) withDefaults() Options {
	if o.Theme.Name() == "" {
		o.Theme = styles.DefaultTheme()
	}
	if o.Tracer == nil {
		o.Tracer = tracing.Noop()
	}
	if o.Snapshot.Version == 0 {
		o.Snapshot = telemetry.EmptySnapshot()
	}
	return o
}

// DefaultNavigation is the sidebar layout used when the config names none.
func DefaultNavigation() []nav.Category {
	return []nav.Category{
		{Label: "GLOBAL", Leaves: []nav.Leaf{
			{Label: "Real-Time", Key: KeyRealTime},
			{Label: "Analysis", Key: KeyAnalysis},
			{Label: "Prediction", Key: KeyPrediction},
		}},
		{Label: "MINING", Leaves: []nav.Leaf{{Label: "Asteroid Mining", Key: KeyMining}}},
		{Label: "HAULING", Leaves: []nav.Leaf{{Label: "Trading & Cargo", Key: KeyHauling}}},
		{Label: "COMBAT", Leaves: []nav.Leaf{{Label: "All Combat", Key: KeyCombat}}},
		{Label: "COLONIZATION", Leaves: []nav.Leaf{{Label: "System Colonization", Key: KeyColonization}}},
		{Label: "INFORMATION", Leaves: []nav.Leaf{{Label: "Commander/Ship/System", Key: KeyCommander}}},
	}
}

type builder func(Options) (panel.Panel, error)

var catalog = []struct {
	key   nav.Key
	build builder
}{
	{KeyRealTime, newRealTime},
	{KeyAnalysis, newAnalysis},
	{KeyPrediction, newPrediction},
	{KeyMining, newMining},
	{KeyHauling, newHauling},
	{KeyCombat, newCombat},
	{KeyColonization, newColonization},
	{KeyCommander, newCommander},
}

// Keys lists every key the catalog can build, in sidebar order.
func Keys() []nav.Key {
	out := make([]nav.Key, len(catalog))
	for i, c := range catalog {
		out[i] = c.key
	}
	return out
}

// Build constructs every catalog panel and registers it under its key.
// Panels are not mounted; the owning shell does that.
func Build(opts Options) (*panel.Registry, error) {
	opts = opts.withDefaults()
	reg := panel.NewRegistry()
	for _, c := range catalog {
		p, err := c.build(opts)
		if err != nil {
			return nil, fmt.Errorf("building panel %q: %w", c.key, err)
		}
		if err := reg.Register(c.key, p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

type tab struct {
	key    nav.Key
	label  string
	blocks []block
}

// tabShell builds a nested tab-layout shell whose leaves are bordered pages.
func tabShell(id string, opts Options, tabs ...tab) (*shell.Shell, error) {
	leaves := make([]nav.Leaf, len(tabs))
	reg := panel.NewRegistry()
	for i, t := range tabs {
		leaves[i] = nav.Leaf{Label: t.label, Key: t.key}
		if err := reg.Register(t.key, newPage(t.label, true, opts, t.blocks...)); err != nil {
			return nil, err
		}
	}
	tree, err := nav.New(id, nav.Category{Label: id, Leaves: leaves})
	if err != nil {
		return nil, err
	}
	return shell.New(shell.Config{
		ID:       id,
		Tree:     tree,
		Registry: reg,
		Layout:   shell.LayoutTabs,
		Theme:    opts.Theme,
		Tracer:   opts.Tracer,
	}), nil
}

func subKey(parent nav.Key, name string) nav.Key {
	return parent + "." + nav.Key(name)
}
