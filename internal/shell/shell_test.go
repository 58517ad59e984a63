package shell

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"pgregory.net/rapid"

	"github.com/zjrosen/flightdeck/internal/keys"
	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/tracing"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type dataMsg struct{ value string }

// fakePanel records what reaches it. presses is internal state that must
// survive being hidden and shown again.
type fakePanel struct {
	panel.Base
	name     string
	builds   int
	presses  int
	lastData string
}

func (p *fakePanel) Mount() {
	if p.MarkMounted() {
		p.builds++
	}
}

func (p *fakePanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		p.presses++
	case dataMsg:
		p.lastData = msg.value
	}
	return nil
}

func (p *fakePanel) View() string {
	return fmt.Sprintf("%s presses=%d", p.name, p.presses)
}

type fixture struct {
	shell  *Shell
	tree   *nav.Tree
	panels map[nav.Key]*fakePanel
}

func globalCategories() []nav.Category {
	return []nav.Category{
		{Label: "GLOBAL", Leaves: []nav.Leaf{
			{Label: "Real-time", Key: "realtime"},
			{Label: "Analysis", Key: "analysis"},
			{Label: "Prediction", Key: "prediction"},
		}},
		{Label: "MINING", Leaves: []nav.Leaf{
			{Label: "Mining", Key: "mining"},
		}},
	}
}

func newFixture(t *testing.T, mutate func(*Config)) fixture {
	t.Helper()
	tree, err := nav.New("main", globalCategories()...)
	require.NoError(t, err)

	reg := panel.NewRegistry()
	panels := map[nav.Key]*fakePanel{}
	for _, k := range tree.Keys() {
		p := &fakePanel{name: string(k)}
		panels[k] = p
		require.NoError(t, reg.Register(k, p))
	}

	cfg := Config{ID: "main", Tree: tree, Registry: reg, Title: "ELITE DANGEROUS"}
	if mutate != nil {
		mutate(&cfg)
	}
	return fixture{shell: New(cfg), tree: tree, panels: panels}
}

func (f fixture) send(msg tea.Msg) {
	cmd := f.shell.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		cmd = f.shell.Update(next)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialize_ShowsDefaultOnly(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	require.Equal(t, nav.Key("realtime"), f.shell.Current())
	require.Equal(t, []nav.Key{"realtime"}, f.shell.VisibleKeys())
	require.Equal(t, nav.Key("realtime"), f.shell.VisibleKey())
	require.Equal(t, nav.Key("realtime"), f.tree.Current())
	require.Zero(t, f.shell.Switches())
	for k, p := range f.panels {
		require.Equal(t, 1, p.Mounts(), "panel %s mounted once", k)
		require.Equal(t, 1, p.builds)
	}
}

func TestInitialize_Twice(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())
	require.ErrorIs(t, f.shell.Initialize(), ErrAlreadyInitialized)
	for _, p := range f.panels {
		require.Equal(t, 1, p.Mounts())
	}
}

func TestInitialize_UnregisteredLeaf(t *testing.T) {
	tree, err := nav.New("main", globalCategories()...)
	require.NoError(t, err)
	reg := panel.NewRegistry()
	for _, k := range []nav.Key{"realtime", "analysis", "prediction"} {
		require.NoError(t, reg.Register(k, &fakePanel{name: string(k)}))
	}
	require.NoError(t, reg.Register("minning", &fakePanel{}))

	s := New(Config{ID: "main", Tree: tree, Registry: reg})
	err = s.Initialize()
	require.ErrorIs(t, err, nav.ErrConfig)
	require.ErrorIs(t, err, panel.ErrPanelNotFound)
	require.Contains(t, err.Error(), `"mining" (did you mean "minning"?)`)
	require.False(t, s.Initialized())
	require.Empty(t, s.VisibleKeys())
}

func TestInitialize_StartKey(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.Start = "prediction" })
	require.NoError(t, f.shell.Initialize())
	require.Equal(t, []nav.Key{"prediction"}, f.shell.VisibleKeys())
}

func TestInitialize_BadStartKey(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.Start = "analysys" })
	err := f.shell.Initialize()
	require.ErrorIs(t, err, nav.ErrConfig)
	require.Contains(t, err.Error(), `did you mean "analysis"?`)
}

func TestInitialize_MissingCollaborators(t *testing.T) {
	require.ErrorIs(t, New(Config{ID: "x"}).Initialize(), nav.ErrConfig)
}

func TestOnSelection_SameKeyIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	f.shell.OnSelection("analysis")
	f.shell.OnSelection("analysis")

	require.Equal(t, 1, f.shell.Switches())
	require.Equal(t, []nav.Key{"analysis"}, f.shell.VisibleKeys())
}

func TestOnSelection_BeforeInitializeIgnored(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.OnSelection("analysis")
	require.Empty(t, f.shell.Current())
	require.Zero(t, f.shell.Switches())
}

func TestOnSelection_UnresolvableKeyLoggedAndIgnored(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	t.Cleanup(log.Close)

	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	f.shell.OnSelection("carrier")

	require.Equal(t, nav.Key("realtime"), f.shell.Current())
	require.Equal(t, []nav.Key{"realtime"}, f.shell.VisibleKeys())
	require.Equal(t, nav.Key("realtime"), f.tree.Current())
	require.Zero(t, f.shell.Switches())
	require.Contains(t, buf.String(), "[ERROR] [shell] selection ignored")
	require.Contains(t, buf.String(), "key=carrier")
}

func TestScenario_SwitchAndReturnKeepsState(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	// Give realtime some internal state.
	f.send(keyMsg("tab"))
	f.send(keyMsg("x"))
	f.send(keyMsg("x"))
	require.Equal(t, 2, f.panels["realtime"].presses)

	f.shell.OnSelection("mining")
	require.Equal(t, []nav.Key{"mining"}, f.shell.VisibleKeys())
	require.False(t, f.panels["realtime"].Visible())
	require.True(t, f.panels["realtime"].Mounted(), "hidden, not destroyed")

	f.shell.OnSelection("realtime")
	require.Equal(t, []nav.Key{"realtime"}, f.shell.VisibleKeys())
	require.Equal(t, 2, f.panels["realtime"].presses)
	require.Equal(t, 1, f.panels["realtime"].Mounts())
	require.Equal(t, 2, f.shell.Switches())
}

func TestUpdate_KeyboardSelection(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())
	require.True(t, f.shell.NavFocused())

	f.send(keyMsg("down"))
	require.Equal(t, nav.Key("realtime"), f.shell.Current(), "moving the cursor does not switch")

	f.send(keyMsg("enter"))
	require.Equal(t, nav.Key("analysis"), f.shell.Current())

	f.send(keyMsg("4"))
	require.Equal(t, nav.Key("mining"), f.shell.Current())

	f.send(keyMsg("9"))
	require.Equal(t, nav.Key("mining"), f.shell.Current())
	require.Equal(t, 2, f.shell.Switches())
}

func TestUpdate_SelectionsApplyBeforeUpdateReturns(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	// Neither returned command is run: the switch must already have happened.
	require.Nil(t, f.shell.Update(keyMsg("2")))
	require.Nil(t, f.shell.Update(keyMsg("4")))
	require.Equal(t, nav.Key("mining"), f.shell.Current())
	require.Equal(t, []nav.Key{"mining"}, f.shell.VisibleKeys())
	require.Equal(t, 2, f.shell.Switches())

	f.send(keyMsg("k"))
	require.Nil(t, f.shell.Update(keyMsg("enter")))
	require.Equal(t, nav.Key("prediction"), f.shell.Current())
}

func TestUpdate_LastJumpWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, err := nav.New("main", globalCategories()...)
		if err != nil {
			t.Fatal(err)
		}
		reg := panel.NewRegistry()
		for _, k := range tree.Keys() {
			_ = reg.Register(k, &fakePanel{name: string(k)})
		}
		s := New(Config{ID: "main", Tree: tree, Registry: reg})
		if err := s.Initialize(); err != nil {
			t.Fatal(err)
		}

		want := tree.DefaultKey()
		var pending []tea.Cmd
		for range rapid.IntRange(1, 30).Draw(t, "presses") {
			n := rapid.IntRange(1, 9).Draw(t, "jump")
			if cmd := s.Update(keyMsg(fmt.Sprint(n))); cmd != nil {
				pending = append(pending, cmd)
			}
			if leaf, ok := tree.LeafAt(n - 1); ok {
				want = leaf.Key
			}
		}
		// Whatever the shell handed back may arrive in any order.
		for i := len(pending) - 1; i >= 0; i-- {
			if msg := pending[i](); msg != nil {
				s.Update(msg)
			}
		}
		if s.Current() != want {
			t.Fatalf("current %s, want last selection %s", s.Current(), want)
		}
	})
}

func TestUpdate_InputOnlyReachesVisiblePanelWhenContentFocused(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	f.send(keyMsg("x"))
	require.Zero(t, f.panels["realtime"].presses, "nav focus swallows content keys")

	f.send(keyMsg("tab"))
	require.False(t, f.shell.NavFocused())
	f.send(keyMsg("x"))
	f.send(keyMsg("4"))
	require.Equal(t, 2, f.panels["realtime"].presses)
	require.Equal(t, nav.Key("realtime"), f.shell.Current(), "digits go to content when it has focus")
	for _, k := range []nav.Key{"analysis", "prediction", "mining"} {
		require.Zero(t, f.panels[k].presses)
	}

	f.send(keyMsg("esc"))
	require.True(t, f.shell.NavFocused())
}

func TestUpdate_BroadcastsDataToHiddenPanels(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	f.send(dataMsg{value: "snapshot-2"})
	for k, p := range f.panels {
		require.Equal(t, "snapshot-2", p.lastData, "panel %s", k)
	}
}

func TestUpdate_ForeignSelectionIsBroadcast(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Initialize())

	f.send(nav.SelectedMsg{Tree: "other", Key: "analysis"})
	require.Equal(t, nav.Key("realtime"), f.shell.Current())
}

func TestSetSize_ReachesEveryPanel(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.SidebarWidth = 20 })
	require.NoError(t, f.shell.Initialize())

	f.shell.SetSize(100, 30)
	for _, p := range f.panels {
		require.Equal(t, 78, p.Width)
		require.Equal(t, 28, p.Height)
	}
}

func TestView_Sidebar(t *testing.T) {
	f := newFixture(t, func(c *Config) {
		c.Footer = func(int) string { return "● CONNECTED" }
	})
	require.NoError(t, f.shell.Initialize())
	f.shell.SetSize(90, 20)
	f.shell.OnSelection("analysis")

	out := ansi.Strip(zone.Scan(f.shell.View()))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	require.Contains(t, lines[0], "ELITE DANGEROUS")
	require.Contains(t, lines[0], "Analysis")
	require.Contains(t, lines[0], "GLOBAL")
	require.Contains(t, out, "analysis presses=0")
	require.NotContains(t, out, "realtime presses")
	require.Contains(t, out, "● CONNECTED")
	for _, line := range lines {
		require.Equal(t, 90, lipgloss.Width(line))
	}
}

func TestView_BeforeInitialize(t *testing.T) {
	f := newFixture(t, nil)
	require.Empty(t, f.shell.View())
}

func TestTracing_RecordsInitializeAndSelect(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	f := newFixture(t, func(c *Config) { c.Tracer = tp.Tracer("test") })
	require.NoError(t, f.shell.Initialize())
	f.shell.OnSelection("mining")
	f.shell.OnSelection("ghost")

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	require.Equal(t, []string{tracing.SpanShellInitialize, tracing.SpanShellSelect, tracing.SpanShellSelect}, names)
	require.Len(t, rec.Ended()[0].Events(), 4, "one mount event per panel")
	require.Equal(t, "Error", rec.Ended()[2].Status().Code.String())
}

func newNestedShell(t *testing.T, id string, leaves ...nav.Leaf) (*Shell, map[nav.Key]*fakePanel) {
	t.Helper()
	tree, err := nav.New(id, nav.Category{Label: strings.ToUpper(id), Leaves: leaves})
	require.NoError(t, err)
	reg := panel.NewRegistry()
	panels := map[nav.Key]*fakePanel{}
	for _, l := range leaves {
		p := &fakePanel{name: string(l.Key)}
		panels[l.Key] = p
		require.NoError(t, reg.Register(l.Key, p))
	}
	return New(Config{ID: id, Tree: tree, Registry: reg, Layout: LayoutTabs}), panels
}

func TestNestedShell_SubTabs(t *testing.T) {
	keys.ResetForTesting()

	mining, sub := newNestedShell(t, "mining",
		nav.Leaf{Label: "Real-time", Key: "mining.realtime"},
		nav.Leaf{Label: "Analysis", Key: "mining.analysis"},
		nav.Leaf{Label: "Prediction", Key: "mining.prediction"},
	)

	tree, err := nav.New("main", globalCategories()...)
	require.NoError(t, err)
	reg := panel.NewRegistry()
	for _, k := range []nav.Key{"realtime", "analysis", "prediction"} {
		require.NoError(t, reg.Register(k, &fakePanel{name: string(k)}))
	}
	require.NoError(t, reg.Register("mining", mining))

	outer := New(Config{ID: "main", Tree: tree, Registry: reg})
	require.NoError(t, outer.Initialize())
	f := fixture{shell: outer}

	require.True(t, mining.Initialized(), "mounting the nested shell initializes it")
	require.Equal(t, []nav.Key{"mining.realtime"}, mining.VisibleKeys())

	f.send(keyMsg("4"))
	require.Equal(t, nav.Key("mining"), outer.Current())

	f.send(keyMsg("tab"))
	f.send(keyMsg("right"))
	require.Equal(t, nav.Key("mining.analysis"), mining.Current())
	require.Equal(t, nav.Key("mining"), outer.Current(), "nested selections do not leak outward")

	f.send(keyMsg("x"))
	require.Equal(t, 1, sub["mining.analysis"].presses)

	f.send(keyMsg("esc"))
	f.send(keyMsg("1"))
	require.Equal(t, nav.Key("realtime"), outer.Current())
	require.Equal(t, nav.Key("mining.analysis"), mining.Current(), "sub-tab selection survives hide")

	outer.SetSize(100, 30)
	f.send(keyMsg("4"))
	out := ansi.Strip(zone.Scan(outer.View()))
	require.Contains(t, out, "Real-time │ Analysis │ Prediction")
	require.Contains(t, out, "mining.analysis presses=1")
}

func TestNestedShell_ValidationFailsOuterInitialize(t *testing.T) {
	tree, err := nav.New("combat", nav.Category{Label: "COMBAT", Leaves: []nav.Leaf{
		{Label: "PvE", Key: "combat.pve"},
		{Label: "PvP", Key: "combat.pvp"},
	}})
	require.NoError(t, err)
	reg := panel.NewRegistry()
	require.NoError(t, reg.Register("combat.pve", &fakePanel{}))
	nested := New(Config{ID: "combat", Tree: tree, Registry: reg, Layout: LayoutTabs})

	outerTree, err := nav.New("main", nav.Category{Label: "COMBAT", Leaves: []nav.Leaf{{Label: "Combat", Key: "combat"}}})
	require.NoError(t, err)
	outerReg := panel.NewRegistry()
	require.NoError(t, outerReg.Register("combat", nested))

	err = New(Config{ID: "main", Tree: outerTree, Registry: outerReg}).Initialize()
	require.ErrorIs(t, err, nav.ErrConfig)
	require.Contains(t, err.Error(), `"combat.pvp"`)
	require.False(t, nested.Mounted())
}

func TestShell_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree, err := nav.New("main", globalCategories()...)
		if err != nil {
			t.Fatal(err)
		}
		reg := panel.NewRegistry()
		for _, k := range tree.Keys() {
			_ = reg.Register(k, &fakePanel{name: string(k)})
		}
		s := New(Config{ID: "main", Tree: tree, Registry: reg})
		if err := s.Initialize(); err != nil {
			t.Fatal(err)
		}

		candidates := append(tree.Keys(), "ghost", "GLOBAL")
		want := tree.DefaultKey()
		switches := 0
		for range rapid.IntRange(0, 50).Draw(t, "steps") {
			k := rapid.SampledFrom(candidates).Draw(t, "key")
			s.OnSelection(k)
			if tree.Contains(k) && k != want {
				want = k
				switches++
			}

			visible := s.VisibleKeys()
			if len(visible) != 1 || visible[0] != want {
				t.Fatalf("visible %v, want [%s]", visible, want)
			}
		}
		if s.Switches() != switches {
			t.Fatalf("switches %d, want %d", s.Switches(), switches)
		}
		reg.Each(func(k nav.Key, p panel.Panel) {
			if p.(*fakePanel).Mounts() != 1 {
				t.Fatalf("panel %s mounted %d times", k, p.(*fakePanel).Mounts())
			}
		})
	})
}
