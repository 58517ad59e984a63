package panel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/flightdeck/internal/nav"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	rt := newStub("realtime")
	an := newStub("analysis")

	require.NoError(t, r.Register("realtime", rt))
	require.NoError(t, r.Register("analysis", an))

	got, err := r.Resolve("realtime")
	require.NoError(t, err)
	require.Same(t, rt, got)
	require.Equal(t, []nav.Key{"realtime", "analysis"}, r.Keys())
	require.Equal(t, 2, r.Len())
}

func TestRegistry_DuplicateKeepsFirst(t *testing.T) {
	r := NewRegistry()
	first := newStub("first")
	require.NoError(t, r.Register("mining", first))

	err := r.Register("mining", newStub("second"))
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.ErrorIs(t, err, nav.ErrConfig)
	require.Contains(t, err.Error(), `"mining"`)

	got, err := r.Resolve("mining")
	require.NoError(t, err)
	require.Same(t, first, got)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_RejectsEmptyKeyAndNilPanel(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.Register("", newStub("x")), nav.ErrConfig)
	require.ErrorIs(t, r.Register("x", nil), nav.ErrConfig)
	require.Zero(t, r.Len())
}

func TestRegistry_ResolveMissing(t *testing.T) {
	r := NewRegistry()
	p, err := r.Resolve("carrier")
	require.Nil(t, p)
	require.ErrorIs(t, err, ErrPanelNotFound)
	require.Contains(t, err.Error(), "carrier")
}

func TestRegistry_Each(t *testing.T) {
	r := NewRegistry()
	for _, k := range []nav.Key{"c", "a", "b"} {
		require.NoError(t, r.Register(k, newStub(string(k))))
	}

	var seen []string
	r.Each(func(k nav.Key, p Panel) {
		seen = append(seen, string(k)+"="+p.View())
	})
	require.Equal(t, []string{"c=c", "a=a", "b=b"}, seen)
}

func TestRegistry_Validate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("realtime", newStub("realtime")))
	require.NoError(t, r.Register("analysis", newStub("analysis")))

	require.NoError(t, r.Validate([]nav.Key{"realtime", "analysis"}))

	err := r.Validate([]nav.Key{"realtime", "analyses"})
	require.ErrorIs(t, err, nav.ErrConfig)
	require.ErrorIs(t, err, ErrPanelNotFound)
	require.Contains(t, err.Error(), `"analyses" (did you mean "analysis"?)`)

	var cfgErr *nav.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, nav.Key("analyses"), cfgErr.Key)
}

func TestRegistry_ValidateListsEveryMissingKey(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("realtime", newStub("realtime")))

	err := r.Validate([]nav.Key{"combat.pvp", "realtime", "thargoid"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `"combat.pvp"`)
	require.Contains(t, err.Error(), `"thargoid"`)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestRegistry_Suggest(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("mining", newStub("mining")))
	require.NoError(t, r.Register("hauling", newStub("hauling")))

	s, ok := r.Suggest("minnig")
	require.True(t, ok)
	require.Equal(t, nav.Key("mining"), s)

	_, ok = r.Suggest("colonization")
	require.False(t, ok)
}

func TestRegistry_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()
		first := map[nav.Key]Panel{}

		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := range ops {
			k := nav.Key(fmt.Sprintf("k%d", rapid.IntRange(0, 9).Draw(t, "key")))
			p := newStub(fmt.Sprintf("p%d", i))
			err := r.Register(k, p)
			if _, dup := first[k]; dup {
				if err == nil {
					t.Fatalf("duplicate %q accepted", k)
				}
				continue
			}
			if err != nil {
				t.Fatalf("register %q: %v", k, err)
			}
			first[k] = p
		}

		if r.Len() != len(first) {
			t.Fatalf("len %d, want %d", r.Len(), len(first))
		}
		for k, want := range first {
			got, err := r.Resolve(k)
			if err != nil || got != want {
				t.Fatalf("resolve %q returned %v, %v", k, got, err)
			}
		}
		if err := r.Validate(r.Keys()); err != nil {
			t.Fatalf("validate registered keys: %v", err)
		}
	})
}
