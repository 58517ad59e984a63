package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBack(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSaveNavigation_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flightdeck.yaml")

	cats := []NavCategoryConfig{
		{Label: "MINING", Leaves: []NavLeafConfig{{Label: "Asteroid Mining", Key: "mining"}}},
	}
	require.NoError(t, SaveNavigation(path, cats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: MINING")
	assert.Contains(t, string(data), "key: mining")

	require.Equal(t, cats, readBack(t, path).Navigation)
}

func TestSaveNavigation_PreservesOtherConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flightdeck.yaml")
	initial := `# my dashboard
ui:
  sidebar_width: 30 # wider
navigation:
  - label: OLD
    leaves:
      - label: Old
        key: realtime
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	cats := []NavCategoryConfig{
		{Label: "COMBAT", Leaves: []NavLeafConfig{{Label: "All Combat", Key: "combat"}}},
	}
	require.NoError(t, SaveNavigation(path, cats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my dashboard")
	assert.Contains(t, string(data), "# wider")
	assert.NotContains(t, string(data), "label: OLD")

	cfg := readBack(t, path)
	require.Equal(t, 30, cfg.UI.SidebarWidth)
	require.Equal(t, cats, cfg.Navigation)
}

func TestSaveStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flightdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  show_footer: false\n"), 0o644))

	require.NoError(t, SaveStart(path, "hauling"))
	require.NoError(t, SaveStart(path, "combat"))

	cfg := readBack(t, path)
	require.Equal(t, "combat", cfg.Start)
	require.False(t, cfg.UI.ShowFooter)
}

func TestSaveStart_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flightdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o644))

	err := SaveStart(path, "combat")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}
