// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDir is the directory name used under both the project and the user config dir.
const AppDir = "flightdeck"

// LocalConfigFile is the project-local config checked before the user config.
var LocalConfigFile = filepath.Join("."+AppDir, "config.yaml")

// Expand resolves a leading "~" to the user's home directory.
// Paths without one are returned cleaned but otherwise unchanged.
//
//   - "~" -> "/home/cmdr"
//   - "~/snap.yaml" -> "/home/cmdr/snap.yaml"
//   - "" -> ""
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigDir returns ~/.config/flightdeck, or "" when no home dir is known.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppDir)
}

// UserConfigFile returns the config file inside ConfigDir.
func UserConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// FindConfig returns the first existing config file: the project-local
// .flightdeck/config.yaml, then the user config. found is false when
// neither exists, in which case path is where a default should be written.
func FindConfig() (path string, found bool) {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile, true
	}
	user := UserConfigFile()
	if user == "" {
		return LocalConfigFile, false
	}
	if _, err := os.Stat(user); err == nil {
		return user, true
	}
	return user, false
}
