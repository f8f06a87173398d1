// Package paths resolves the directories dndctl reads and writes.
//
// Resolution order:
// 1. DND_HOME (portable root) → $DND_HOME/{config,state,run}
// 2. XDG env vars → $XDG_*_HOME/dragdrop
// 3. Platform defaults → ~/.config/dragdrop, ~/.local/state/dragdrop
package paths

import (
	"os"
	"path/filepath"
)

const appName = "dragdrop"

// base picks DND_HOME/<sub>, then the XDG variable, then home-relative
// fallback. It returns "" when no home directory is known.
func base(sub, xdgVar string, fallback ...string) string {
	if home := os.Getenv("DND_HOME"); home != "" {
		return filepath.Join(home, sub)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
	}
	return ""
}

// ConfigDir holds the user-level dnd.yml.
func ConfigDir() string {
	return base("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir holds pid files and logs.
func StateDir() string {
	return base("state", "XDG_STATE_HOME", ".local", "state")
}

// RuntimeDir prefers XDG_RUNTIME_DIR and falls back to StateDir on
// systems without one.
func RuntimeDir() string {
	if home := os.Getenv("DND_HOME"); home != "" {
		return filepath.Join(home, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return StateDir()
}

// PidFilePath is the default pid file of dndctl serve.
func PidFilePath() string {
	dir := RuntimeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "serve.pid")
}
