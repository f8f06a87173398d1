package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDNDHomeWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DND_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "/elsewhere")

	assert.Equal(t, filepath.Join(home, "config"), ConfigDir())
	assert.Equal(t, filepath.Join(home, "state"), StateDir())
	assert.Equal(t, filepath.Join(home, "run", "serve.pid"), PidFilePath())
}

func TestXDGVariables(t *testing.T) {
	t.Setenv("DND_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	t.Setenv("XDG_RUNTIME_DIR", "")

	assert.Equal(t, filepath.Join("/xdg/config", "dragdrop"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/state", "dragdrop"), StateDir())
	assert.Equal(t, StateDir(), RuntimeDir())
}

func TestHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DND_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "dragdrop"), ConfigDir())
}
