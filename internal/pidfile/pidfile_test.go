package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dragdrop/errors"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "dndctl.pid")

	require.NoError(t, Acquire(path))
	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	running, _, err := IsRunning(path)
	require.NoError(t, err)
	assert.True(t, running)

	require.NoError(t, Release(path))
	running, pid, err = IsRunning(path)
	require.NoError(t, err)
	assert.False(t, running)
	assert.Zero(t, pid)
}

func TestAcquireRefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dndctl.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644))

	err := Acquire(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeServerRunning))
}

func TestAcquireReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dndctl.pid")
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0644))

	require.NoError(t, Acquire(path))
	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestIsAliveRejectsInvalidPID(t *testing.T) {
	assert.False(t, isAlive(0))
	assert.False(t, isAlive(-3))
}
