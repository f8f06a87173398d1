package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/internal/dustbin"
	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/pkg/remote"
	"github.com/grovetools/dragdrop/testutil"
	"github.com/grovetools/dragdrop/tui/theme"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func scenarioPath(name string) string {
	return filepath.Join("..", "examples", "scenarios", name)
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"pointer"`)

	out, err = run(t, "schema", "scenario")
	require.NoError(t, err)
	assert.Contains(t, out, "begin_drag")

	_, err = run(t, "schema", "bogus")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestReplayText(t *testing.T) {
	out, err := run(t, "replay", scenarioPath("nested-bins.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, "nested-bins")
	assert.Contains(t, out, "NO_ITEM_TO_DRAG")
	assert.Contains(t, out, "over table > tray")
	assert.Contains(t, out, "passed")
}

func TestReplayJSON(t *testing.T) {
	out, err := run(t, "replay", "--json", scenarioPath("deferred-publish.toml"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "deferred-publish", doc["name"])
	assert.Equal(t, true, doc["passed"])
}

func TestReplayYAML(t *testing.T) {
	out, err := run(t, "replay", "--format", "yaml", scenarioPath("deferred-publish.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "passed: true")
}

func TestReplayReportsFailedStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: broken
steps:
  - action: end_drag
`), 0644))

	out, err := run(t, "replay", path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStepFailed, errors.GetCode(err))
	assert.Contains(t, out, "failed")
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

func TestHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"replay", "demo", "serve", "watch", "schema"} {
		assert.Contains(t, out, name)
	}
}

func TestParseEvent(t *testing.T) {
	ev, err := parseEvent("press 3 10")
	require.NoError(t, err)
	assert.Equal(t, remote.Event{Type: remote.EventPress, X: 3, Y: 10}, ev)

	ev, err = parseEvent("cancel")
	require.NoError(t, err)
	assert.Equal(t, remote.EventCancel, ev.Type)

	_, err = parseEvent("move 3")
	assert.Error(t, err)
	_, err = parseEvent("move a b")
	assert.Error(t, err)
}

func TestFormatSnapshot(t *testing.T) {
	th := theme.NewTheme("gruvbox")
	assert.True(t, strings.HasSuffix(formatSnapshot(th, dnd.Snapshot{StateID: 4}), "idle"))

	line := formatSnapshot(th, dnd.Snapshot{
		Dragging:  true,
		SourceID:  "S1",
		TargetIDs: []dnd.Identifier{"T1", "T2"},
	})
	assert.Contains(t, line, "S1")
	assert.Contains(t, line, "T1 > T2")
}

func newTestDemo(t *testing.T) *demoModel {
	t.Helper()
	log, _ := testutil.NullLogger()
	m := dnd.NewManager(pointer.New(pointer.DefaultOptions()), dnd.WithLogger(log))
	t.Cleanup(m.Teardown)
	board, err := dustbin.New(m)
	require.NoError(t, err)
	t.Cleanup(board.Close)
	backend, _ := pointer.From(m)
	return newDemoModel(board, backend, nil, log)
}

func TestDemoDragThroughModel(t *testing.T) {
	model := newTestDemo(t)
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	banana := model.board.Items[1]
	food := model.board.Bins[1]
	from, to := banana.Bounds(), food.Bounds()

	model.Update(tea.MouseMsg{X: from.X + 1, Y: from.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	model.Update(tea.MouseMsg{X: to.X + 1, Y: to.Y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Contains(t, model.View(), "Release to drop Banana into Food")

	model.Update(tea.MouseMsg{X: to.X + 1, Y: to.Y + 1, Action: tea.MouseActionRelease})
	assert.Equal(t, "Food", banana.DroppedIn)

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Empty(t, banana.DroppedIn)
	assert.Contains(t, model.View(), "Bins emptied.")
}

func TestDemoQuitAndHelp(t *testing.T) {
	model := newTestDemo(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, cmd)
	assert.True(t, model.help.ShowAll)

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDemoAppliesReloadedConfig(t *testing.T) {
	model := newTestDemo(t)

	cfg, err := config.LoadFromBytes([]byte(`
pointer:
  touch_slop: 3
  cancel_keys: [ctrl+x]
keybindings:
  reset: [R]
`), config.FormatYAML)
	require.NoError(t, err)

	model.Update(configReloadedMsg{cfg: cfg})
	assert.Equal(t, 3.0, model.backend.Options().TouchSlop)
	assert.Equal(t, []string{"ctrl+x"}, model.keys.Cancel.Keys())
	assert.Equal(t, []string{"R"}, model.keys.Reset.Keys())
	assert.Contains(t, model.View(), "Config reloaded.")

	model.Update(configReloadedMsg{err: errors.New(errors.ErrCodeConfigInvalid, "bad")})
	assert.Contains(t, model.View(), "Config reload failed")
	assert.Equal(t, 3.0, model.backend.Options().TouchSlop)
}
