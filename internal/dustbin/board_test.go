package dustbin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/testutil"
	"github.com/grovetools/dragdrop/tui/theme"
)

func newBoard(t *testing.T) (*Board, *pointer.Backend) {
	t.Helper()
	log, _ := testutil.NullLogger()
	m := dnd.NewManager(pointer.New(pointer.DefaultOptions()), dnd.WithLogger(log))
	t.Cleanup(m.Teardown)

	b, err := New(m)
	require.NoError(t, err)
	t.Cleanup(b.Close)

	backend, ok := pointer.From(m)
	require.True(t, ok)
	return b, backend
}

func center(r pointer.Rect) (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func drag(backend *pointer.Backend, from, to pointer.Rect) {
	fx, fy := center(from)
	tx, ty := center(to)
	backend.Update(tea.MouseMsg{X: fx, Y: fy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	backend.Update(tea.MouseMsg{X: tx, Y: ty, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	backend.Update(tea.MouseMsg{X: tx, Y: ty, Action: tea.MouseActionRelease})
}

func find[T interface{ *Item | *Bin }](t *testing.T, all []T, name string) T {
	t.Helper()
	for _, v := range all {
		switch x := any(v).(type) {
		case *Item:
			if x.Name == name {
				return v
			}
		case *Bin:
			if x.Name == name {
				return v
			}
		}
	}
	t.Fatalf("%s not found", name)
	return nil
}

func TestLayoutDoesNotOverlap(t *testing.T) {
	b, _ := newBoard(t)
	b.Layout(80)

	for i, bin := range b.Bins {
		assert.Equal(t, Top, bin.Bounds().Y)
		if i > 0 {
			prev := b.Bins[i-1].Bounds()
			assert.Greater(t, bin.Bounds().X, prev.X+prev.Width-1)
		}
	}
	binBottom := b.Bins[0].Bounds().Y + b.Bins[0].Bounds().Height
	for _, item := range b.Items {
		assert.Greater(t, item.Bounds().Y, binBottom-1)
	}
}

func TestDropIntoAcceptingBin(t *testing.T) {
	b, backend := newBoard(t)
	banana := find(t, b.Items, "Banana")
	food := find(t, b.Bins, "Food")

	drag(backend, banana.Bounds(), food.Bounds())

	assert.Equal(t, "Food", banana.DroppedIn)
	assert.Equal(t, []string{"Banana"}, food.Items)
	assert.False(t, b.manager.GetMonitor().IsDragging())
}

func TestDropIntoRefusingBinIsIgnored(t *testing.T) {
	b, backend := newBoard(t)
	banana := find(t, b.Items, "Banana")
	glass := find(t, b.Bins, "Glass")

	drag(backend, banana.Bounds(), glass.Bounds())

	assert.Empty(t, banana.DroppedIn)
	assert.Empty(t, glass.Items)
}

func TestDroppedItemCannotBeDraggedAgain(t *testing.T) {
	b, backend := newBoard(t)
	paper := find(t, b.Items, "Paper")
	anyBin := find(t, b.Bins, "Any")

	drag(backend, paper.Bounds(), anyBin.Bounds())
	drag(backend, paper.Bounds(), anyBin.Bounds())
	assert.Equal(t, []string{"Paper"}, anyBin.Items)

	b.Reset()
	assert.Empty(t, paper.DroppedIn)
	assert.Empty(t, anyBin.Items)
	drag(backend, paper.Bounds(), anyBin.Bounds())
	assert.Equal(t, "Any", paper.DroppedIn)
}

func TestStatusFollowsTheDrag(t *testing.T) {
	b, backend := newBoard(t)
	glassItem := find(t, b.Items, "Glass")
	glassBin := find(t, b.Bins, "Glass")

	assert.Equal(t, "Drag an item into a bin.", b.Status())

	fx, fy := center(glassItem.Bounds())
	tx, ty := center(glassBin.Bounds())
	backend.Update(tea.MouseMsg{X: fx, Y: fy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	backend.Update(tea.MouseMsg{X: fx + 1, Y: fy, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, "Dragging Glass", b.Status())

	backend.Update(tea.MouseMsg{X: tx, Y: ty, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, "Release to drop Glass into Glass", b.Status())
}

func TestViewMatchesLayoutHeight(t *testing.T) {
	b, _ := newBoard(t)
	b.Layout(0)

	view := b.View(theme.NewTheme("kanagawa"))
	assert.Equal(t, binHeight+1+itemHeight, lipgloss.Height(view))
	assert.Contains(t, view, "Banana")
	assert.Contains(t, view, "Food")
}

func TestNewWithoutBackend(t *testing.T) {
	log, _ := testutil.NullLogger()
	m := dnd.NewManager(nil, dnd.WithLogger(log))

	b, err := New(m)
	require.NoError(t, err)
	assert.Equal(t, 6, m.GetRegistry().Len())

	b.Close()
	assert.Zero(t, m.GetRegistry().Len())
}
