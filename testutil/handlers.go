// Package testutil holds recording drag sources and drop targets for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dragdrop/pkg/backend/testbackend"
	"github.com/grovetools/dragdrop/pkg/dnd"
)

// Journal is a shared, ordered log of handler calls, formatted as
// "<method>:<id>".
type Journal struct {
	entries []string
}

func (j *Journal) record(method string, id dnd.Identifier) {
	if j != nil {
		j.entries = append(j.entries, fmt.Sprintf("%s:%s", method, id))
	}
}

// Entries returns the recorded calls.
func (j *Journal) Entries() []string {
	return append([]string(nil), j.entries...)
}

// Filter returns the recorded calls of one method, in order.
func (j *Journal) Filter(method string) []string {
	var out []string
	for _, e := range j.entries {
		if strings.HasPrefix(e, method+":") {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the journal.
func (j *Journal) Reset() { j.entries = nil }

// Source is a configurable DragSource that records its calls.
type Source struct {
	Item      any
	Draggable bool
	Journal   *Journal

	// Captured in EndDrag.
	EndedWithDidDrop    bool
	EndedWithDropResult any
	EndDragCalls        int

	OnCanDrag   func(m dnd.Monitor, id dnd.Identifier)
	OnBeginDrag func(m dnd.Monitor, id dnd.Identifier)
	OnEndDrag   func(m dnd.Monitor, id dnd.Identifier)
}

// NewSource returns a draggable source producing item.
func NewSource(item any, j *Journal) *Source {
	return &Source{Item: item, Draggable: true, Journal: j}
}

func (s *Source) CanDrag(m dnd.Monitor, id dnd.Identifier) bool {
	s.Journal.record("canDrag", id)
	if s.OnCanDrag != nil {
		s.OnCanDrag(m, id)
	}
	return s.Draggable
}

func (s *Source) BeginDrag(m dnd.Monitor, id dnd.Identifier) any {
	s.Journal.record("beginDrag", id)
	if s.OnBeginDrag != nil {
		s.OnBeginDrag(m, id)
	}
	return s.Item
}

func (s *Source) EndDrag(m dnd.Monitor, id dnd.Identifier) {
	s.Journal.record("endDrag", id)
	s.EndDragCalls++
	s.EndedWithDidDrop = m.DidDrop()
	s.EndedWithDropResult = m.GetDropResult()
	if s.OnEndDrag != nil {
		s.OnEndDrag(m, id)
	}
}

// Target is a configurable DropTarget that records its calls.
type Target struct {
	Droppable bool
	Result    any
	Journal   *Journal

	HoverCalls int
	DropCalls  int

	OnHover func(m dnd.Monitor, id dnd.Identifier)
	OnDrop  func(m dnd.Monitor, id dnd.Identifier)
}

// NewTarget returns a droppable target yielding result on drop.
func NewTarget(result any, j *Journal) *Target {
	return &Target{Droppable: true, Result: result, Journal: j}
}

func (t *Target) CanDrop(_ dnd.Monitor, id dnd.Identifier) bool {
	t.Journal.record("canDrop", id)
	return t.Droppable
}

func (t *Target) Hover(m dnd.Monitor, id dnd.Identifier) {
	t.Journal.record("hover", id)
	t.HoverCalls++
	if t.OnHover != nil {
		t.OnHover(m, id)
	}
}

func (t *Target) Drop(m dnd.Monitor, id dnd.Identifier) any {
	t.Journal.record("drop", id)
	t.DropCalls++
	if t.OnDrop != nil {
		t.OnDrop(m, id)
	}
	return t.Result
}

// NullLogger returns a logger that discards everything, along with the hook
// capturing its entries.
func NullLogger() (*logrus.Entry, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}

// NewManager builds a quiet manager on the test backend.
func NewManager(t *testing.T) (*dnd.Manager, *testbackend.Backend) {
	t.Helper()
	log, _ := NullLogger()
	m, b := testbackend.NewManager(dnd.WithLogger(log))
	require.NotNil(t, b)
	return m, b
}

// MustAddSource registers s under itemType.
func MustAddSource(t *testing.T, m *dnd.Manager, itemType dnd.ItemType, s dnd.DragSource) dnd.Identifier {
	t.Helper()
	id, err := m.GetRegistry().AddSource(itemType, s)
	require.NoError(t, err)
	return id
}

// MustAddTarget registers tgt for types.
func MustAddTarget(t *testing.T, m *dnd.Manager, tgt dnd.DropTarget, types ...dnd.ItemType) dnd.Identifier {
	t.Helper()
	id, err := m.GetRegistry().AddTarget(dnd.Types(types...), tgt)
	require.NoError(t, err)
	return id
}

// IDs is shorthand for an identifier slice.
func IDs(ids ...dnd.Identifier) []dnd.Identifier {
	return ids
}
