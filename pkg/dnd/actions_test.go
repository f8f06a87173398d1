package dnd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderrors "github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/testutil"
)

func TestBeginDragPicksFirstQualifyingSource(t *testing.T) {
	m, b := testutil.NewManager(t)
	journal := &testutil.Journal{}

	blocked := testutil.NewSource("blocked", journal)
	blocked.Draggable = false
	declines := testutil.NewSource(nil, journal)
	winner := testutil.NewSource("winner", journal)
	later := testutil.NewSource("later", journal)

	ids := testutil.IDs(
		testutil.MustAddSource(t, m, "card", blocked),
		testutil.MustAddSource(t, m, "card", declines),
		testutil.MustAddSource(t, m, "card", winner),
		testutil.MustAddSource(t, m, "card", later),
	)

	require.NoError(t, b.SimulateBeginDrag(ids, nil))

	monitor := m.GetMonitor()
	assert.True(t, monitor.IsDragging())
	assert.Equal(t, ids[2], monitor.GetSourceID())
	assert.Equal(t, "winner", monitor.GetItem())
	assert.Equal(t, dnd.ItemType("card"), monitor.GetItemType())
	assert.True(t, monitor.IsSourcePublic())
	assert.Empty(t, monitor.GetTargetIDs())
	assert.False(t, monitor.DidDrop())
	assert.Nil(t, monitor.GetDropResult())

	assert.NotContains(t, journal.Entries(), "canDrag:"+string(ids[3]), "later sources are never asked")
	assert.Equal(t, []string{"beginDrag:" + string(ids[1]), "beginDrag:" + string(ids[2])}, journal.Filter("beginDrag"))
}

func TestBeginDragWithoutItemLeavesStateIdle(t *testing.T) {
	m, b := testutil.NewManager(t)
	sourceID := testutil.MustAddSource(t, m, "card", testutil.NewSource(nil, nil))

	notified := 0
	m.Subscribe(func() { notified++ })
	before := m.GetState()

	err := b.SimulateBeginDrag(testutil.IDs(sourceID), nil)
	assert.True(t, dnderrors.Is(err, dnderrors.ErrCodeNoItemToDrag))
	assert.False(t, m.GetMonitor().IsDragging())
	assert.Equal(t, before, m.GetState())
	assert.Zero(t, notified)
}

func TestActionPreconditions(t *testing.T) {
	m, b := testutil.NewManager(t)
	sourceID := testutil.MustAddSource(t, m, "card", testutil.NewSource("ace", nil))
	targetID := testutil.MustAddTarget(t, m, testutil.NewTarget(nil, nil), "card")

	code := func(err error) dnderrors.ErrorCode { return dnderrors.GetCode(err) }

	assert.Equal(t, dnderrors.ErrCodeNotDragging, code(b.SimulatePublishDragSource()))
	assert.Equal(t, dnderrors.ErrCodeNotDragging, code(b.SimulateHover(testutil.IDs(targetID), nil)))
	assert.Equal(t, dnderrors.ErrCodeNotDragging, code(b.SimulateDrop()))
	assert.Equal(t, dnderrors.ErrCodeNotDragging, code(b.SimulateEndDrag()))
	assert.Equal(t, dnderrors.ErrCodeHandlerNotFound, code(b.SimulateBeginDrag(testutil.IDs("S404"), nil)))
	assert.Equal(t, dnderrors.ErrCodeHandlerNotFound, code(b.SimulateBeginDrag(testutil.IDs(targetID), nil)))

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil))
	assert.Equal(t, dnderrors.ErrCodeAlreadyDragging, code(b.SimulateBeginDrag(testutil.IDs(sourceID), nil)))
	assert.Equal(t, dnderrors.ErrCodeDuplicateTargetIDs, code(b.SimulateHover(testutil.IDs(targetID, targetID), nil)))
	assert.Equal(t, dnderrors.ErrCodeHandlerNotFound, code(b.SimulateHover(testutil.IDs("T404"), nil)))
	assert.Equal(t, dnderrors.ErrCodeHandlerNotFound, code(b.SimulateHover(testutil.IDs(sourceID), nil)))

	require.NoError(t, b.SimulateHover(testutil.IDs(targetID), nil))
	require.NoError(t, b.SimulateDrop())
	assert.Equal(t, dnderrors.ErrCodeAlreadyDropped, code(b.SimulateHover(testutil.IDs(targetID), nil)))
	assert.Equal(t, dnderrors.ErrCodeAlreadyDropped, code(b.SimulateDrop()))

	require.NoError(t, b.SimulateEndDrag())
	assert.Equal(t, dnderrors.ErrCodeNotDragging, code(b.SimulateEndDrag()))
}

func TestHoverFiltersByTypeAndStoresOutermostFirst(t *testing.T) {
	m, b := testutil.NewManager(t)
	journal := &testutil.Journal{}
	sourceID := testutil.MustAddSource(t, m, "card", testutil.NewSource("ace", nil))
	outer := testutil.MustAddTarget(t, m, testutil.NewTarget(nil, journal), "card")
	middle := testutil.MustAddTarget(t, m, testutil.NewTarget(nil, journal), "chip")
	inner := testutil.MustAddTarget(t, m, testutil.NewTarget(nil, journal), "chip", "card")

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil))
	require.NoError(t, b.SimulateHover(testutil.IDs(inner, middle, outer), nil))

	assert.Equal(t, testutil.IDs(outer, inner), m.GetMonitor().GetTargetIDs())
	assert.Equal(t, []string{"hover:" + string(outer), "hover:" + string(inner)}, journal.Entries())
}

func TestHoverCallsEveryHandlerOnEachHover(t *testing.T) {
	m, b := testutil.NewManager(t)
	sourceID := testutil.MustAddSource(t, m, "card", testutil.NewSource("ace", nil))
	target := testutil.NewTarget(nil, nil)
	targetID := testutil.MustAddTarget(t, m, target, "card")

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil))
	for i := 0; i < 3; i++ {
		require.NoError(t, b.SimulateHover(testutil.IDs(targetID), nil))
	}
	assert.Equal(t, 3, target.HoverCalls)

	require.NoError(t, b.SimulateHover(nil, nil))
	assert.Empty(t, m.GetMonitor().GetTargetIDs())
	assert.Equal(t, 3, target.HoverCalls)
}

func TestDropTriesInnermostFirstAndStopsAtFirstResult(t *testing.T) {
	m, b := testutil.NewManager(t)
	journal := &testutil.Journal{}
	source := testutil.NewSource("ace", nil)
	sourceID := testutil.MustAddSource(t, m, "card", source)

	outermost := testutil.NewTarget("outermost", journal)
	outer := testutil.NewTarget("outer", journal)
	refusing := testutil.NewTarget("refusing", journal)
	refusing.Droppable = false
	inner := testutil.NewTarget(nil, journal)

	outermostID := testutil.MustAddTarget(t, m, outermost, "card")
	outerID := testutil.MustAddTarget(t, m, outer, "card")
	refusingID := testutil.MustAddTarget(t, m, refusing, "card")
	innerID := testutil.MustAddTarget(t, m, inner, "card")

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil))
	require.NoError(t, b.SimulateHover(testutil.IDs(innerID, refusingID, outerID, outermostID), nil))
	journal.Reset()
	require.NoError(t, b.SimulateDrop())

	assert.Equal(t, []string{"drop:" + string(innerID), "drop:" + string(outerID)}, journal.Filter("drop"))
	assert.Zero(t, refusing.DropCalls)
	assert.Zero(t, outermost.DropCalls)

	monitor := m.GetMonitor()
	assert.True(t, monitor.DidDrop())
	assert.Equal(t, "outer", monitor.GetDropResult())
	assert.Empty(t, monitor.GetTargetIDs())

	require.NoError(t, b.SimulateEndDrag())
	assert.True(t, source.EndedWithDidDrop)
	assert.Equal(t, "outer", source.EndedWithDropResult)
}

func TestDropWithoutResultStillMarksDropped(t *testing.T) {
	m, b := testutil.NewManager(t)
	source := testutil.NewSource("ace", nil)
	sourceID := testutil.MustAddSource(t, m, "card", source)

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil))
	require.NoError(t, b.SimulateDrop())

	assert.True(t, m.GetMonitor().DidDrop())
	assert.Nil(t, m.GetMonitor().GetDropResult())
	require.NoError(t, b.SimulateEndDrag())
	assert.True(t, source.EndedWithDidDrop)
}

func TestEndDragResetsToIdle(t *testing.T) {
	m, b := testutil.NewManager(t)
	source := testutil.NewSource("ace", nil)
	sourceID := testutil.MustAddSource(t, m, "card", source)
	targetID := testutil.MustAddTarget(t, m, testutil.NewTarget(nil, nil), "card")

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), &dnd.BeginDragOptions{
		PublishSource: true,
		ClientOffset:  &dnd.XYCoord{X: 1, Y: 1},
	}))
	require.NoError(t, b.SimulateHover(testutil.IDs(targetID), nil))
	require.NoError(t, b.SimulateEndDrag())

	assert.Equal(t, 1, source.EndDragCalls)
	assert.False(t, source.EndedWithDidDrop)

	state := m.GetState()
	assert.Equal(t, dnd.DragOperation{TargetIDs: []dnd.Identifier{}}, state.DragOperation)
	assert.Equal(t, dnd.DragOffset{}, state.DragOffset)

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), nil), "a new drag can start")
}

func TestPublishDragSource(t *testing.T) {
	m, b := testutil.NewManager(t)
	sourceID := testutil.MustAddSource(t, m, "card", testutil.NewSource("ace", nil))

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), &dnd.BeginDragOptions{}))
	assert.False(t, m.GetMonitor().IsSourcePublic())
	assert.False(t, m.GetMonitor().IsDraggingSource(sourceID))

	require.NoError(t, b.SimulatePublishDragSource())
	assert.True(t, m.GetMonitor().IsSourcePublic())

	notified := 0
	m.Subscribe(func() { notified++ })
	require.NoError(t, b.SimulatePublishDragSource())
	assert.Zero(t, notified, "publishing twice changes nothing")
}

func TestHandlersObserveMonitorDuringCallbacks(t *testing.T) {
	m, b := testutil.NewManager(t)
	source := testutil.NewSource("ace", nil)
	var draggingInBegin bool
	var offsetInBegin dnd.XYCoord
	source.OnBeginDrag = func(mon dnd.Monitor, _ dnd.Identifier) {
		draggingInBegin = mon.IsDragging()
		offsetInBegin, _ = mon.GetInitialClientOffset()
	}
	sourceID := testutil.MustAddSource(t, m, "card", source)

	target := testutil.NewTarget("done", nil)
	var canDropInDrop, overInHover bool
	target.OnHover = func(mon dnd.Monitor, id dnd.Identifier) {
		overInHover = mon.IsOverTarget(id, nil)
	}
	target.OnDrop = func(mon dnd.Monitor, id dnd.Identifier) {
		canDropInDrop = mon.CanDropOnTarget(id)
	}
	targetID := testutil.MustAddTarget(t, m, target, "card")

	require.NoError(t, b.SimulateBeginDrag(testutil.IDs(sourceID), &dnd.BeginDragOptions{
		PublishSource: true,
		ClientOffset:  &dnd.XYCoord{X: 4, Y: 2},
	}))
	require.NoError(t, b.SimulateHover(testutil.IDs(targetID), nil))
	require.NoError(t, b.SimulateDrop())

	assert.False(t, draggingInBegin, "the drag is not active until an item is produced")
	assert.Equal(t, dnd.XYCoord{X: 4, Y: 2}, offsetInBegin)
	assert.False(t, overInHover, "hover handlers run before the hovered set is stored")
	assert.True(t, canDropInDrop)
}
