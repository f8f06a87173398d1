package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dragdrop/config"
	dnderrors "github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/testutil"
)

type harness struct {
	manager  *dnd.Manager
	server   *Server
	client   *Client
	messages <-chan Message
	sourceID dnd.Identifier
	targetID dnd.Identifier
	source   *testutil.Source
}

func newHarness(t *testing.T, opts pointer.Options) *harness {
	t.Helper()
	log, _ := testutil.NullLogger()
	m := dnd.NewManager(pointer.New(opts), dnd.WithLogger(log))
	t.Cleanup(m.Teardown)

	h := &harness{manager: m, source: testutil.NewSource("card", nil)}
	h.sourceID = testutil.MustAddSource(t, m, "card", h.source)
	h.targetID = testutil.MustAddTarget(t, m, testutil.NewTarget("bin", nil), "card")

	b, ok := pointer.From(m)
	require.True(t, ok)
	_, err := b.ConnectDragSource(h.sourceID, pointer.Rect{Width: 4, Height: 2})
	require.NoError(t, err)
	_, err = b.ConnectDropTarget(h.targetID, pointer.Rect{X: 10, Width: 10, Height: 10})
	require.NoError(t, err)

	srv, err := NewServer(m, config.RemoteConfig{Path: "/pointer", ReadLimit: 1024}, log)
	require.NoError(t, err)
	h.server = srv

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/pointer"
	c, err := Dial(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	h.client = c
	h.messages = c.Stream(ctx)
	return h
}

// waitFor reads messages until one satisfies match.
func (h *harness) waitFor(t *testing.T, match func(Message) bool) Message {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg, ok := <-h.messages:
			require.True(t, ok, "stream closed")
			if match(msg) {
				return msg
			}
		case <-timeout:
			t.Fatal("timed out waiting for message")
		}
	}
}

func isSnapshot(pred func(dnd.Snapshot) bool) func(Message) bool {
	return func(msg Message) bool {
		return msg.Type == MessageSnapshot && msg.Snapshot != nil && pred(*msg.Snapshot)
	}
}

func TestRemoteDragAndDrop(t *testing.T) {
	h := newHarness(t, pointer.DefaultOptions())

	initial := h.waitFor(t, isSnapshot(func(dnd.Snapshot) bool { return true }))
	assert.False(t, initial.Snapshot.Dragging)

	require.NoError(t, h.client.Send(Event{Type: EventPress, X: 1, Y: 1}))
	require.NoError(t, h.client.Send(Event{Type: EventMove, X: 12, Y: 3}))

	over := h.waitFor(t, isSnapshot(func(s dnd.Snapshot) bool { return len(s.TargetIDs) == 1 }))
	assert.True(t, over.Snapshot.Dragging)
	assert.Equal(t, h.sourceID, over.Snapshot.SourceID)
	assert.Equal(t, h.targetID, over.Snapshot.TargetIDs[0])
	assert.Equal(t, "card", over.Snapshot.Item)

	require.NoError(t, h.client.Send(Event{Type: EventRelease, X: 12, Y: 3}))
	dropped := h.waitFor(t, isSnapshot(func(s dnd.Snapshot) bool { return s.DidDrop }))
	assert.Equal(t, "bin", dropped.Snapshot.DropResult)
	h.waitFor(t, isSnapshot(func(s dnd.Snapshot) bool { return !s.Dragging }))

	h.server.engineMu.Lock()
	defer h.server.engineMu.Unlock()
	assert.Equal(t, 1, h.source.EndDragCalls)
	assert.Equal(t, "bin", h.source.EndedWithDropResult)
}

func TestRemoteCancel(t *testing.T) {
	h := newHarness(t, pointer.DefaultOptions())

	require.NoError(t, h.client.Send(Event{Type: EventPress, X: 1, Y: 1}))
	require.NoError(t, h.client.Send(Event{Type: EventMove, X: 30, Y: 30}))
	h.waitFor(t, isSnapshot(func(s dnd.Snapshot) bool { return s.Dragging }))

	require.NoError(t, h.client.Send(Event{Type: EventCancel}))
	h.waitFor(t, isSnapshot(func(s dnd.Snapshot) bool { return !s.Dragging && s.StateID > 0 }))
	h.server.engineMu.Lock()
	defer h.server.engineMu.Unlock()
	assert.Equal(t, 1, h.source.EndDragCalls)
	assert.False(t, h.source.EndedWithDidDrop)
}

func TestRemoteRejectsBadEvents(t *testing.T) {
	h := newHarness(t, pointer.DefaultOptions())

	require.NoError(t, h.client.Send(Event{Type: "wiggle"}))
	msg := h.waitFor(t, func(m Message) bool { return m.Type == MessageError })
	assert.Equal(t, dnderrors.ErrCodeInvalidInput, msg.Error.Code)

	require.NoError(t, h.client.conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = h.waitFor(t, func(m Message) bool { return m.Type == MessageError })
	assert.Equal(t, dnderrors.ErrCodeInvalidInput, msg.Error.Code)
}

func TestDelayedPressThroughServer(t *testing.T) {
	opts := pointer.DefaultOptions()
	opts.Delay = 5 * time.Millisecond
	h := newHarness(t, opts)

	require.NoError(t, h.server.Dispatch(Event{Type: EventPress, X: 1, Y: 1}))
	h.server.Wait()
	require.NoError(t, h.server.Dispatch(Event{Type: EventMove, X: 12, Y: 3}))

	h.server.engineMu.Lock()
	dragging := h.manager.GetMonitor().IsDragging()
	h.server.engineMu.Unlock()
	assert.True(t, dragging)
}

func TestNewServerRequiresPointerBackend(t *testing.T) {
	log, _ := testutil.NullLogger()
	m := dnd.NewManager(nil, dnd.WithLogger(log))

	_, err := NewServer(m, config.RemoteConfig{}, log)
	assert.True(t, dnderrors.Is(err, dnderrors.ErrCodeInvalidInput))
}

func TestEventConversion(t *testing.T) {
	msg, err := Event{Type: EventCancel}.toMsg()
	require.NoError(t, err)
	assert.Nil(t, msg)

	_, err = Event{Type: "bogus"}.toMsg()
	assert.Error(t, err)
}
