// Package pointer is a backend driven by terminal mouse and key events as
// delivered by bubbletea.
//
// Sources and targets are connected to Nodes that report their cell bounds.
// A left press over one or more sources arms a drag; motion past the slop
// begins it, and every further motion hovers the targets under the pointer.
// Releasing drops, and the cancel key ends the drag without a drop.
package pointer

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/dnd"
)

// Modality is the name the backend claims while set up.
const Modality = "pointer"

type delayElapsedMsg struct {
	press int
}

// Backend implements dnd.Backend for bubbletea programs. Feed it every
// message through Update from the program's own Update.
type Backend struct {
	actions *dnd.Actions
	monitor dnd.Monitor
	log     *logrus.Entry
	opts    Options

	sources  map[dnd.Identifier]connection
	previews map[dnd.Identifier]connection
	targets  map[dnd.Identifier]connection
	seq      uint64

	release func()

	press      int
	pressing   bool
	waiting    bool
	origin     dnd.XYCoord
	candidates []dnd.Identifier
}

// New returns a factory for dnd.NewManager.
func New(opts Options) dnd.BackendFactory {
	return func(m *dnd.Manager) dnd.Backend {
		return &Backend{
			actions:  m.GetActions(),
			monitor:  m.GetMonitor(),
			log:      m.Logger().WithField("backend", Modality),
			opts:     opts,
			sources:  make(map[dnd.Identifier]connection),
			previews: make(map[dnd.Identifier]connection),
			targets:  make(map[dnd.Identifier]connection),
		}
	}
}

// From returns the pointer backend of m, if it has one.
func From(m *dnd.Manager) (*Backend, bool) {
	b, ok := m.GetBackend().(*Backend)
	return b, ok
}

func (b *Backend) Setup() error {
	if b.release != nil {
		return nil
	}
	release, err := dnd.ClaimModality(Modality)
	if err != nil {
		return err
	}
	b.release = release
	b.log.Debug("Pointer backend set up")
	return nil
}

func (b *Backend) Teardown() {
	if b.release == nil {
		return
	}
	b.release()
	b.release = nil
	b.resetPress()
	b.log.Debug("Pointer backend torn down")
}

// IsSetUp reports whether the backend currently owns the pointer modality.
func (b *Backend) IsSetUp() bool {
	return b.release != nil
}

// Options returns the active options.
func (b *Backend) Options() Options {
	return b.opts
}

// SetOptions replaces the options. A press in progress keeps its state.
func (b *Backend) SetOptions(opts Options) {
	b.opts = opts
}

// CancelKey is the binding that cancels a drag, for help views.
func (b *Backend) CancelKey() key.Binding {
	return b.opts.CancelKey
}

func asNode(node any) (Node, error) {
	n, ok := node.(Node)
	if !ok || node == nil {
		return nil, errors.InvalidNode(Modality, node)
	}
	return n, nil
}

func (b *Backend) connect(conns map[dnd.Identifier]connection, id dnd.Identifier, node any) (uint64, error) {
	n, err := asNode(node)
	if err != nil {
		return 0, err
	}
	b.seq++
	conns[id] = connection{node: n, seq: b.seq}
	return b.seq, nil
}

// disconnect removes id unless it was reconnected since seq was issued.
func disconnect(conns map[dnd.Identifier]connection, id dnd.Identifier, seq uint64) bool {
	if c, ok := conns[id]; ok && c.seq == seq {
		delete(conns, id)
		return true
	}
	return false
}

func (b *Backend) ConnectDragSource(id dnd.Identifier, node any) (dnd.Unsubscribe, error) {
	seq, err := b.connect(b.sources, id, node)
	if err != nil {
		return nil, err
	}
	return dnd.OnceUnsubscribe(func() {
		if disconnect(b.sources, id, seq) {
			b.sourceDisconnected(id)
		}
	}), nil
}

// ConnectDragPreview sets the node whose origin anchors the source's client
// offset. Without a preview the source node is used.
func (b *Backend) ConnectDragPreview(id dnd.Identifier, node any, _ any) (dnd.Unsubscribe, error) {
	seq, err := b.connect(b.previews, id, node)
	if err != nil {
		return nil, err
	}
	return dnd.OnceUnsubscribe(func() {
		disconnect(b.previews, id, seq)
	}), nil
}

func (b *Backend) ConnectDropTarget(id dnd.Identifier, node any) (dnd.Unsubscribe, error) {
	seq, err := b.connect(b.targets, id, node)
	if err != nil {
		return nil, err
	}
	return dnd.OnceUnsubscribe(func() {
		disconnect(b.targets, id, seq)
	}), nil
}

func (b *Backend) sourceDisconnected(id dnd.Identifier) {
	if !b.opts.CancelOnSourceDisconnect || !b.monitor.IsDragging() || b.monitor.GetSourceID() != id {
		return
	}
	b.log.WithField("source", id).Debug("Dragged source disconnected, cancelling drag")
	b.cancel()
}

// Update consumes mouse and key messages. The returned command, when not
// nil, must be run by the program; its message belongs back in Update.
// Messages are ignored while the backend is not set up.
func (b *Backend) Update(msg tea.Msg) tea.Cmd {
	if b.release == nil {
		return nil
	}
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return b.handleMouse(tea.MouseEvent(msg))
	case tea.KeyMsg:
		b.handleKey(msg)
	case delayElapsedMsg:
		if msg.press == b.press && b.pressing {
			b.waiting = false
		}
	}
	return nil
}

func (b *Backend) handleMouse(ev tea.MouseEvent) tea.Cmd {
	pos := dnd.XYCoord{X: float64(ev.X), Y: float64(ev.Y)}
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			return b.handlePress(ev.X, ev.Y, pos)
		}
	case tea.MouseActionMotion:
		b.handleMove(ev.X, ev.Y, pos)
	case tea.MouseActionRelease:
		b.handleRelease()
	}
	return nil
}

func (b *Backend) handlePress(x, y int, pos dnd.XYCoord) tea.Cmd {
	if b.monitor.IsDragging() {
		return nil
	}
	b.resetPress()
	b.press++

	candidates := hitTest(b.sources, x, y)
	if len(candidates) == 0 {
		return nil
	}
	b.pressing = true
	b.origin = pos
	b.candidates = candidates

	if b.opts.Delay <= 0 {
		return nil
	}
	b.waiting = true
	press := b.press
	return tea.Tick(b.opts.Delay, func(time.Time) tea.Msg {
		return delayElapsedMsg{press: press}
	})
}

func (b *Backend) handleMove(x, y int, pos dnd.XYCoord) {
	if b.waiting {
		// Moving during the hold delay abandons the press.
		b.resetPress()
		return
	}

	if !b.monitor.IsDragging() {
		if !b.pressing || distance(b.origin, pos) <= b.opts.TouchSlop {
			return
		}
		candidates, origin := b.candidates, b.origin
		b.resetPress()

		err := b.actions.BeginDrag(candidates, &dnd.BeginDragOptions{
			PublishSource:         false,
			ClientOffset:          &origin,
			GetSourceClientOffset: b.sourceOrigin,
		})
		if err != nil {
			b.log.WithError(err).Debug("Press did not start a drag")
			return
		}
	}

	if err := b.actions.PublishDragSource(); err != nil {
		return
	}

	targets := hitTest(b.targets, x, y)
	if b.opts.EnableHoverOutsideTarget {
		targets = b.withSourceContainer(targets)
	}
	if err := b.actions.Hover(targets, &dnd.HoverOptions{ClientOffset: &pos}); err != nil {
		b.log.WithError(err).Debug("Hover rejected")
	}
}

func (b *Backend) handleRelease() {
	b.resetPress()
	if !b.monitor.IsDragging() || b.monitor.DidDrop() {
		return
	}
	if err := b.actions.Drop(); err != nil {
		b.log.WithError(err).Warn("Drop failed")
	}
	if err := b.actions.EndDrag(); err != nil {
		b.log.WithError(err).Warn("End drag failed")
	}
}

func (b *Backend) handleKey(msg tea.KeyMsg) {
	if !b.opts.EnableKeyboardEvents || !b.monitor.IsDragging() {
		return
	}
	if key.Matches(msg, b.opts.CancelKey) {
		b.cancel()
	}
}

// Cancel ends an active drag without dropping, as the cancel key does.
func (b *Backend) Cancel() {
	if b.release == nil || !b.monitor.IsDragging() {
		return
	}
	b.cancel()
}

func (b *Backend) cancel() {
	b.resetPress()
	if err := b.actions.EndDrag(); err != nil {
		b.log.WithError(err).Debug("Cancel ignored")
	}
}

func (b *Backend) resetPress() {
	b.pressing = false
	b.waiting = false
	b.candidates = nil
}

// sourceOrigin reports the top-left cell of a source's preview, or of the
// source itself.
func (b *Backend) sourceOrigin(id dnd.Identifier) (dnd.XYCoord, bool) {
	c, ok := b.previews[id]
	if !ok {
		c, ok = b.sources[id]
	}
	if !ok {
		return dnd.XYCoord{}, false
	}
	r := c.node.Bounds()
	return dnd.XYCoord{X: float64(r.X), Y: float64(r.Y)}, true
}

// withSourceContainer adds the innermost target enclosing the dragged
// source's node when the pointer has left it.
func (b *Backend) withSourceContainer(targets []dnd.Identifier) []dnd.Identifier {
	source, ok := b.sources[b.monitor.GetSourceID()]
	if !ok {
		return targets
	}
	sourceBounds := source.node.Bounds()

	hovered := make(map[dnd.Identifier]bool, len(targets))
	for _, id := range targets {
		hovered[id] = true
	}

	var containers []dnd.Identifier
	for id, c := range b.targets {
		if !hovered[id] && c.node.Bounds().ContainsRect(sourceBounds) {
			containers = append(containers, id)
		}
	}
	if len(containers) == 0 {
		return targets
	}
	sort.Slice(containers, func(i, j int) bool {
		ai, aj := b.targets[containers[i]].node.Bounds().area(), b.targets[containers[j]].node.Bounds().area()
		if ai != aj {
			return ai < aj
		}
		return b.targets[containers[i]].seq > b.targets[containers[j]].seq
	})
	return append([]dnd.Identifier{containers[0]}, targets...)
}
