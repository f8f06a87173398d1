// Package testbackend provides a backend with no native input. Tests and the
// scenario runner drive the manager through its Simulate methods.
package testbackend

import (
	"github.com/grovetools/dragdrop/pkg/dnd"
)

// Backend records its lifecycle and forwards simulated input to the
// manager's actions.
type Backend struct {
	actions *dnd.Actions

	DidCallSetup    bool
	DidCallTeardown bool
	// SetupCount counts Setup calls across the backend's lifetime.
	SetupCount int
}

// New returns a factory for dnd.NewManager. When sink is non-nil it receives
// the created backend.
func New(sink **Backend) dnd.BackendFactory {
	return func(m *dnd.Manager) dnd.Backend {
		b := &Backend{actions: m.GetActions()}
		if sink != nil {
			*sink = b
		}
		return b
	}
}

// NewManager builds a manager wired to a fresh test backend.
func NewManager(opts ...dnd.Option) (*dnd.Manager, *Backend) {
	var b *Backend
	m := dnd.NewManager(New(&b), opts...)
	return m, b
}

func (b *Backend) Setup() error {
	b.DidCallSetup = true
	b.SetupCount++
	return nil
}

func (b *Backend) Teardown() {
	b.DidCallTeardown = true
}

func (b *Backend) ConnectDragSource(dnd.Identifier, any) (dnd.Unsubscribe, error) {
	return func() {}, nil
}

func (b *Backend) ConnectDragPreview(dnd.Identifier, any, any) (dnd.Unsubscribe, error) {
	return func() {}, nil
}

func (b *Backend) ConnectDropTarget(dnd.Identifier, any) (dnd.Unsubscribe, error) {
	return func() {}, nil
}

// SimulateBeginDrag begins a drag on the first qualifying source. Nil
// options publish the source immediately.
func (b *Backend) SimulateBeginDrag(sourceIDs []dnd.Identifier, opts *dnd.BeginDragOptions) error {
	return b.actions.BeginDrag(sourceIDs, opts)
}

func (b *Backend) SimulatePublishDragSource() error {
	return b.actions.PublishDragSource()
}

// SimulateHover hovers targetIDs, given innermost-first.
func (b *Backend) SimulateHover(targetIDs []dnd.Identifier, opts *dnd.HoverOptions) error {
	return b.actions.Hover(targetIDs, opts)
}

func (b *Backend) SimulateDrop() error {
	return b.actions.Drop()
}

func (b *Backend) SimulateEndDrag() error {
	return b.actions.EndDrag()
}
