package dnd

// OverOptions tunes IsOverTarget.
type OverOptions struct {
	// Shallow restricts the check to the innermost hovered target.
	Shallow bool
}

// SubscribeOptions tunes SubscribeToStateChange.
type SubscribeOptions struct {
	// HandlerIDs limits notifications to changes that may affect these
	// handlers. Nil means every change.
	HandlerIDs []Identifier
}

// Monitor is the read-only view over the drag state and the registry that
// handlers and rendering code query.
type Monitor interface {
	SubscribeToStateChange(fn func(), opts *SubscribeOptions) Unsubscribe
	SubscribeToOffsetChange(fn func()) Unsubscribe

	CanDragSource(id Identifier) bool
	CanDropOnTarget(id Identifier) bool
	IsDragging() bool
	IsDraggingSource(id Identifier) bool
	IsOverTarget(id Identifier, opts *OverOptions) bool

	GetItemType() ItemType
	GetItem() any
	GetSourceID() Identifier
	GetTargetIDs() []Identifier
	GetDropResult() any
	DidDrop() bool
	IsSourcePublic() bool

	GetInitialClientOffset() (XYCoord, bool)
	GetInitialSourceClientOffset() (XYCoord, bool)
	GetClientOffset() (XYCoord, bool)
	GetSourceClientOffset() (XYCoord, bool)
	GetDifferenceFromInitialOffset() (XYCoord, bool)
}

type monitor struct {
	store    *Store
	registry *Registry
}

func (m *monitor) op() *DragOperation {
	return &m.store.state.DragOperation
}

func (m *monitor) offset() *DragOffset {
	return &m.store.state.DragOffset
}

func (m *monitor) SubscribeToStateChange(fn func(), opts *SubscribeOptions) Unsubscribe {
	var handlerIDs []Identifier
	if opts != nil && opts.HandlerIDs != nil {
		handlerIDs = append([]Identifier{}, opts.HandlerIDs...)
	}
	prevStateID := m.store.state.StateID

	return m.store.Subscribe(func() {
		state := &m.store.state
		if state.StateID == prevStateID {
			return
		}
		prevStateID = state.StateID
		if handlerIDs != nil && !state.DirtyHandlerIDs.Intersects(handlerIDs) {
			return
		}
		fn()
	})
}

func (m *monitor) SubscribeToOffsetChange(fn func()) Unsubscribe {
	prev := m.offset().clone()
	return m.store.Subscribe(func() {
		next := *m.offset()
		if next.equal(prev) {
			return
		}
		prev = next.clone()
		fn()
	})
}

func (m *monitor) CanDragSource(id Identifier) bool {
	source, err := m.registry.GetSource(id)
	if err != nil || m.IsDragging() {
		return false
	}
	return source.CanDrag(m, id)
}

func (m *monitor) CanDropOnTarget(id Identifier) bool {
	target, err := m.registry.GetTarget(id)
	if err != nil || !m.IsDragging() || m.DidDrop() {
		return false
	}
	types, _ := m.registry.GetTargetType(id)
	if !types.Matches(m.GetItemType()) {
		return false
	}
	return target.CanDrop(m, id)
}

func (m *monitor) IsDragging() bool {
	return m.op().IsDragging()
}

func (m *monitor) IsDraggingSource(id Identifier) bool {
	source, err := m.registry.GetSource(id)
	if err != nil || !m.IsDragging() || !m.IsSourcePublic() {
		return false
	}
	sourceType, _ := m.registry.GetSourceType(id)
	if sourceType != m.GetItemType() {
		return false
	}
	if reporter, ok := source.(DraggingReporter); ok {
		return reporter.IsDragging(m, id)
	}
	return id == m.GetSourceID()
}

func (m *monitor) IsOverTarget(id Identifier, opts *OverOptions) bool {
	if id == "" {
		return false
	}
	targetIDs := m.op().TargetIDs
	if len(targetIDs) == 0 {
		return false
	}
	types, err := m.registry.GetTargetType(id)
	if err != nil || !types.Matches(m.GetItemType()) {
		return false
	}
	if opts != nil && opts.Shallow {
		return targetIDs[len(targetIDs)-1] == id
	}
	for _, candidate := range targetIDs {
		if candidate == id {
			return true
		}
	}
	return false
}

func (m *monitor) GetItemType() ItemType { return m.op().ItemType }
func (m *monitor) GetItem() any          { return m.op().Item }
func (m *monitor) GetSourceID() Identifier {
	return m.op().SourceID
}

// GetTargetIDs returns the hovered targets outermost-first.
func (m *monitor) GetTargetIDs() []Identifier {
	return append([]Identifier{}, m.op().TargetIDs...)
}

func (m *monitor) GetDropResult() any   { return m.op().DropResult }
func (m *monitor) DidDrop() bool        { return m.op().DidDrop }
func (m *monitor) IsSourcePublic() bool { return m.op().IsSourcePublic }

func deref(c *XYCoord) (XYCoord, bool) {
	if c == nil {
		return XYCoord{}, false
	}
	return *c, true
}

func (m *monitor) GetInitialClientOffset() (XYCoord, bool) {
	return deref(m.offset().InitialClientOffset)
}

func (m *monitor) GetInitialSourceClientOffset() (XYCoord, bool) {
	return deref(m.offset().InitialSourceClientOffset)
}

func (m *monitor) GetClientOffset() (XYCoord, bool) {
	return deref(m.offset().ClientOffset)
}

// GetSourceClientOffset projects where the dragged source's origin is now,
// keeping its initial distance from the pointer.
func (m *monitor) GetSourceClientOffset() (XYCoord, bool) {
	o := m.offset()
	if o.ClientOffset == nil || o.InitialClientOffset == nil || o.InitialSourceClientOffset == nil {
		return XYCoord{}, false
	}
	return o.ClientOffset.Add(o.InitialSourceClientOffset.Sub(*o.InitialClientOffset)), true
}

func (m *monitor) GetDifferenceFromInitialOffset() (XYCoord, bool) {
	o := m.offset()
	if o.ClientOffset == nil || o.InitialClientOffset == nil {
		return XYCoord{}, false
	}
	return o.ClientOffset.Sub(*o.InitialClientOffset), true
}
