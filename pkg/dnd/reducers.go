package dnd

// ActionType names a store transition.
type ActionType string

const (
	ActionInitCoords        ActionType = "INIT_COORDS"
	ActionBeginDrag         ActionType = "BEGIN_DRAG"
	ActionPublishDragSource ActionType = "PUBLISH_DRAG_SOURCE"
	ActionHover             ActionType = "HOVER"
	ActionDrop              ActionType = "DROP"
	ActionEndDrag           ActionType = "END_DRAG"
)

// Payload carries the fields an action needs; unused fields stay zero.
type Payload struct {
	ItemType           ItemType
	Item               any
	SourceID           Identifier
	TargetIDs          []Identifier
	IsSourcePublic     bool
	DropResult         any
	ClientOffset       *XYCoord
	SourceClientOffset *XYCoord
}

// Action is one store transition.
type Action struct {
	Type    ActionType
	Payload Payload
}

func reduce(state State, action Action) State {
	next := State{
		StateID:       state.StateID,
		DragOffset:    reduceDragOffset(state.DragOffset, action),
		DragOperation: reduceDragOperation(state.DragOperation, action),
	}
	next.DirtyHandlerIDs = computeDirty(action, state.DragOperation.TargetIDs, next.DragOperation.TargetIDs)
	return next
}

func reduceDragOffset(offset DragOffset, action Action) DragOffset {
	p := action.Payload
	switch action.Type {
	case ActionInitCoords, ActionBeginDrag:
		return DragOffset{
			InitialSourceClientOffset: copyCoord(p.SourceClientOffset),
			InitialClientOffset:       copyCoord(p.ClientOffset),
			ClientOffset:              copyCoord(p.ClientOffset),
		}
	case ActionHover:
		if coordsEqual(offset.ClientOffset, p.ClientOffset) {
			return offset
		}
		offset.ClientOffset = copyCoord(p.ClientOffset)
		return offset
	case ActionDrop, ActionEndDrag:
		return DragOffset{}
	default:
		return offset
	}
}

func reduceDragOperation(op DragOperation, action Action) DragOperation {
	p := action.Payload
	switch action.Type {
	case ActionBeginDrag:
		op.ItemType = p.ItemType
		op.Item = p.Item
		op.SourceID = p.SourceID
		op.IsSourcePublic = p.IsSourcePublic
		op.DropResult = nil
		op.DidDrop = false
	case ActionPublishDragSource:
		op.IsSourcePublic = true
	case ActionHover:
		op.TargetIDs = append([]Identifier{}, p.TargetIDs...)
	case ActionDrop:
		op.DropResult = p.DropResult
		op.DidDrop = true
		op.TargetIDs = []Identifier{}
	case ActionEndDrag:
		return DragOperation{TargetIDs: []Identifier{}}
	}
	return op
}
