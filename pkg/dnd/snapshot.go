package dnd

// Snapshot is a flat, serializable view of the drag state as the monitor
// reports it.
type Snapshot struct {
	StateID      int          `json:"stateId" yaml:"state_id"`
	Dragging     bool         `json:"dragging" yaml:"dragging"`
	ItemType     ItemType     `json:"itemType,omitempty" yaml:"item_type,omitempty"`
	Item         any          `json:"item,omitempty" yaml:"item,omitempty"`
	SourceID     Identifier   `json:"sourceId,omitempty" yaml:"source_id,omitempty"`
	SourcePublic bool         `json:"sourcePublic" yaml:"source_public"`
	TargetIDs    []Identifier `json:"targetIds" yaml:"target_ids"`
	DidDrop      bool         `json:"didDrop" yaml:"did_drop"`
	DropResult   any          `json:"dropResult,omitempty" yaml:"drop_result,omitempty"`
	ClientOffset *XYCoord     `json:"clientOffset,omitempty" yaml:"client_offset,omitempty"`
}

// Snapshot captures the current state.
func (m *Manager) Snapshot() Snapshot {
	state := m.store.GetState()
	op := state.DragOperation
	return Snapshot{
		StateID:      state.StateID,
		Dragging:     op.IsDragging(),
		ItemType:     op.ItemType,
		Item:         op.Item,
		SourceID:     op.SourceID,
		SourcePublic: op.IsSourcePublic,
		TargetIDs:    op.TargetIDs,
		DidDrop:      op.DidDrop,
		DropResult:   op.DropResult,
		ClientOffset: state.DragOffset.ClientOffset,
	}
}
