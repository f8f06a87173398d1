package dnd

import (
	"reflect"
)

// DragOperation is the single in-flight drag, or its idle zero value.
type DragOperation struct {
	ItemType       ItemType     `json:"itemType,omitempty"`
	Item           any          `json:"item,omitempty"`
	SourceID       Identifier   `json:"sourceId,omitempty"`
	TargetIDs      []Identifier `json:"targetIds"`
	DropResult     any          `json:"dropResult,omitempty"`
	DidDrop        bool         `json:"didDrop"`
	IsSourcePublic bool         `json:"isSourcePublic"`
}

// IsDragging reports whether a drag is in flight.
func (op DragOperation) IsDragging() bool {
	return op.SourceID != ""
}

func (op DragOperation) clone() DragOperation {
	op.TargetIDs = append([]Identifier{}, op.TargetIDs...)
	return op
}

// equal compares two operations shallowly. Item and DropResult are only
// written by BEGIN_DRAG, DROP and END_DRAG, so other actions leave them
// alone and they are compared by identity only when payloads is set.
func (op DragOperation) equal(other DragOperation, payloads bool) bool {
	if op.ItemType != other.ItemType ||
		op.SourceID != other.SourceID ||
		op.DidDrop != other.DidDrop ||
		op.IsSourcePublic != other.IsSourcePublic ||
		!idsEqual(op.TargetIDs, other.TargetIDs) {
		return false
	}
	if !payloads {
		return true
	}
	return sameValue(op.Item, other.Item) && sameValue(op.DropResult, other.DropResult)
}

// sameValue is == for comparable values. Maps, slices, funcs and structs
// holding them never compare equal, so writing one counts as a change.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

func writesPayloads(t ActionType) bool {
	return t == ActionBeginDrag || t == ActionDrop || t == ActionEndDrag
}

// DragOffset tracks pointer positions for the current drag. Nil fields are
// unset.
type DragOffset struct {
	InitialClientOffset       *XYCoord `json:"initialClientOffset,omitempty"`
	InitialSourceClientOffset *XYCoord `json:"initialSourceClientOffset,omitempty"`
	ClientOffset              *XYCoord `json:"clientOffset,omitempty"`
}

func (o DragOffset) clone() DragOffset {
	return DragOffset{
		InitialClientOffset:       copyCoord(o.InitialClientOffset),
		InitialSourceClientOffset: copyCoord(o.InitialSourceClientOffset),
		ClientOffset:              copyCoord(o.ClientOffset),
	}
}

func (o DragOffset) equal(other DragOffset) bool {
	return coordsEqual(o.InitialClientOffset, other.InitialClientOffset) &&
		coordsEqual(o.InitialSourceClientOffset, other.InitialSourceClientOffset) &&
		coordsEqual(o.ClientOffset, other.ClientOffset)
}

// State is a full store snapshot.
type State struct {
	DragOperation   DragOperation `json:"dragOperation"`
	DragOffset      DragOffset    `json:"dragOffset"`
	DirtyHandlerIDs DirtyIDs      `json:"-"`
	// StateID increases every time a dispatch changes the snapshot.
	StateID int `json:"stateId"`
}

func (s State) clone() State {
	s.DragOperation = s.DragOperation.clone()
	s.DragOffset = s.DragOffset.clone()
	s.DirtyHandlerIDs = s.DirtyHandlerIDs.clone()
	return s
}

func (s State) observablyEqual(other State, action ActionType) bool {
	return s.DragOperation.equal(other.DragOperation, writesPayloads(action)) &&
		s.DragOffset.equal(other.DragOffset)
}

type storeListener struct {
	fn     func()
	active bool
}

// Store owns the drag state and notifies subscribers when it changes.
type Store struct {
	state     State
	listeners []*storeListener
}

// NewStore creates a store in the idle state.
func NewStore() *Store {
	return &Store{state: State{DragOperation: DragOperation{TargetIDs: []Identifier{}}}}
}

// GetState returns a copy of the current snapshot.
func (s *Store) GetState() State {
	return s.state.clone()
}

// Dispatch reduces action into the state. Subscribers are notified only when
// the result differs from the previous snapshot; the return value reports
// whether it did.
func (s *Store) Dispatch(action Action) bool {
	prev := s.state
	next := reduce(prev, action)
	if prev.observablyEqual(next, action.Type) {
		return false
	}
	next.StateID = prev.StateID + 1
	s.state = next

	listeners := append([]*storeListener(nil), s.listeners...)
	for _, l := range listeners {
		if l.active {
			l.fn()
		}
	}
	return true
}

// Subscribe registers fn for change notifications.
func (s *Store) Subscribe(fn func()) Unsubscribe {
	l := &storeListener{fn: fn, active: true}
	s.listeners = append(s.listeners, l)
	return OnceUnsubscribe(func() {
		l.active = false
		for i, candidate := range s.listeners {
			if candidate == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	})
}

func idsEqual(a, b []Identifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyCoord(c *XYCoord) *XYCoord {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func coordsEqual(a, b *XYCoord) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
