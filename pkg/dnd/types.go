package dnd

import (
	"reflect"
)

// Identifier is the opaque id the registry assigns to a source or target.
type Identifier string

// Role tags a registry entry as a drag source or a drop target.
type Role int

const (
	RoleSource Role = iota + 1
	RoleTarget
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	default:
		return "unknown"
	}
}

// ItemType classifies what a source produces.
type ItemType string

// TypeSet is the ordered set of item types a drop target accepts.
type TypeSet []ItemType

// Types builds a TypeSet.
func Types(types ...ItemType) TypeSet {
	return TypeSet(types)
}

// Matches reports whether t is one of the accepted types.
func (s TypeSet) Matches(t ItemType) bool {
	for _, candidate := range s {
		if candidate == t {
			return true
		}
	}
	return false
}

// Equal compares two sets ignoring order and repetition.
func (s TypeSet) Equal(other TypeSet) bool {
	for _, t := range s {
		if !other.Matches(t) {
			return false
		}
	}
	for _, t := range other {
		if !s.Matches(t) {
			return false
		}
	}
	return true
}

func (s TypeSet) clone() TypeSet {
	return append(TypeSet(nil), s...)
}

// XYCoord is a pointer position in the backend's coordinate space.
type XYCoord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns c + o.
func (c XYCoord) Add(o XYCoord) XYCoord {
	return XYCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c XYCoord) Sub(o XYCoord) XYCoord {
	return XYCoord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Unsubscribe detaches a listener or a native connection.
type Unsubscribe func()

// DragSource is the capability set of a draggable entity.
//
// BeginDrag returns the item being dragged; returning nil declines the drag
// and lets the next candidate source try. EndDrag is called exactly once per
// drag with the monitor still reflecting the final drop result.
type DragSource interface {
	CanDrag(m Monitor, id Identifier) bool
	BeginDrag(m Monitor, id Identifier) any
	EndDrag(m Monitor, id Identifier)
}

// DraggingReporter is implemented by sources that can claim an in-flight
// drag started by another id, for example after being unregistered and
// registered again while the drag was in progress.
type DraggingReporter interface {
	IsDragging(m Monitor, id Identifier) bool
}

// DropTarget is the capability set of a drop zone.
//
// Drop returns the drop result; nil means the target declined and the next
// outer target is consulted.
type DropTarget interface {
	CanDrop(m Monitor, id Identifier) bool
	Hover(m Monitor, id Identifier)
	Drop(m Monitor, id Identifier) any
}

// SourceFuncs adapts plain functions to DragSource. Nil functions fall back
// to defaults: CanDrag allows the drag, BeginDrag yields no item, EndDrag
// does nothing.
type SourceFuncs struct {
	CanDragFunc    func(m Monitor, id Identifier) bool
	BeginDragFunc  func(m Monitor, id Identifier) any
	EndDragFunc    func(m Monitor, id Identifier)
	IsDraggingFunc func(m Monitor, id Identifier) bool
}

func (s *SourceFuncs) CanDrag(m Monitor, id Identifier) bool {
	if s.CanDragFunc == nil {
		return true
	}
	return s.CanDragFunc(m, id)
}

func (s *SourceFuncs) BeginDrag(m Monitor, id Identifier) any {
	if s.BeginDragFunc == nil {
		return nil
	}
	return s.BeginDragFunc(m, id)
}

func (s *SourceFuncs) EndDrag(m Monitor, id Identifier) {
	if s.EndDragFunc != nil {
		s.EndDragFunc(m, id)
	}
}

func (s *SourceFuncs) IsDragging(m Monitor, id Identifier) bool {
	if s.IsDraggingFunc == nil {
		return m.GetSourceID() == id
	}
	return s.IsDraggingFunc(m, id)
}

// TargetFuncs adapts plain functions to DropTarget. Nil functions fall back
// to defaults: CanDrop accepts, Hover does nothing, Drop yields no result.
type TargetFuncs struct {
	CanDropFunc func(m Monitor, id Identifier) bool
	HoverFunc   func(m Monitor, id Identifier)
	DropFunc    func(m Monitor, id Identifier) any
}

func (t *TargetFuncs) CanDrop(m Monitor, id Identifier) bool {
	if t.CanDropFunc == nil {
		return true
	}
	return t.CanDropFunc(m, id)
}

func (t *TargetFuncs) Hover(m Monitor, id Identifier) {
	if t.HoverFunc != nil {
		t.HoverFunc(m, id)
	}
}

func (t *TargetFuncs) Drop(m Monitor, id Identifier) any {
	if t.DropFunc == nil {
		return nil
	}
	return t.DropFunc(m, id)
}

// isNil treats typed nil pointers, maps, slices and funcs stored in an
// interface as absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
