package dnd

import (
	"github.com/sirupsen/logrus"

	"github.com/grovetools/dragdrop/errors"
)

// BeginDragOptions tunes BeginDrag.
type BeginDragOptions struct {
	// PublishSource exposes the source to IsDraggingSource immediately.
	// Backends that wait for a movement threshold pass false and call
	// PublishDragSource later.
	PublishSource bool
	ClientOffset  *XYCoord
	// GetSourceClientOffset reports the origin of a candidate source. It is
	// consulted only when ClientOffset is set.
	GetSourceClientOffset func(id Identifier) (XYCoord, bool)
}

// DefaultBeginDragOptions publishes the source right away.
func DefaultBeginDragOptions() BeginDragOptions {
	return BeginDragOptions{PublishSource: true}
}

// HoverOptions tunes Hover.
type HoverOptions struct {
	ClientOffset *XYCoord
}

// Actions drives the drag lifecycle. Every method runs synchronously and
// fails without touching state when its precondition does not hold.
type Actions struct {
	store    *Store
	registry *Registry
	monitor  *monitor
	log      *logrus.Entry
}

// BeginDrag starts a drag on the first of sourceIDs whose CanDrag holds and
// whose BeginDrag returns an item.
func (a *Actions) BeginDrag(sourceIDs []Identifier, opts *BeginDragOptions) error {
	if opts == nil {
		defaults := DefaultBeginDragOptions()
		opts = &defaults
	}
	if a.monitor.IsDragging() {
		return errors.AlreadyDragging()
	}
	for _, id := range sourceIDs {
		if !a.registry.IsSourceHandle(id) {
			return errors.HandlerNotFound(string(id), RoleSource.String())
		}
	}

	a.store.Dispatch(Action{Type: ActionInitCoords, Payload: Payload{ClientOffset: opts.ClientOffset}})

	for _, id := range sourceIDs {
		if !a.monitor.CanDragSource(id) {
			continue
		}
		var sourceClientOffset *XYCoord
		if opts.ClientOffset != nil && opts.GetSourceClientOffset != nil {
			if origin, ok := opts.GetSourceClientOffset(id); ok {
				sourceClientOffset = &origin
			}
		}

		// CanDrag may have unregistered the source.
		source, err := a.registry.GetSource(id)
		if err != nil {
			continue
		}
		// Pinned while BeginDrag runs so a removal from inside it is
		// deferred and seen below.
		a.registry.pinSource(id)
		item := source.BeginDrag(a.monitor, id)
		if isNil(item) || a.registry.IsPendingRemoval(id) {
			a.registry.releaseSource()
			continue
		}
		itemType, _ := a.registry.GetSourceType(id)

		a.store.Dispatch(Action{Type: ActionBeginDrag, Payload: Payload{
			ItemType:           itemType,
			Item:               item,
			SourceID:           id,
			IsSourcePublic:     opts.PublishSource,
			ClientOffset:       opts.ClientOffset,
			SourceClientOffset: sourceClientOffset,
		}})
		a.log.WithFields(logrus.Fields{
			"source":   id,
			"itemType": itemType,
			"public":   opts.PublishSource,
		}).Debug("Drag started")
		return nil
	}

	a.store.Dispatch(Action{Type: ActionInitCoords})
	candidates := make([]string, len(sourceIDs))
	for i, id := range sourceIDs {
		candidates[i] = string(id)
	}
	a.log.WithField("candidates", candidates).Debug("No source produced an item")
	return errors.NoItemToDrag(candidates)
}

// PublishDragSource exposes the dragged source to IsDraggingSource.
func (a *Actions) PublishDragSource() error {
	if !a.monitor.IsDragging() {
		return errors.NotDragging("publishDragSource")
	}
	a.store.Dispatch(Action{Type: ActionPublishDragSource})
	return nil
}

// Hover records the targets under the pointer. targetIDs is ordered
// innermost-first; targets not accepting the dragged type and targets
// pending removal are left out, and the rest is stored outermost-first.
func (a *Actions) Hover(targetIDs []Identifier, opts *HoverOptions) error {
	if !a.monitor.IsDragging() {
		return errors.NotDragging("hover")
	}
	if a.monitor.DidDrop() {
		return errors.AlreadyDropped("hover")
	}

	seen := make(map[Identifier]bool, len(targetIDs))
	for _, id := range targetIDs {
		if seen[id] {
			return errors.DuplicateTargetIDs(string(id))
		}
		seen[id] = true
		if !a.registry.IsTargetHandle(id) {
			return errors.HandlerNotFound(string(id), RoleTarget.String())
		}
	}

	itemType := a.monitor.GetItemType()
	stored := make([]Identifier, 0, len(targetIDs))
	for i := len(targetIDs) - 1; i >= 0; i-- {
		id := targetIDs[i]
		if a.registry.IsPendingRemoval(id) {
			continue
		}
		types, _ := a.registry.GetTargetType(id)
		if !types.Matches(itemType) {
			continue
		}
		stored = append(stored, id)
	}

	// Callbacks may unregister any hovered target. Pinning both the old and
	// the new set defers those removals until the set is replaced below.
	a.registry.pinTargets(stored)
	for _, id := range stored {
		if a.registry.IsPendingRemoval(id) {
			continue
		}
		target, err := a.registry.GetTarget(id)
		if err != nil {
			continue
		}
		target.Hover(a.monitor, id)
	}
	stored = a.withoutPending(stored)

	var clientOffset *XYCoord
	if opts != nil {
		clientOffset = opts.ClientOffset
	}
	a.store.Dispatch(Action{Type: ActionHover, Payload: Payload{TargetIDs: stored, ClientOffset: clientOffset}})
	a.registry.setHoveredTargets(stored)
	return nil
}

func (a *Actions) withoutPending(ids []Identifier) []Identifier {
	kept := ids[:0]
	for _, id := range ids {
		if a.registry.IsTargetHandle(id) && !a.registry.IsPendingRemoval(id) {
			kept = append(kept, id)
		}
	}
	return kept
}

// Drop asks the hovered targets for a result, innermost first. The first
// droppable target returning a non-nil result wins.
func (a *Actions) Drop() error {
	if !a.monitor.IsDragging() {
		return errors.NotDragging("drop")
	}
	if a.monitor.DidDrop() {
		return errors.AlreadyDropped("drop")
	}

	targetIDs := a.monitor.GetTargetIDs()
	var result any
	var winner Identifier
	for i := len(targetIDs) - 1; i >= 0; i-- {
		id := targetIDs[i]
		if !a.monitor.CanDropOnTarget(id) {
			continue
		}
		target, err := a.registry.GetTarget(id)
		if err != nil {
			continue
		}
		if r := target.Drop(a.monitor, id); !isNil(r) {
			result, winner = r, id
			break
		}
	}

	a.store.Dispatch(Action{Type: ActionDrop, Payload: Payload{DropResult: result}})
	a.registry.setHoveredTargets(nil)
	a.log.WithFields(logrus.Fields{
		"target":    winner,
		"hasResult": result != nil,
	}).Debug("Dropped")
	return nil
}

// EndDrag notifies the dragged source, resets the operation to idle and
// erases registry entries that were removed during the drag.
func (a *Actions) EndDrag() error {
	if !a.monitor.IsDragging() {
		return errors.NotDragging("endDrag")
	}

	id := a.monitor.GetSourceID()
	if source, err := a.registry.GetSource(id); err == nil {
		source.EndDrag(a.monitor, id)
	}

	didDrop := a.monitor.DidDrop()
	a.store.Dispatch(Action{Type: ActionEndDrag})
	a.registry.releaseSource()
	a.registry.setHoveredTargets(nil)
	a.log.WithFields(logrus.Fields{
		"source":  id,
		"didDrop": didDrop,
	}).Debug("Drag ended")
	return nil
}
