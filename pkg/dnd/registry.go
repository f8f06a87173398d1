package dnd

import (
	"strconv"

	"github.com/grovetools/dragdrop/errors"
)

type handlerEntry struct {
	role    Role
	types   TypeSet
	source  DragSource
	target  DropTarget
	pending bool
}

// Registry maps identifiers to registered sources and targets.
//
// Entries taking part in the current drag are pinned: the dragged source and
// every hovered target. Removing a pinned entry only flags it as pending
// removal; lookups keep resolving it until the drag releases the pin, at
// which point it is erased.
type Registry struct {
	entries map[Identifier]*handlerEntry
	nextID  uint64

	pinnedSource  Identifier
	pinnedTargets map[Identifier]struct{}

	// onCountChange runs after every insert or erase with the new size.
	onCountChange func(count int) error
}

func newRegistry() *Registry {
	return &Registry{
		entries:       make(map[Identifier]*handlerEntry),
		pinnedTargets: make(map[Identifier]struct{}),
	}
}

// AddSource registers a source producing items of type t.
func (r *Registry) AddSource(t ItemType, source DragSource) (Identifier, error) {
	return r.Add(RoleSource, Types(t), source)
}

// AddTarget registers a target accepting any of types.
func (r *Registry) AddTarget(types TypeSet, target DropTarget) (Identifier, error) {
	return r.Add(RoleTarget, types, target)
}

// Add registers handler under role. The handler must implement DragSource
// for RoleSource and DropTarget for RoleTarget.
func (r *Registry) Add(role Role, types TypeSet, handler any) (Identifier, error) {
	entry := &handlerEntry{role: role}

	switch role {
	case RoleSource:
		source, ok := handler.(DragSource)
		if !ok || isNil(handler) {
			return "", errors.InvalidHandlerKind(role.String(), handler)
		}
		entry.source = source
	case RoleTarget:
		target, ok := handler.(DropTarget)
		if !ok || isNil(handler) {
			return "", errors.InvalidHandlerKind(role.String(), handler)
		}
		entry.target = target
	default:
		return "", errors.InvalidHandlerKind(role.String(), handler)
	}

	if err := validateTypes(role, types); err != nil {
		return "", err
	}
	entry.types = types.clone()

	id := r.allocate(role)
	r.entries[id] = entry
	if err := r.countChanged(); err != nil {
		delete(r.entries, id)
		return "", err
	}
	return id, nil
}

func validateTypes(role Role, types TypeSet) error {
	switch {
	case role == RoleSource && len(types) != 1:
		return errors.InvalidItemType(role.String(), "a source declares exactly one type")
	case len(types) == 0:
		return errors.InvalidItemType(role.String(), "at least one type is required")
	}
	for _, t := range types {
		if t == "" {
			return errors.InvalidItemType(role.String(), "type must not be empty")
		}
	}
	return nil
}

func (r *Registry) allocate(role Role) Identifier {
	r.nextID++
	prefix := "T"
	if role == RoleSource {
		prefix = "S"
	}
	return Identifier(prefix + strconv.FormatUint(r.nextID, 10))
}

func (r *Registry) countChanged() error {
	if r.onCountChange == nil {
		return nil
	}
	return r.onCountChange(len(r.entries))
}

// RemoveSource unregisters a source. A source being dragged stays resolvable
// until the drag ends.
func (r *Registry) RemoveSource(id Identifier) error {
	return r.remove(id, RoleSource)
}

// RemoveTarget unregisters a target. A hovered target stays resolvable until
// it is no longer hovered or the drag ends.
func (r *Registry) RemoveTarget(id Identifier) error {
	return r.remove(id, RoleTarget)
}

func (r *Registry) remove(id Identifier, role Role) error {
	entry, ok := r.entries[id]
	if !ok || entry.role != role || entry.pending {
		return errors.HandlerNotFound(string(id), role.String())
	}
	if r.isPinned(id) {
		entry.pending = true
		return nil
	}
	r.erase(id)
	return nil
}

func (r *Registry) erase(id Identifier) {
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	// Shrinking never fails; only the first registration sets a backend up.
	_ = r.countChanged()
}

func (r *Registry) isPinned(id Identifier) bool {
	if id == r.pinnedSource {
		return true
	}
	_, ok := r.pinnedTargets[id]
	return ok
}

func (r *Registry) lookup(id Identifier, role Role) (*handlerEntry, error) {
	entry, ok := r.entries[id]
	if !ok || entry.role != role {
		return nil, errors.HandlerNotFound(string(id), role.String())
	}
	return entry, nil
}

// GetSource resolves a source, including one pending removal.
func (r *Registry) GetSource(id Identifier) (DragSource, error) {
	entry, err := r.lookup(id, RoleSource)
	if err != nil {
		return nil, err
	}
	return entry.source, nil
}

// GetTarget resolves a target, including one pending removal.
func (r *Registry) GetTarget(id Identifier) (DropTarget, error) {
	entry, err := r.lookup(id, RoleTarget)
	if err != nil {
		return nil, err
	}
	return entry.target, nil
}

func (r *Registry) GetSourceType(id Identifier) (ItemType, error) {
	entry, err := r.lookup(id, RoleSource)
	if err != nil {
		return "", err
	}
	return entry.types[0], nil
}

func (r *Registry) GetTargetType(id Identifier) (TypeSet, error) {
	entry, err := r.lookup(id, RoleTarget)
	if err != nil {
		return nil, err
	}
	return entry.types.clone(), nil
}

func (r *Registry) IsSourceHandle(id Identifier) bool {
	entry, ok := r.entries[id]
	return ok && entry.role == RoleSource
}

func (r *Registry) IsTargetHandle(id Identifier) bool {
	entry, ok := r.entries[id]
	return ok && entry.role == RoleTarget
}

// IsPendingRemoval reports whether id was removed while pinned by a drag.
func (r *Registry) IsPendingRemoval(id Identifier) bool {
	entry, ok := r.entries[id]
	return ok && entry.pending
}

// Len counts registered entries, including those pending removal.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ReceiveSource swaps the handler behind id in place. The item type must be
// unchanged.
func (r *Registry) ReceiveSource(id Identifier, t ItemType, source DragSource) error {
	entry, err := r.receivable(id, RoleSource, source)
	if err != nil {
		return err
	}
	if entry.types[0] != t {
		return errors.TypeMismatch(string(id), entry.types[0], t)
	}
	entry.source = source
	return nil
}

// ReceiveTarget swaps the handler behind id in place. The accepted type set
// must be unchanged.
func (r *Registry) ReceiveTarget(id Identifier, types TypeSet, target DropTarget) error {
	entry, err := r.receivable(id, RoleTarget, target)
	if err != nil {
		return err
	}
	if !entry.types.Equal(types) {
		return errors.TypeMismatch(string(id), entry.types, types)
	}
	entry.target = target
	return nil
}

func (r *Registry) receivable(id Identifier, role Role, handler any) (*handlerEntry, error) {
	entry, err := r.lookup(id, role)
	if err != nil {
		return nil, err
	}
	if entry.pending {
		return nil, errors.HandlerNotFound(string(id), role.String())
	}
	if isNil(handler) {
		return nil, errors.InvalidHandlerKind(role.String(), handler)
	}
	return entry, nil
}

func (r *Registry) pinSource(id Identifier) {
	r.pinnedSource = id
}

func (r *Registry) releaseSource() {
	id := r.pinnedSource
	r.pinnedSource = ""
	if r.IsPendingRemoval(id) {
		r.erase(id)
	}
}

// pinTargets adds ids to the pinned target set without releasing any.
func (r *Registry) pinTargets(ids []Identifier) {
	if r.pinnedTargets == nil {
		r.pinnedTargets = make(map[Identifier]struct{}, len(ids))
	}
	for _, id := range ids {
		r.pinnedTargets[id] = struct{}{}
	}
}

// setHoveredTargets repins the target set, erasing pending entries that
// dropped out of it.
func (r *Registry) setHoveredTargets(ids []Identifier) {
	next := make(map[Identifier]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	prev := r.pinnedTargets
	r.pinnedTargets = next
	for id := range prev {
		if _, still := next[id]; still {
			continue
		}
		if r.IsPendingRemoval(id) {
			r.erase(id)
		}
	}
}
