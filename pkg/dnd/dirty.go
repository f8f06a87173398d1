package dnd

// DirtyIDs lists the handlers whose monitor-derived values may have changed
// with the last dispatch. All marks every handler.
type DirtyIDs struct {
	All bool
	IDs []Identifier
}

func (d DirtyIDs) clone() DirtyIDs {
	d.IDs = append([]Identifier(nil), d.IDs...)
	return d
}

// Intersects reports whether any of handlerIDs is dirty.
func (d DirtyIDs) Intersects(handlerIDs []Identifier) bool {
	if d.All {
		return true
	}
	for _, dirty := range d.IDs {
		for _, id := range handlerIDs {
			if dirty == id {
				return true
			}
		}
	}
	return false
}

func computeDirty(action Action, prevTargets, nextTargets []Identifier) DirtyIDs {
	switch action.Type {
	case ActionHover:
		return hoverDirty(prevTargets, nextTargets)
	default:
		return DirtyIDs{All: true}
	}
}

func hoverDirty(prev, next []Identifier) DirtyIDs {
	if idsEqual(prev, next) {
		return DirtyIDs{}
	}

	var dirty []Identifier
	seen := make(map[Identifier]bool)
	add := func(id Identifier) {
		if id != "" && !seen[id] {
			seen[id] = true
			dirty = append(dirty, id)
		}
	}
	for _, id := range symmetricDifference(prev, next) {
		add(id)
	}

	// Outermost-first storage puts the innermost target last.
	if len(prev) > 0 && len(next) > 0 {
		prevInner, nextInner := prev[len(prev)-1], next[len(next)-1]
		if prevInner != nextInner {
			add(prevInner)
			add(nextInner)
		}
	}
	return DirtyIDs{IDs: dirty}
}

func symmetricDifference(a, b []Identifier) []Identifier {
	inA := make(map[Identifier]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	inB := make(map[Identifier]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var out []Identifier
	for _, id := range a {
		if !inB[id] {
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !inA[id] {
			out = append(out, id)
		}
	}
	return out
}
