package pointer

import (
	"math"
	"sort"

	"github.com/grovetools/dragdrop/pkg/dnd"
)

// Rect is a rectangle of terminal cells. X and Y are the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bounds lets a bare Rect serve as a Node.
func (r Rect) Bounds() Rect { return r }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

func (r Rect) area() int { return r.Width * r.Height }

// Node is anything the pointer can hit. Bounds is read on every event, so
// nodes that move or resize are tracked without reconnecting.
type Node interface {
	Bounds() Rect
}

type connection struct {
	node Node
	seq  uint64
}

// hitTest returns the ids whose node contains (x, y), innermost first.
// Smaller nodes are treated as nested inside larger ones; equal sizes go to
// the most recently connected node.
func hitTest(conns map[dnd.Identifier]connection, x, y int) []dnd.Identifier {
	type hit struct {
		id   dnd.Identifier
		area int
		seq  uint64
	}
	var hits []hit
	for id, c := range conns {
		bounds := c.node.Bounds()
		if bounds.Contains(x, y) {
			hits = append(hits, hit{id: id, area: bounds.area(), seq: c.seq})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].area != hits[j].area {
			return hits[i].area < hits[j].area
		}
		return hits[i].seq > hits[j].seq
	})

	ids := make([]dnd.Identifier, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

func distance(a, b dnd.XYCoord) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
