// Package dustbin is the sample board used by dndctl demo and dndctl serve:
// a row of bins accepting different item types above a row of draggable
// items.
package dustbin

import (
	"fmt"

	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
)

// Item is a draggable box. It can be dropped once.
type Item struct {
	Name      string       `json:"name"`
	Type      dnd.ItemType `json:"type"`
	DroppedIn string       `json:"droppedIn,omitempty"`

	id   dnd.Identifier
	rect pointer.Rect
}

// Bounds implements pointer.Node.
func (i *Item) Bounds() pointer.Rect { return i.rect }

// ID returns the registry id.
func (i *Item) ID() dnd.Identifier { return i.id }

func (i *Item) CanDrag(dnd.Monitor, dnd.Identifier) bool { return i.DroppedIn == "" }

func (i *Item) BeginDrag(dnd.Monitor, dnd.Identifier) any { return i }

func (i *Item) EndDrag(m dnd.Monitor, _ dnd.Identifier) {
	if !m.DidDrop() {
		return
	}
	if result, ok := m.GetDropResult().(DropResult); ok {
		i.DroppedIn = result.Bin
	}
}

// DropResult is what a bin returns from Drop.
type DropResult struct {
	Bin string `json:"bin"`
}

// Bin is a drop target accepting a set of item types.
type Bin struct {
	Name    string      `json:"name"`
	Accepts dnd.TypeSet `json:"accepts"`
	Items   []string    `json:"items,omitempty"`

	id   dnd.Identifier
	rect pointer.Rect
}

// Bounds implements pointer.Node.
func (b *Bin) Bounds() pointer.Rect { return b.rect }

// ID returns the registry id.
func (b *Bin) ID() dnd.Identifier { return b.id }

func (b *Bin) CanDrop(dnd.Monitor, dnd.Identifier) bool { return true }

func (b *Bin) Hover(dnd.Monitor, dnd.Identifier) {}

func (b *Bin) Drop(m dnd.Monitor, _ dnd.Identifier) any {
	if item, ok := m.GetItem().(*Item); ok {
		b.Items = append(b.Items, item.Name)
	}
	return DropResult{Bin: b.Name}
}

// Board owns the items and bins registered on one manager.
type Board struct {
	manager *dnd.Manager
	Items   []*Item
	Bins    []*Bin

	release []dnd.Unsubscribe
}

func defaultItems() []*Item {
	return []*Item{
		{Name: "Glass", Type: "glass"},
		{Name: "Banana", Type: "food"},
		{Name: "Paper", Type: "paper"},
	}
}

func defaultBins() []*Bin {
	return []*Bin{
		{Name: "Glass", Accepts: dnd.TypeSet{"glass"}},
		{Name: "Food", Accepts: dnd.TypeSet{"food"}},
		{Name: "Any", Accepts: dnd.TypeSet{"glass", "food", "paper"}},
	}
}

// New registers the default items and bins on m, connects them to the
// manager's backend and lays them out with Layout(0).
func New(m *dnd.Manager) (*Board, error) {
	b := &Board{
		manager: m,
		Items:   defaultItems(),
		Bins:    defaultBins(),
	}
	b.Layout(0)

	registry := m.GetRegistry()
	for _, bin := range b.Bins {
		id, err := registry.AddTarget(bin.Accepts, bin)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to register bin %s: %w", bin.Name, err)
		}
		bin.id = id
		b.release = append(b.release, func() { _ = registry.RemoveTarget(id) })
		if err := b.connect(dnd.RoleTarget, id, bin); err != nil {
			return nil, err
		}
	}
	for _, item := range b.Items {
		id, err := registry.AddSource(item.Type, item)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to register item %s: %w", item.Name, err)
		}
		item.id = id
		b.release = append(b.release, func() { _ = registry.RemoveSource(id) })
		if err := b.connect(dnd.RoleSource, id, item); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) connect(role dnd.Role, id dnd.Identifier, node pointer.Node) error {
	backend := b.manager.GetBackend()
	if backend == nil {
		return nil
	}
	connect := backend.ConnectDragSource
	if role == dnd.RoleTarget {
		connect = backend.ConnectDropTarget
	}
	disconnect, err := connect(id, node)
	if err != nil {
		b.Close()
		return fmt.Errorf("failed to connect %s: %w", id, err)
	}
	b.release = append(b.release, disconnect)
	return nil
}

// Close disconnects every node and unregisters every handler, in reverse.
func (b *Board) Close() {
	for i := len(b.release) - 1; i >= 0; i-- {
		b.release[i]()
	}
	b.release = nil
}

// Reset puts every item back and empties the bins.
func (b *Board) Reset() {
	for _, item := range b.Items {
		item.DroppedIn = ""
	}
	for _, bin := range b.Bins {
		bin.Items = nil
	}
}

// Item returns the item registered under id.
func (b *Board) Item(id dnd.Identifier) (*Item, bool) {
	for _, item := range b.Items {
		if item.id == id {
			return item, true
		}
	}
	return nil, false
}

// Bin returns the bin registered under id.
func (b *Board) Bin(id dnd.Identifier) (*Bin, bool) {
	for _, bin := range b.Bins {
		if bin.id == id {
			return bin, true
		}
	}
	return nil, false
}

// Dragging reports whether a drag is in progress on the board's manager.
func (b *Board) Dragging() bool {
	return b.manager.GetMonitor().IsDragging()
}

// Status describes the current drag in one line.
func (b *Board) Status() string {
	monitor := b.manager.GetMonitor()
	if !monitor.IsDragging() {
		return "Drag an item into a bin."
	}
	item, _ := monitor.GetItem().(*Item)
	name := "item"
	if item != nil {
		name = item.Name
	}
	targets := monitor.GetTargetIDs()
	if len(targets) == 0 {
		return fmt.Sprintf("Dragging %s", name)
	}
	bin, ok := b.Bin(targets[len(targets)-1])
	if !ok {
		return fmt.Sprintf("Dragging %s", name)
	}
	if monitor.CanDropOnTarget(bin.id) {
		return fmt.Sprintf("Release to drop %s into %s", name, bin.Name)
	}
	return fmt.Sprintf("%s does not take %s", bin.Name, name)
}
