package dustbin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/tui/theme"
)

// Top is the first screen row of the board. Callers render two lines of
// their own above View.
const Top = 2

const (
	gap        = 2
	binHeight  = 6
	itemWidth  = 12
	itemHeight = 3
	minBin     = 14
	maxBin     = 26
)

// Layout assigns cell rectangles for a screen width. A width of zero uses
// the narrowest bins.
func (b *Board) Layout(width int) {
	binWidth := minBin
	if n := len(b.Bins); n > 0 && width > 0 {
		binWidth = (width - gap*(n-1)) / n
	}
	binWidth = max(minBin, min(maxBin, binWidth))

	for i, bin := range b.Bins {
		bin.rect = pointer.Rect{X: i * (binWidth + gap), Y: Top, Width: binWidth, Height: binHeight}
	}
	itemTop := Top + binHeight + 1
	for i, item := range b.Items {
		item.rect = pointer.Rect{X: i * (itemWidth + gap), Y: itemTop, Width: itemWidth, Height: itemHeight}
	}
}

// View renders the bins above the items. Each box occupies exactly its
// layout rectangle.
func (b *Board) View(t *theme.Theme) string {
	monitor := b.manager.GetMonitor()
	spacer := strings.Repeat(" ", gap)

	bins := make([]string, 0, 2*len(b.Bins))
	for i, bin := range b.Bins {
		if i > 0 {
			bins = append(bins, spacer)
		}
		bins = append(bins, b.renderBin(t, monitor, bin))
	}

	items := make([]string, 0, 2*len(b.Items))
	for i, item := range b.Items {
		if i > 0 {
			items = append(items, spacer)
		}
		items = append(items, b.renderItem(t, monitor, item))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, bins...) + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (b *Board) renderBin(t *theme.Theme, monitor dnd.Monitor, bin *Bin) string {
	style := t.Target
	switch {
	case monitor.IsOverTarget(bin.id, &dnd.OverOptions{Shallow: true}) && monitor.CanDropOnTarget(bin.id):
		style = t.TargetOver
	case monitor.CanDropOnTarget(bin.id):
		style = t.TargetActive
	}

	accepts := make([]string, len(bin.Accepts))
	for i, typ := range bin.Accepts {
		accepts[i] = string(typ)
	}
	width := bin.rect.Width - 2
	body := []string{
		clip(bin.Name, width),
		t.Muted.Render(clip(strings.Join(accepts, ","), width)),
		clip(fmt.Sprintf("%d dropped", len(bin.Items)), width),
	}
	if n := len(bin.Items); n > 0 {
		body = append(body, t.Muted.Render(clip("last: "+bin.Items[n-1], width)))
	}
	return style.
		Width(width).
		Height(bin.rect.Height - 2).
		Render(strings.Join(body, "\n"))
}

func (b *Board) renderItem(t *theme.Theme, monitor dnd.Monitor, item *Item) string {
	style := t.Source
	// Source styles pad one cell on each side.
	width := item.rect.Width - 4
	label := clip(item.Name, width)
	switch {
	case monitor.IsDraggingSource(item.id):
		style = t.SourceDragging
	case item.DroppedIn != "":
		style = t.SourceDragging
		label = t.Muted.Render(clip("in "+item.DroppedIn, width))
	}
	return style.
		Width(item.rect.Width - 2).
		Height(item.rect.Height - 2).
		Render(label)
}

// clip cuts s to at most width runes so a line never wraps inside a box.
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
