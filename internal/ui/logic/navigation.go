package logic

import "hunterprice/internal/scroll"

// Navigator handles the cursor and viewport of a list whose rows all take
// the same number of lines
type Navigator struct {
	selectedIndex  int
	viewportOffset int // first visible row
	viewportHeight int // in lines
	rowHeight      int
	total          int
}

// NewNavigator creates a navigator for rows of rowHeight lines
func NewNavigator(rowHeight int) *Navigator {
	if rowHeight < 1 {
		rowHeight = 1
	}
	return &Navigator{rowHeight: rowHeight, viewportHeight: rowHeight}
}

// Reset moves back to the top of an empty list
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
	n.total = 0
}

// SetTotal updates the number of rows, keeping the cursor in range
func (n *Navigator) SetTotal(total int) {
	n.total = max(total, 0)
	n.ensureSelectedVisible()
}

// SetViewportHeight updates the number of lines available to the list
func (n *Navigator) SetViewportHeight(lines int) {
	n.viewportHeight = max(lines, 1)
	n.ensureSelectedVisible()
}

// Total returns the number of rows
func (n *Navigator) Total() int {
	return n.total
}

// SelectedIndex returns the row under the cursor
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// VisibleRows is the number of rows that fit in the viewport
func (n *Navigator) VisibleRows() int {
	return max(n.viewportHeight/n.rowHeight, 1)
}

// Window returns the visible rows as [start, end)
func (n *Navigator) Window() (int, int) {
	end := min(n.viewportOffset+n.VisibleRows(), n.total)
	return n.viewportOffset, max(end, n.viewportOffset)
}

// Move moves the cursor by delta rows
func (n *Navigator) Move(delta int) {
	n.SetSelectedIndex(n.selectedIndex + delta)
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
}

func (n *Navigator) PageUp() {
	n.Move(-n.VisibleRows())
}

func (n *Navigator) PageDown() {
	n.Move(n.VisibleRows())
}

func (n *Navigator) Home() {
	n.SetSelectedIndex(0)
}

func (n *Navigator) End() {
	n.SetSelectedIndex(n.total - 1)
}

// Scroll moves the viewport by rows, dragging the cursor along so it stays
// visible. This is what the mouse wheel does.
func (n *Navigator) Scroll(rows int) {
	n.viewportOffset += rows
	n.clampOffset()
	start, end := n.Window()
	if n.selectedIndex < start {
		n.selectedIndex = start
	}
	if end > start && n.selectedIndex >= end {
		n.selectedIndex = end - 1
	}
}

// Geometry reports the viewport position in lines
func (n *Navigator) Geometry() scroll.Geometry {
	return scroll.Geometry{
		Offset:         n.viewportOffset * n.rowHeight,
		ViewportHeight: n.viewportHeight,
		ContentHeight:  n.total * n.rowHeight,
	}
}

func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}

	visible := n.VisibleRows()
	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	// If selected item is below viewport, scroll down
	if n.selectedIndex >= n.viewportOffset+visible {
		n.viewportOffset = n.selectedIndex - visible + 1
	}
	n.clampOffset()
}

func (n *Navigator) clampOffset() {
	maxOffset := max(n.total-n.VisibleRows(), 0)
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
