package logic

// Navigator tracks the highlighted row of a dropdown and the window of rows
// that fits on screen
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a navigator showing at most height rows
func NewNavigator(height int) *Navigator {
	if height < 1 {
		height = 1
	}
	return &Navigator{viewportHeight: height}
}

// SetItems updates the row count, clamping the cursor into range
func (n *Navigator) SetItems(total int) {
	n.totalItems = total
	if n.selectedIndex >= total {
		n.selectedIndex = total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}

// Reset moves the cursor back to the first row
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Cursor returns the highlighted row, or -1 when there are no rows
func (n *Navigator) Cursor() int {
	if n.totalItems == 0 {
		return -1
	}
	return n.selectedIndex
}

// Up moves the cursor up, wrapping to the last row
func (n *Navigator) Up() {
	if n.totalItems == 0 {
		return
	}
	if n.selectedIndex > 0 {
		n.selectedIndex--
	} else {
		n.selectedIndex = n.totalItems - 1
	}
	n.ensureSelectedVisible()
}

// Down moves the cursor down, wrapping to the first row
func (n *Navigator) Down() {
	if n.totalItems == 0 {
		return
	}
	if n.selectedIndex < n.totalItems-1 {
		n.selectedIndex++
	} else {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}

// Select puts the cursor on index if it is in range
func (n *Navigator) Select(index int) {
	if index < 0 || index >= n.totalItems {
		return
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
}

// Window returns the half-open range of rows to render and whether
// scroll indicators are needed above and below it
func (n *Navigator) Window() (start, end int, more Overflow) {
	start = n.viewportOffset
	end = start + n.viewportHeight
	if end > n.totalItems {
		end = n.totalItems
	}
	return start, end, Overflow{Above: start > 0, Below: end < n.totalItems}
}

// Overflow reports hidden rows on either side of the window
type Overflow struct {
	Above bool
	Below bool
}

func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	maxOffset := n.totalItems - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
