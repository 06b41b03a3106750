package frontend

// reservedRows are the screen rows the selection screen uses for something
// other than entries: header, blank line and help footer.
const reservedRows = 3

// Selection is the state of the selection screen: which entry is
// highlighted, which entry is the first visible one, and which are enabled.
type Selection struct {
	cursor  int
	offset  int
	height  int
	enabled []bool
}

func NewSelection(count, height int) *Selection {
	enabled := make([]bool, count)
	for index := range enabled {
		enabled[index] = true
	}
	it := &Selection{
		height:  height,
		enabled: enabled,
	}
	it.clamp()
	return it
}

func (it *Selection) Len() int {
	return len(it.enabled)
}

func (it *Selection) Cursor() int {
	return it.cursor
}

func (it *Selection) Offset() int {
	return it.offset
}

func (it *Selection) Enabled(index int) bool {
	return index >= 0 && index < len(it.enabled) && it.enabled[index]
}

// Viewport is the number of entries that fit on screen, never negative.
func (it *Selection) Viewport() int {
	return max(0, it.height-reservedRows)
}

func (it *Selection) Up() {
	it.cursor = max(it.cursor-1, 0)
	it.clamp()
}

func (it *Selection) Down() {
	it.cursor = max(min(it.cursor+1, len(it.enabled)-1), 0)
	it.clamp()
}

func (it *Selection) Toggle() {
	if it.cursor < len(it.enabled) {
		it.enabled[it.cursor] = !it.enabled[it.cursor]
	}
}

func (it *Selection) Resize(height int) {
	it.height = height
	it.clamp()
}

// Visible returns the half open range of entries on screen.
func (it *Selection) Visible() (int, int) {
	end := min(len(it.enabled), it.offset+it.Viewport())
	if end < it.offset {
		return it.offset, it.offset
	}
	return it.offset, end
}

// Chosen returns the indexes of enabled entries in their original order.
func (it *Selection) Chosen() []int {
	result := make([]int, 0, len(it.enabled))
	for index, enabled := range it.enabled {
		if enabled {
			result = append(result, index)
		}
	}
	return result
}

// clamp keeps the cursor inside the window and the window inside the list.
func (it *Selection) clamp() {
	view := it.Viewport()
	if view == 0 {
		it.offset = it.cursor
		return
	}
	if it.cursor >= it.offset+view {
		it.offset = it.cursor - view + 1
	}
	if it.cursor < it.offset {
		it.offset = it.cursor
	}
	if len(it.enabled)-it.offset < view {
		it.offset = max(0, len(it.enabled)-view)
	}
}
