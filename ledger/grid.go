package ledger

// Key is a directional or activation key routed to a picker grid.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
)

// Navigate maps a key press to a new cursor index inside a fixed-column grid
// of count items. It returns the new index and whether the current item was
// activated (Enter). Moves that would leave the grid are clamped to no-ops;
// an empty grid ignores every key. The same function backs every picker —
// callers parameterize it with their live filtered item count.
func Navigate(key Key, index, count, cols int) (int, bool) {
	if count == 0 {
		return index, false
	}

	switch key {
	case KeyLeft:
		if index > 0 {
			return index - 1, false
		}
	case KeyRight:
		if index < count-1 {
			return index + 1, false
		}
	case KeyUp:
		if cols > 0 && index-cols >= 0 {
			return index - cols, false
		}
	case KeyDown:
		if cols > 0 && index+cols < count {
			return index + cols, false
		}
	case KeyEnter:
		return index, true
	}
	return index, false
}
