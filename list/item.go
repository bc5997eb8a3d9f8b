package list

// Item is one entry of the logical sequence a View presents. The view
// owns the sequence; render state (bindings, hover, selection) is
// derived from it each frame and never stored on the item.
type Item struct {
	// ID uniquely identifies the item within the sequence.
	ID string
	// Name is the display title of the item.
	Name string
	// Icon is the resource id of the item's icon, usually a URL.
	// Empty when the item has none.
	Icon string
}

// Viewport is the inclusive index range of the rows intersecting the
// visible region. It is recomputed from the scroll offset every frame.
type Viewport struct {
	Top, Bottom int
}

// Range widens the viewport by buffer rows on each side and clips the
// result to the sequence length n, returning a half-open index range.
// Rows inside the range hold render slots; rows outside do not.
func (v Viewport) Range(buffer, n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}
	start = v.Top - buffer
	if start < 0 {
		start = 0
	}
	end = v.Bottom + buffer + 1
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
