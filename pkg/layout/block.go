package layout

// Block is an axis-aligned rectangle in screen pixels, origin top-left,
// y growing downwards. Right and Bottom are exclusive.
type Block struct {
	Left, Top     int
	Right, Bottom int
}

// BlockAt returns the block with origin (x, y) and size w×h.
func BlockAt(x, y, w, h int) Block {
	return Block{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal span of the block.
func (b Block) Width() int { return b.Right - b.Left }

// Height returns the vertical span of the block.
func (b Block) Height() int { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the block, rounded down.
func (b Block) CenterX() int { return floorDiv(b.Left+b.Right, 2) }

// CenterY returns the vertical center point of the block, rounded down.
func (b Block) CenterY() int { return floorDiv(b.Top+b.Bottom, 2) }

// Empty reports whether the block covers no pixel.
func (b Block) Empty() bool { return b.Right <= b.Left || b.Bottom <= b.Top }

// Translate moves the block by (dx, dy).
func (b Block) Translate(dx, dy int) Block {
	return Block{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Grow expands the block by dx on the left and right and dy on top and bottom.
func (b Block) Grow(dx, dy int) Block {
	return Block{Left: b.Left - dx, Top: b.Top - dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Union returns the smallest block containing b and o. Empty blocks are
// ignored.
func (b Block) Union(o Block) Block {
	switch {
	case o.Empty():
		return b
	case b.Empty():
		return o
	}
	return Block{
		Left:   min(b.Left, o.Left),
		Top:    min(b.Top, o.Top),
		Right:  max(b.Right, o.Right),
		Bottom: max(b.Bottom, o.Bottom),
	}
}

// Overlaps reports whether b and o share at least one pixel.
func (b Block) Overlaps(o Block) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}

// Insets are non-negative distances measured inwards from each edge of a box.
type Insets struct {
	Top, Bottom, Left, Right int
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
