package layout

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// ContentSizeOracle reports the intrinsic size of a node's own content box,
// independent of its children. Implementations must be pure: the same node
// state, zoom and minWidth always give the same answer.
type ContentSizeOracle interface {
	ContentSize(n *mindmap.Node, zoom float64, minWidth int) (width, height int)
}

// ContentSizeFunc adapts a function to ContentSizeOracle.
type ContentSizeFunc func(n *mindmap.Node, zoom float64, minWidth int) (int, int)

func (f ContentSizeFunc) ContentSize(n *mindmap.Node, zoom float64, minWidth int) (int, int) {
	return f(n, zoom, minWidth)
}

// CloudHeightOracle reports the extra vertical space a node's cloud needs.
type CloudHeightOracle interface {
	CloudExtraHeight(n *mindmap.Node, zoom float64) int
}

// CloudHeightFunc adapts a function to CloudHeightOracle.
type CloudHeightFunc func(n *mindmap.Node, zoom float64) int

func (f CloudHeightFunc) CloudExtraHeight(n *mindmap.Node, zoom float64) int { return f(n, zoom) }

// TextOracle measures plain-text labels on a fixed character grid. Wide
// runes count as two cells. A node with an explicit Width or Height uses it
// instead of the measured value.
type TextOracle struct {
	CharWidth  int
	LineHeight int
	Padding    int
	// MaxWidth wraps longer lines; zero disables wrapping.
	MaxWidth int
}

// DefaultTextOracle returns the stock text metrics.
func DefaultTextOracle() TextOracle {
	return TextOracle{CharWidth: 7, LineHeight: 16, Padding: 4, MaxWidth: 320}
}

func (o TextOracle) ContentSize(n *mindmap.Node, zoom float64, minWidth int) (int, int) {
	if !n.ContentVisible() {
		return 0, 0
	}
	w, h := o.measure(n.Text)
	if n.Width > 0 {
		w = n.Width
	}
	if n.Height > 0 {
		h = n.Height
	}
	w, h = zoomed(w, zoom), zoomed(h, zoom)
	return max(w, minWidth), h
}

func (o TextOracle) measure(text string) (int, int) {
	inner := 0
	if o.MaxWidth > 0 {
		inner = max(o.MaxWidth-2*o.Padding, o.CharWidth)
	}
	width, lines := 0, 0
	for _, line := range strings.Split(text, "\n") {
		lw := runewidth.StringWidth(line) * o.CharWidth
		if inner > 0 && lw > inner {
			lines += (lw + inner - 1) / inner
			lw = inner
		} else {
			lines++
		}
		width = max(width, lw)
	}
	return width + 2*o.Padding, lines*o.LineHeight + 2*o.Padding
}

// CloudOracle sizes cloud decorations from a base margin. Shapes with
// bulging outlines need more room than plain rectangles.
type CloudOracle struct {
	Margin int
}

// DefaultCloudOracle returns the stock cloud margin.
func DefaultCloudOracle() CloudOracle { return CloudOracle{Margin: 8} }

func (o CloudOracle) CloudExtraHeight(n *mindmap.Node, zoom float64) int {
	if n.Cloud == nil || !n.ContentVisible() {
		return 0
	}
	m := o.Margin
	switch n.Cloud.Shape {
	case mindmap.CloudRoundRect:
		m = m * 3 / 2
	case mindmap.CloudArc:
		m *= 2
	case mindmap.CloudStar:
		m *= 3
	}
	return zoomed(m, zoom)
}

func zoomed(v int, zoom float64) int {
	if zoom == 1 {
		return v
	}
	return int(math.Round(float64(v) * zoom))
}
