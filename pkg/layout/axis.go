package layout

import (
	"github.com/matzehuels/mindlayout/pkg/layout/stepfunc"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// Axis maps between screen coordinates (x, y) and the logical frame of a node
// that stacks its children: u runs across the stacking direction (the side a
// child is placed on), v runs along it (the order children are stacked in).
//
// A vertical node stacks top to bottom, so u=x and v=y. A horizontal node
// stacks left to right, so u=y and v=x.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

// AxisOf returns the axis a node with orientation o stacks along.
func AxisOf(o mindmap.Orientation) Axis {
	if o == mindmap.OrientationHorizontal {
		return Horizontal
	}
	return Vertical
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ToScreen maps a logical pair to screen coordinates. It serves points and
// sizes alike.
func (a Axis) ToScreen(u, v int) (x, y int) {
	if a == Horizontal {
		return v, u
	}
	return u, v
}

// FromScreen maps a screen pair to the logical frame.
func (a Axis) FromScreen(x, y int) (u, v int) {
	if a == Horizontal {
		return y, x
	}
	return x, y
}

// leading returns the silhouette facing the start of the stacking direction
// as a function of u.
func (a Axis) leading(s *Silhouettes) stepfunc.Func {
	if a == Horizontal {
		return s.Left
	}
	return s.Top
}

// trailing returns the silhouette facing the end of the stacking direction.
func (a Axis) trailing(s *Silhouettes) stepfunc.Func {
	if a == Horizontal {
		return s.Right
	}
	return s.Bottom
}

// overlaps picks the insets before and after a box along this axis.
func (a Axis) overlaps(in Insets) (before, after int) {
	if a == Horizontal {
		return in.Left, in.Right
	}
	return in.Top, in.Bottom
}
