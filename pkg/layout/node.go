package layout

import (
	"github.com/matzehuels/mindlayout/pkg/layout/stepfunc"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// Silhouettes are the outline of a subtree in its own box coordinates: Top
// and Bottom map x to the smallest and largest occupied y, Left and Right
// map y to the smallest and largest occupied x. Only content boxes (with
// their cloud padding) of the node and its stacked descendants contribute.
type Silhouettes struct {
	Top, Bottom stepfunc.Func
	Left, Right stepfunc.Func
}

// Translate shifts all four silhouettes by (dx, dy) in screen space.
func (s Silhouettes) Translate(dx, dy int) Silhouettes {
	return Silhouettes{
		Top:    s.Top.Translate(dx, dy),
		Bottom: s.Bottom.Translate(dx, dy),
		Left:   s.Left.Translate(dy, dx),
		Right:  s.Right.Translate(dy, dx),
	}
}

// merge folds o into s.
func (s *Silhouettes) merge(o Silhouettes) {
	s.Top = s.Top.Combine(o.Top, stepfunc.Min)
	s.Bottom = s.Bottom.Combine(o.Bottom, stepfunc.Max)
	s.Left = s.Left.Combine(o.Left, stepfunc.Min)
	s.Right = s.Right.Combine(o.Right, stepfunc.Max)
}

func rectSilhouettes(b Block) Silhouettes {
	return Silhouettes{
		Top:    stepfunc.New(b.Left, b.Right, b.Top),
		Bottom: stepfunc.New(b.Left, b.Right, b.Bottom),
		Left:   stepfunc.New(b.Top, b.Bottom, b.Left),
		Right:  stepfunc.New(b.Top, b.Bottom, b.Right),
	}
}

// LayoutNode holds the computed geometry of one node. All coordinates are
// screen pixels; child positions are relative to this node's box origin.
type LayoutNode struct {
	ID mindmap.NodeID

	// ContentX and ContentY locate the content box inside the node's box.
	ContentX, ContentY int
	ContentW, ContentH int
	// CloudExtra is the extra height reserved for the cloud decoration.
	CloudExtra int

	// Width and Height are the size of the whole box: margin, content,
	// cloud and every visible descendant.
	Width, Height int

	// Overlap holds how far free descendants protrude beyond the stacked
	// part of the box on each side. A parent stacking this node along an
	// axis lets neighbours intrude by the matching pair of insets.
	Overlap Insets
	// Slack is the depth of the deepest notch between the stacked part of
	// the inner box and the silhouettes on each side. Compaction may push a
	// neighbour that far into the box.
	Slack Insets

	// Children lists the visible children in order; ChildX and ChildY are
	// their box origins.
	Children []mindmap.NodeID
	ChildX   []int
	ChildY   []int
	// Levels, Groups and ChildSides describe how the children were placed.
	// Groups[i] is the first child bracketed by summary i, or -1.
	Levels     []int
	Groups     []int
	ChildSides []mindmap.Side
	ChildFree  []bool

	// MinContentWidth raises the measured content width. The driver sets it
	// on members of a summary group.
	MinContentWidth int

	Silhouettes Silhouettes

	// Axis is the stacking axis the children were placed along.
	Axis Axis

	parent mindmap.NodeID
	dirty  bool
}

func newLayoutNode(id mindmap.NodeID) *LayoutNode {
	return &LayoutNode{ID: id, parent: mindmap.NoNode, dirty: true}
}

// Box returns the node box at the origin.
func (l *LayoutNode) Box() Block { return BlockAt(0, 0, l.Width, l.Height) }

// Content returns the content box in node coordinates.
func (l *LayoutNode) Content() Block {
	return BlockAt(l.ContentX, l.ContentY, l.ContentW, l.ContentH)
}

// ChildBox returns the box of the i-th visible child in node coordinates.
func (l *LayoutNode) ChildBox(i int, child *LayoutNode) Block {
	return BlockAt(l.ChildX[i], l.ChildY[i], child.Width, child.Height)
}

// TopOverlap is how far a preceding sibling may intrude into this node's
// inner box when its parent stacks along a: the free protrusion plus the
// silhouette slack. A compacting parent never overlaps two stacked
// siblings by more than the smaller of their allowances.
func (l *LayoutNode) TopOverlap(a Axis) int {
	before, _ := a.overlaps(l.Overlap)
	slack, _ := a.overlaps(l.Slack)
	return before + slack
}

// BottomOverlap is the matching allowance towards the following sibling.
func (l *LayoutNode) BottomOverlap(a Axis) int {
	_, after := a.overlaps(l.Overlap)
	_, slack := a.overlaps(l.Slack)
	return after + slack
}

// Dirty reports whether the node awaits recomputation.
func (l *LayoutNode) Dirty() bool { return l.dirty }

// reset clears the per-pass output before a strategy fills it.
func (l *LayoutNode) reset(n int) {
	l.Children = l.Children[:0]
	l.ChildX = make([]int, n)
	l.ChildY = make([]int, n)
	l.Levels = make([]int, n)
	l.Groups = make([]int, n)
	l.ChildSides = make([]mindmap.Side, n)
	l.ChildFree = make([]bool, n)
	l.Overlap = Insets{}
	l.Slack = Insets{}
	l.Silhouettes = Silhouettes{}
}
