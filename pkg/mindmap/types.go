package mindmap

import (
	"fmt"
	"strings"
)

// NodeID addresses a node inside a [Map]. Ids are stable for the lifetime of
// the map; removed ids are never reused.
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Side selects which side of its parent a node is drawn on.
type Side int

const (
	// SideDefault lets the layout resolve the side (root children go
	// bottom/right, descendants inherit their branch side).
	SideDefault Side = iota
	// SideTopOrLeft places the node before its parent on the cross axis.
	SideTopOrLeft
	// SideBottomOrRight places the node after its parent on the cross axis.
	SideBottomOrRight
)

// Orientation is the screen axis along which a node stacks its children.
type Orientation int

const (
	// OrientationInherit uses the parent's orientation (vertical at the root).
	OrientationInherit Orientation = iota
	// OrientationVertical stacks children top to bottom, placed left or right.
	OrientationVertical
	// OrientationHorizontal stacks children left to right, placed above or below.
	OrientationHorizontal
)

// Alignment governs where a node's own content sits, along the stacking axis,
// relative to the block of its stacked children.
type Alignment int

const (
	AlignNotSet Alignment = iota
	AlignByCenter
	AlignFlow
	AlignBeforeParent
	AlignAfterParent
	AlignFirstChildByParent
	AlignLastChildByParent
)

// ChildrenSides restricts the sides a node's children may occupy.
type ChildrenSides int

const (
	// ChildrenSidesAuto allows both sides at the root and the parent's own
	// side everywhere else.
	ChildrenSidesAuto ChildrenSides = iota
	// ChildrenSidesBoth honors each child's explicit side.
	ChildrenSidesBoth
	// ChildrenSidesTopOrLeft forces every child before the parent.
	ChildrenSidesTopOrLeft
	// ChildrenSidesBottomOrRight forces every child after the parent.
	ChildrenSidesBottomOrRight
)

// CloudShape is the outline drawn by a cloud decoration.
type CloudShape int

const (
	CloudRect CloudShape = iota
	CloudRoundRect
	CloudArc
	CloudStar
)

// Cloud is an opaque decoration around a node and its subtree.
type Cloud struct {
	Shape CloudShape
	Color string
}

// Gaps holds the per-node distances the engine reads. Negative values mean
// "not set"; the engine falls back to its configured defaults.
type Gaps struct {
	// MinChildDistance is the minimal distance between consecutive children.
	MinChildDistance int
	// BaseDistance is the distance from this node's content to its children.
	BaseDistance int
	// DistanceToParent is this node's own requested distance to its parent.
	DistanceToParent int
}

// UnsetGaps returns gaps that defer to the engine defaults.
func UnsetGaps() Gaps {
	return Gaps{MinChildDistance: -1, BaseDistance: -1, DistanceToParent: -1}
}

// Node is one vertex of the map. The zero value is not usable; nodes are
// created through [Map.AddChild] and [Map.InsertChild].
type Node struct {
	ID       NodeID
	Key      string // external stable identifier, e.g. from a document
	Text     string
	Parent   NodeID
	Children []NodeID

	Side          Side
	Free          bool
	Summary       bool
	FirstGroup    bool
	HiddenSummary bool

	Orientation   Orientation
	Alignment     Alignment
	ChildrenSides ChildrenSides
	Compact       bool

	Gaps   Gaps
	ShiftX int
	ShiftY int

	// Width and Height, when positive, override the measured content size.
	Width  int
	Height int

	Folded bool
	Hidden bool
	Cloud  *Cloud

	removed bool
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoNode }

// IsSummaryNode reports whether n brackets preceding siblings.
func (n *Node) IsSummaryNode() bool { return n.Summary || n.HiddenSummary }

// ContentVisible reports whether n's own content box is shown.
// Hidden summaries and filtered nodes contribute zero size.
func (n *Node) ContentVisible() bool { return !n.Hidden && !n.HiddenSummary }

// Label returns a single-line label for diagnostics.
func (n *Node) Label() string {
	if n.Text == "" {
		return fmt.Sprintf("#%d", n.ID)
	}
	if i := strings.IndexByte(n.Text, '\n'); i >= 0 {
		return n.Text[:i] + "…"
	}
	return n.Text
}

var sideNames = map[Side]string{
	SideDefault:       "default",
	SideTopOrLeft:     "left",
	SideBottomOrRight: "right",
}

func (s Side) String() string { return sideNames[s] }

// ParseSide accepts "left"/"top", "right"/"bottom" and "" or "default".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SideDefault, nil
	case "left", "top", "top_or_left":
		return SideTopOrLeft, nil
	case "right", "bottom", "bottom_or_right":
		return SideBottomOrRight, nil
	}
	return SideDefault, fmt.Errorf("%w: side %q", ErrInvalidValue, s)
}

var orientationNames = map[Orientation]string{
	OrientationInherit:    "inherit",
	OrientationVertical:   "vertical",
	OrientationHorizontal: "horizontal",
}

func (o Orientation) String() string { return orientationNames[o] }

// ParseOrientation parses "vertical", "horizontal" or "" / "inherit".
func ParseOrientation(s string) (Orientation, error) {
	for o, name := range orientationNames {
		if strings.EqualFold(s, name) {
			return o, nil
		}
	}
	if s == "" {
		return OrientationInherit, nil
	}
	return OrientationInherit, fmt.Errorf("%w: orientation %q", ErrInvalidValue, s)
}

var alignmentNames = map[Alignment]string{
	AlignNotSet:             "not_set",
	AlignByCenter:           "by_center",
	AlignFlow:               "flow",
	AlignBeforeParent:       "before_parent",
	AlignAfterParent:        "after_parent",
	AlignFirstChildByParent: "first_child_by_parent",
	AlignLastChildByParent:  "last_child_by_parent",
}

func (a Alignment) String() string { return alignmentNames[a] }

// ParseAlignment parses the snake_case alignment names; "" means not set.
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return AlignNotSet, nil
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for a, name := range alignmentNames {
		if norm == name {
			return a, nil
		}
	}
	return AlignNotSet, fmt.Errorf("%w: alignment %q", ErrInvalidValue, s)
}

var childrenSidesNames = map[ChildrenSides]string{
	ChildrenSidesAuto:          "auto",
	ChildrenSidesBoth:          "both",
	ChildrenSidesTopOrLeft:     "left",
	ChildrenSidesBottomOrRight: "right",
}

func (c ChildrenSides) String() string { return childrenSidesNames[c] }

// ParseChildrenSides parses "auto", "both", "left" or "right".
func ParseChildrenSides(s string) (ChildrenSides, error) {
	if s == "" {
		return ChildrenSidesAuto, nil
	}
	for c, name := range childrenSidesNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return ChildrenSidesAuto, fmt.Errorf("%w: children sides %q", ErrInvalidValue, s)
}

var cloudShapeNames = map[CloudShape]string{
	CloudRect:      "rect",
	CloudRoundRect: "round_rect",
	CloudArc:       "arc",
	CloudStar:      "star",
}

func (c CloudShape) String() string { return cloudShapeNames[c] }

// ParseCloudShape parses a cloud shape name; "" means rect.
func ParseCloudShape(s string) (CloudShape, error) {
	if s == "" {
		return CloudRect, nil
	}
	for c, name := range cloudShapeNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return CloudRect, fmt.Errorf("%w: cloud shape %q", ErrInvalidValue, s)
}
