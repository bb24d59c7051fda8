// Package layout computes the pixel geometry of a mind map.
//
// Given a [mindmap.Map], the [Engine] assigns every visible node a box: its
// width and height, where its own content sits inside it, and where each of
// its children's boxes sit relative to it. Sizes flow bottom-up, positions
// top-down.
//
// # Strategies
//
// The regular strategy places each child beside its parent on the child's
// side (left or right for vertical nodes, above or below for horizontal
// ones) and stacks the children of one side along the node's axis:
//
//	         ┌────┐
//	         │ a  │
//	┌──────┐ ├────┤ ┐
//	│ root │ │ b  │ │ summary
//	└──────┘ ├────┤ │
//	         │ c  │ ┘
//	         └────┘
//
// Summary nodes bracket a run of preceding siblings and sit beyond the
// group's outer edge, centered on it. Free nodes float at their shift
// offsets and do not take part in stacking. With compaction, adjacent
// subtrees are pushed together until their silhouettes (see
// [stepfunc.Func]) are the minimal distance apart.
//
// The outline strategy, selected by [Params.Outline], ignores all of that
// and renders an indented list.
//
// # Content
//
// The engine does not measure text. A [ContentSizeOracle] reports the size
// of each node's own content and a [CloudHeightOracle] the room its cloud
// needs. [TextOracle] and [CloudOracle] are simple defaults.
//
// # Invalidation
//
// The engine observes its map. Every mutation marks the affected nodes and
// their ancestors dirty; the next read ([Engine.Layout], [Engine.Position],
// [Engine.Validate]) recomputes only what is dirty. Structural
// inconsistencies never abort a pass: the offending node is laid out
// conservatively and the problem is logged once per kind.
package layout
