package layout

import "github.com/matzehuels/mindlayout/pkg/mindmap"

// Params are the view-wide layout settings. Pixel values are unzoomed; the
// engine scales them by Zoom.
type Params struct {
	Zoom float64

	// SpaceAround is the margin kept around every node box.
	SpaceAround int
	// DefaultVGap is the gap unit the extra-gap policy is derived from.
	DefaultVGap int
	// MinimalChildDistance applies where a node sets no minimal distance.
	MinimalChildDistance int
	// BaseDistance applies where a node sets no base distance to children.
	BaseDistance int
	// SummaryGap separates a summary from the outer edge of its group.
	SummaryGap int
	// SummarizedIndent is added to the distance of items under a summary.
	SummarizedIndent int

	OutlineIndent int
	OutlineGap    int

	// Outline selects the cascading outline strategy for every node.
	Outline bool
	// Compact enables silhouette compaction everywhere; nodes can also
	// enable it for their own children.
	Compact bool
	// DefaultAlignment resolves mindmap.AlignNotSet.
	DefaultAlignment mindmap.Alignment
}

// DefaultParams returns the stock settings.
func DefaultParams() Params {
	return Params{
		Zoom:                 1,
		SpaceAround:          4,
		DefaultVGap:          3,
		MinimalChildDistance: 3,
		BaseDistance:         20,
		SummaryGap:           14,
		SummarizedIndent:     4,
		OutlineIndent:        20,
		OutlineGap:           4,
		DefaultAlignment:     mindmap.AlignByCenter,
	}
}

// scale converts an unzoomed length to pixels.
func (p Params) scale(v int) int { return zoomed(v, p.Zoom) }

func (p Params) alignment(a mindmap.Alignment) mindmap.Alignment {
	if a != mindmap.AlignNotSet {
		return a
	}
	if p.DefaultAlignment != mindmap.AlignNotSet {
		return p.DefaultAlignment
	}
	return mindmap.AlignByCenter
}

// extraGapForChildren caps the slack distributed around a child whose
// subtree is taller than its content. Small minimal distances allow up to two
// default gaps on top of the distance; large ones grow sub-linearly.
func extraGapForChildren(minDist, defaultVGap int) int {
	if 3*defaultVGap > minDist {
		return minDist + 2*defaultVGap
	}
	return (minDist + 22*defaultVGap) / 6
}

// gapOr returns v scaled, or def scaled when v is unset (negative).
func (p Params) gapOr(v, def int) int {
	if v < 0 {
		return p.scale(def)
	}
	return p.scale(v)
}
