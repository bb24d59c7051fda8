package layout

import "github.com/matzehuels/mindlayout/pkg/mindmap"

// ChildInfo is the per-child input of [NewSummaryLevels].
type ChildInfo struct {
	Summary    bool
	FirstGroup bool
	Free       bool // neither a summary nor a group member
	Side       mindmap.Side
}

// SummaryLevels is the grouping structure of one node's visible children.
// Levels and groups are computed independently for each side.
type SummaryLevels struct {
	// Levels[i] is 0 for an item and k > 0 for a summary bracketing a run of
	// lower-level siblings.
	Levels []int
	// GroupStart[i] is the index of the first child bracketed by summary i,
	// or -1 for items. The group is every same-side, non-free child in
	// [GroupStart[i], i).
	GroupStart []int
	// Summarized[i] reports whether item i is bracketed by some summary.
	Summarized []bool
	// HighestLevel is the largest level present.
	HighestLevel int
	// HasTopOrLeft and HasBottomOrRight tell which sides are occupied.
	HasTopOrLeft     bool
	HasBottomOrRight bool
	// Demoted lists summaries that bracket nothing and are laid out as items.
	Demoted []int
}

// Ignoring is the trivial structure of a node whose children take no part
// in stacking.
var Ignoring = SummaryLevels{}

// NewSummaryLevels scans children per side. A summary's level is one more
// than the number of summaries immediately before it on its side. Its group
// reaches back past lower-level children until a summary of the same or a
// higher level, or until a child of level k-1 marked FirstGroup, which is
// included. Free children are skipped. A summary whose group would be empty
// is demoted to an item.
func NewSummaryLevels(children []ChildInfo) SummaryLevels {
	n := len(children)
	if n == 0 {
		return Ignoring
	}
	sl := SummaryLevels{
		Levels:     make([]int, n),
		GroupStart: make([]int, n),
		Summarized: make([]bool, n),
	}
	for i := range sl.GroupStart {
		sl.GroupStart[i] = -1
	}
	for _, side := range []mindmap.Side{mindmap.SideTopOrLeft, mindmap.SideBottomOrRight} {
		var idx []int
		present := false
		for i, c := range children {
			if c.Side != side {
				continue
			}
			present = true
			if !c.Free {
				idx = append(idx, i)
			}
		}
		if !present {
			continue
		}
		if side == mindmap.SideTopOrLeft {
			sl.HasTopOrLeft = true
		} else {
			sl.HasBottomOrRight = true
		}
		sl.scanSide(children, idx)
	}
	return sl
}

func (sl *SummaryLevels) scanSide(children []ChildInfo, idx []int) {
	run := 0 // consecutive summaries just before the current position
	for j, i := range idx {
		if !children[i].Summary {
			sl.Levels[i] = 0
			run = 0
			continue
		}
		level := run + 1
		start := j
		for p := j - 1; p >= 0; p-- {
			pi := idx[p]
			if sl.Levels[pi] >= level {
				break
			}
			start = p
			if children[pi].FirstGroup && sl.Levels[pi] == level-1 {
				break
			}
		}
		if start == j {
			sl.Levels[i] = 0
			sl.Demoted = append(sl.Demoted, i)
			run = 0
			continue
		}
		sl.Levels[i] = level
		sl.GroupStart[i] = idx[start]
		sl.HighestLevel = max(sl.HighestLevel, level)
		for p := start; p < j; p++ {
			if pi := idx[p]; sl.Levels[pi] == 0 {
				sl.Summarized[pi] = true
			}
		}
		run++
	}
}

// Members returns the indices of the children bracketed by summary i, in
// order. It is empty for items.
func (sl SummaryLevels) Members(i int, children []ChildInfo) []int {
	if i >= len(sl.GroupStart) || sl.GroupStart[i] < 0 {
		return nil
	}
	var out []int
	for p := sl.GroupStart[i]; p < i; p++ {
		if children[p].Side == children[i].Side && !children[p].Free {
			out = append(out, p)
		}
	}
	return out
}

// IsSummary reports whether child i acts as a summary.
func (sl SummaryLevels) IsSummary(i int) bool {
	return i < len(sl.Levels) && sl.Levels[i] > 0
}
