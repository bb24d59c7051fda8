package layout

import (
	"math"

	"github.com/matzehuels/mindlayout/pkg/layout/stepfunc"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// verticalStrategy is the main layout: children are placed beside the
// parent content on their side and stacked along the node's axis, summaries
// bracket their groups from further out, and free children float at their
// shift offsets.
type verticalStrategy struct{}

var sides = [...]mindmap.Side{mindmap.SideTopOrLeft, mindmap.SideBottomOrRight}

func (verticalStrategy) layout(pl *placement) {
	pl.prepare()
	cu, cv := pl.axis.FromScreen(pl.cw, pl.ch)
	for _, side := range sides {
		pl.crossPass(side, cu)
		pl.stackPass(side, cv)
	}
	pl.placeFree(cu)
	pl.assemble()
}

// itemGap is the distance between the parent content edge and a stacked
// item's inner box.
func (pl *placement) itemGap(k *kid, summarized bool) int {
	gap := pl.baseDist
	if d := k.node.Gaps.DistanceToParent; d >= 0 {
		gap = max(gap, pl.p.scale(d))
	}
	if summarized {
		gap += pl.p.scale(pl.p.SummarizedIndent)
	}
	return gap
}

// crossPass places the non-free children of one side across the stacking
// axis. Items sit next to the parent content; a summary sits beyond the
// outermost edge of the group it brackets.
func (pl *placement) crossPass(side mindmap.Side, cu int) {
	summaryGap := pl.p.scale(pl.p.SummaryGap)
	for i := range pl.kids {
		k := &pl.kids[i]
		if k.side != side || k.free {
			continue
		}
		var edge int
		if outer, ok := pl.groupOuterEdge(i); ok {
			edge = outer + summaryGap
		} else {
			edge = pl.itemGap(k, pl.levels.Summarized[i])
		}
		k.far = edge + k.bu
		if side == mindmap.SideBottomOrRight {
			k.u = cu + edge
		} else {
			k.u = -edge - k.bu
		}
	}
}

// groupOuterEdge returns the largest far edge among the stacked members of
// summary i.
func (pl *placement) groupOuterEdge(i int) (int, bool) {
	if !pl.levels.IsSummary(i) {
		return 0, false
	}
	outer, found := 0, false
	pl.eachMember(i, func(m *kid) {
		outer, found = max(outer, m.far), true
	})
	return outer, found
}

// eachMember calls fn for every stacked child bracketed by summary i.
func (pl *placement) eachMember(i int, fn func(m *kid)) {
	start := pl.levels.GroupStart[i]
	if start < 0 {
		return
	}
	for p := start; p < i; p++ {
		if m := &pl.kids[p]; m.side == pl.kids[i].side && !m.free {
			fn(m)
		}
	}
}

// stackState is the cursor of one side's stacking pass.
type stackState struct {
	y       int
	first   bool
	prevTop int
	placed  stepfunc.Func // trailing silhouette of everything stacked so far
	stacked []int
}

// stackPass stacks the non-free children of one side along the axis, then
// shifts the block so it lines up with the parent content per the alignment
// policy. Afterwards every v is relative to the parent content top, so both
// sides share one frame. Children with an empty box take no room and no gap.
func (pl *placement) stackPass(side mindmap.Side, cv int) {
	st := &stackState{first: true}
	var empty []int
	for i := range pl.kids {
		k := &pl.kids[i]
		if k.side != side || k.free {
			continue
		}
		switch {
		case pl.placeSummary(i, st):
		case k.empty:
			k.v = st.y
			empty = append(empty, i)
			continue
		default:
			pl.placeItem(i, st)
		}
		st.stacked = append(st.stacked, i)
	}
	pl.alignBlock(st.stacked, empty, cv)
}

// placeItem stacks child i below the cursor. The child's free protrusion
// above its stacked extent may reach into the gap. In compact mode its
// leading silhouette is pulled up towards the silhouettes already placed,
// but never so far that its inner box overlaps an earlier sibling's by more
// than the smaller of their allowances.
func (pl *placement) placeItem(i int, st *stackState) {
	k := &pl.kids[i]
	sa := pl.spaceAround()

	extra := 0
	if slack := k.coreHeight() - (k.cv + k.cloudV); slack > 0 {
		limit := extraGapForChildren(pl.minDist, pl.p.scale(pl.p.DefaultVGap))
		extra = min(slack, limit)
	}
	above := extra / 2
	if st.first && (pl.align == mindmap.AlignFirstChildByParent || pl.align == mindmap.AlignAfterParent) {
		above = 0
	}

	gap := above
	if !st.first {
		gap += pl.minDist
	}
	shift := pl.p.scale(k.node.ShiftY)
	if !st.first {
		shift = max(shift, -gap)
	}
	y := st.y + gap + shift

	if pl.compact && !st.first {
		k.v = y - k.before
		pulled := y
		if d, ok := k.silhouette(pl.axis, sa, true).Distance(st.placed); ok {
			pulled = y + pl.minDist - d
		}
		y = max(pulled, st.prevTop, pl.overlapFloor(k, st.stacked))
	}

	k.v = y - k.before
	st.prevTop = y
	st.y = k.coreBottom() + extra - above
	st.placed = st.placed.Combine(k.silhouette(pl.axis, sa, false), stepfunc.Max)
	st.first = false
}

// overlapFloor is the smallest stacked top for k that keeps its inner box
// within the overlap allowance of every child stacked so far.
func (pl *placement) overlapFloor(k *kid, stacked []int) int {
	floor := math.MinInt
	allow := k.ln.TopOverlap(pl.axis)
	for _, j := range stacked {
		p := &pl.kids[j]
		floor = max(floor, p.v+p.bv+k.before-min(p.ln.BottomOverlap(pl.axis), allow))
	}
	return floor
}

// placeSummary centers summary i on the stacked extent of its group. A
// summary taller than its group pushes the group down instead of reaching
// above it. It reports false when i is not a summary or brackets no stacked
// child, in which case it is stacked as an item.
func (pl *placement) placeSummary(i int, st *stackState) bool {
	if !pl.levels.IsSummary(i) {
		return false
	}
	top, bottom, found := 0, 0, false
	pl.eachMember(i, func(m *kid) {
		if m.empty {
			return
		}
		if !found {
			top, bottom, found = m.coreTop(), m.coreBottom(), true
			return
		}
		top, bottom = min(top, m.coreTop()), max(bottom, m.coreBottom())
	})
	if !found {
		return false
	}

	k := &pl.kids[i]
	sa := pl.spaceAround()
	h := k.coreHeight()
	y := floorDiv(top+bottom-h, 2)
	if y < top {
		delta := top - y
		pl.eachMember(i, func(m *kid) { m.v += delta })
		st.placed = stepfunc.Func{}
		for _, j := range st.stacked {
			st.placed = st.placed.Combine(pl.kids[j].silhouette(pl.axis, sa, false), stepfunc.Max)
		}
		st.prevTop += delta
		st.y += delta
		y = top
	}
	k.v = y - k.before
	st.y = max(st.y, k.coreBottom())
	st.placed = st.placed.Combine(k.silhouette(pl.axis, sa, false), stepfunc.Max)
	st.first = false
	return true
}

// alignBlock shifts one side's stacked children, and the empty ones among
// them, relative to the parent content, which spans [0, cv) along the axis.
func (pl *placement) alignBlock(stacked, empty []int, cv int) {
	if len(stacked) == 0 {
		return
	}
	top, bottom := pl.kids[stacked[0]].coreTop(), pl.kids[stacked[0]].coreBottom()
	for _, i := range stacked[1:] {
		top = min(top, pl.kids[i].coreTop())
		bottom = max(bottom, pl.kids[i].coreBottom())
	}

	var delta int
	switch pl.align {
	case mindmap.AlignFlow:
		delta = -top
	case mindmap.AlignBeforeParent:
		delta = -pl.minDist - bottom
	case mindmap.AlignAfterParent:
		delta = cv + pl.minDist - top
	case mindmap.AlignFirstChildByParent:
		delta = floorDiv(cv, 2) - pl.kids[stacked[0]].contentCenter()
	case mindmap.AlignLastChildByParent:
		delta = floorDiv(cv, 2) - pl.kids[stacked[len(stacked)-1]].contentCenter()
	default:
		delta = floorDiv(cv-(top+bottom), 2)
	}
	for _, i := range stacked {
		pl.kids[i].v += delta
	}
	for _, i := range empty {
		pl.kids[i].v += delta
	}
}

func (k *kid) contentCenter() int { return k.v + k.cv0 + k.cv/2 }

// placeFree positions free children by their shift offsets. The content
// sits at the usual item distance plus ShiftX away from the parent content,
// mirrored on the top or left side, and ShiftY below the parent content top.
func (pl *placement) placeFree(cu int) {
	for i := range pl.kids {
		k := &pl.kids[i]
		if !k.free {
			continue
		}
		gap := pl.itemGap(k, false)
		su, sv := pl.axis.FromScreen(pl.p.scale(k.node.ShiftX), pl.p.scale(k.node.ShiftY))
		if k.side == mindmap.SideBottomOrRight {
			k.u = cu + gap + su - k.cu0
		} else {
			k.u = -gap - su - k.cu - k.cu0
		}
		k.v = sv - k.cv0
	}
}
