package layout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// randomMap decodes seeds into a map: each seed picks a parent among the
// nodes created so far and encodes size, flags and side.
func randomMap(seeds []uint32) (*mindmap.Map, []mindmap.NodeID) {
	m := sized(60, 20)
	ids := []mindmap.NodeID{m.Root()}
	for _, s := range seeds {
		v := int(s)
		parent := ids[v%len(ids)]
		id := add(m, parent, 10+(v>>4)%60, 8+(v>>10)%40)
		if (v>>16)%5 == 0 {
			m.SetSummary(id, true)
		}
		if (v>>19)%7 == 0 {
			m.SetFirstGroup(id, true)
		}
		if parent == m.Root() && (v>>22)%2 == 0 {
			m.SetSide(id, mindmap.SideTopOrLeft)
		}
		if (v>>24)%6 == 0 {
			m.SetOrientation(id, mindmap.OrientationHorizontal)
		}
		ids = append(ids, id)
	}
	return m, ids
}

// span is a child's inner box in its parent's logical frame, relative to
// the parent content origin.
type span struct{ u0, v0, u1, v1 int }

func stackedSpans(e *Engine, id mindmap.NodeID) map[int]span {
	ln := e.Layout(id)
	sa := e.Params().scale(e.Params().SpaceAround)
	out := make(map[int]span)
	for i, c := range ln.Children {
		if ln.ChildFree[i] {
			continue
		}
		cl := e.Layout(c)
		b := BlockAt(ln.ChildX[i], ln.ChildY[i], cl.Width, cl.Height).
			Grow(-sa, -sa).
			Translate(-ln.ContentX, -ln.ContentY)
		u0, v0 := ln.Axis.FromScreen(b.Left, b.Top)
		u1, v1 := ln.Axis.FromScreen(b.Right, b.Bottom)
		out[i] = span{u0, v0, u1, v1}
	}
	return out
}

// sideExtent returns the stacked extent of one side of id.
func sideExtent(ln *LayoutNode, spans map[int]span, side mindmap.Side) (top, bottom int, ok bool) {
	for i, s := range spans {
		if ln.ChildSides[i] != side {
			continue
		}
		if !ok {
			top, bottom, ok = s.v0, s.v1, true
			continue
		}
		top, bottom = min(top, s.v0), max(bottom, s.v1)
	}
	return top, bottom, ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func newProperties() *gopter.Properties {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	params.MaxSize = 24
	return gopter.NewProperties(params)
}

func seedsGen() gopter.Gen { return gen.SliceOf(gen.UInt32()) }

func TestLayoutProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("recomputing everything yields the same geometry", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			e := NewEngine(m)
			before := make([]Block, len(ids))
			for i, id := range ids {
				before[i], _ = e.Box(id)
			}
			e.InvalidateAll()
			for i, id := range ids {
				if b, _ := e.Box(id); b != before[i] {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("stacked siblings on one side never overlap", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			e := NewEngine(m)
			for _, id := range ids {
				ln := e.Layout(id)
				spans := stackedSpans(e, id)
				for i, a := range spans {
					for j, b := range spans {
						if i >= j || ln.ChildSides[i] != ln.ChildSides[j] {
							continue
						}
						ba := Block{Left: a.u0, Top: a.v0, Right: a.u1, Bottom: a.v1}
						bb := Block{Left: b.u0, Top: b.v0, Right: b.u1, Bottom: b.v1}
						if ba.Overlaps(bb) {
							return false
						}
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("compacted siblings overlap no more than their allowances", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			for _, id := range ids {
				m.SetCompact(id, true)
			}
			e := NewEngine(m)
			for _, id := range ids {
				ln := e.Layout(id)
				spans := stackedSpans(e, id)
				for i, a := range spans {
					for j, b := range spans {
						if i >= j || ln.ChildSides[i] != ln.ChildSides[j] || ln.Levels[i] != 0 || ln.Levels[j] != 0 {
							continue
						}
						allow := min(e.Layout(ln.Children[i]).BottomOverlap(ln.Axis), e.Layout(ln.Children[j]).TopOverlap(ln.Axis))
						if a.v1-b.v0 > allow {
							return false
						}
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("centered children straddle the parent content", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			e := NewEngine(m)
			for _, id := range ids {
				ln := e.Layout(id)
				_, cv := ln.Axis.FromScreen(ln.ContentW, ln.ContentH)
				spans := stackedSpans(e, id)
				for _, side := range sides {
					if top, bottom, ok := sideExtent(ln, spans, side); ok && abs(top+bottom-cv) > 1 {
						return false
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("before-parent children end one minimal distance above", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			for _, id := range ids {
				m.SetAlignment(id, mindmap.AlignBeforeParent)
			}
			e := NewEngine(m)
			for _, id := range ids {
				ln := e.Layout(id)
				spans := stackedSpans(e, id)
				for _, side := range sides {
					if _, bottom, ok := sideExtent(ln, spans, side); ok && bottom != -3 {
						return false
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("summaries sit beyond and centered on their group", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			e := NewEngine(m)
			for _, id := range ids {
				ln := e.Layout(id)
				spans := stackedSpans(e, id)
				for i, start := range ln.Groups {
					if start < 0 {
						continue
					}
					s := spans[i]
					top, bottom, found := 0, 0, false
					for p := start; p < i; p++ {
						if ln.ChildSides[p] != ln.ChildSides[i] || ln.ChildFree[p] {
							continue
						}
						mb := spans[p]
						if ln.ChildSides[i] == mindmap.SideBottomOrRight && s.u0 <= mb.u1 {
							return false
						}
						if ln.ChildSides[i] == mindmap.SideTopOrLeft && s.u1 >= mb.u0 {
							return false
						}
						if !found {
							top, bottom, found = mb.v0, mb.v1, true
						}
						top, bottom = min(top, mb.v0), max(bottom, mb.v1)
					}
					if found && abs((s.v0+s.v1)-(top+bottom)) > 1 {
						return false
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("growing a leaf never shrinks the map", prop.ForAll(
		func(seeds []uint32, pick uint32, dw, dh int) bool {
			m, ids := randomMap(seeds)
			var leaves []mindmap.NodeID
			for _, id := range ids {
				if len(m.Children(id)) == 0 {
					leaves = append(leaves, id)
				}
			}
			leaf := leaves[int(pick)%len(leaves)]

			e := NewEngine(m)
			root := e.Layout(m.Root())
			w, h := root.Width, root.Height

			n := m.MustNode(leaf)
			m.SetSize(leaf, n.Width+dw, n.Height+dh)
			root = e.Layout(m.Root())
			return root.Width >= w && root.Height >= h
		},
		seedsGen(), gen.UInt32(), gen.IntRange(0, 40), gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

func TestOutlineProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("outline rows are exactly one gap apart", prop.ForAll(
		func(seeds []uint32) bool {
			m, ids := randomMap(seeds)
			p := DefaultParams()
			p.Outline = true
			e := NewEngine(m, WithParams(p))
			for _, id := range ids {
				ln := e.Layout(id)
				y := ln.ContentY + ln.ContentH + p.OutlineGap
				for i, c := range ln.Children {
					if ln.ChildX[i] != ln.ContentX-p.SpaceAround+p.OutlineIndent || ln.ChildY[i] != y {
						return false
					}
					y += e.Layout(c).Height + p.OutlineGap
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.TestingRun(t)
}
