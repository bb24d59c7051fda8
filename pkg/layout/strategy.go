package layout

import (
	"github.com/matzehuels/mindlayout/pkg/layout/stepfunc"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// strategy positions the visible children of one node whose children are
// already laid out, and fills in the node's own geometry.
type strategy interface {
	layout(pl *placement)
}

// placement carries everything a strategy reads for one node. Lengths are
// zoomed pixels.
type placement struct {
	p    Params
	ln   *LayoutNode
	node *mindmap.Node
	axis Axis

	cw, ch int // content size
	cloud  int

	kids   []kid
	levels SummaryLevels

	compact  bool
	align    mindmap.Alignment
	minDist  int
	baseDist int
}

// kid is a child as seen from its parent's logical frame. Sizes exclude
// the child's margin: u and v locate the inner box relative to the
// parent's content origin.
type kid struct {
	id   mindmap.NodeID
	node *mindmap.Node
	ln   *LayoutNode
	side mindmap.Side
	free bool

	bu, bv   int // inner box size
	cu0, cv0 int // content offset inside the inner box
	cu, cv   int // content size
	cloudV   int // cloud padding along v
	before   int // free protrusion above the stacked extent
	after    int // free protrusion below it
	empty    bool

	u, v int
	far  int // distance from the parent's content edge to the outer edge
}

// coreTop and coreBottom bound the stacked part of the inner box.
func (k *kid) coreTop() int    { return k.v + k.before }
func (k *kid) coreBottom() int { return k.v + k.bv - k.after }
func (k *kid) coreHeight() int { return k.bv - k.before - k.after }

// silhouette returns the child's leading or trailing outline in the
// parent's logical frame at the child's current position.
func (k *kid) silhouette(a Axis, sa int, leading bool) stepfunc.Func {
	f := a.trailing(&k.ln.Silhouettes)
	if leading {
		f = a.leading(&k.ln.Silhouettes)
	}
	return f.Translate(k.u-sa, k.v-sa)
}

func (pl *placement) spaceAround() int { return pl.p.scale(pl.p.SpaceAround) }

// prepare converts every child's box into the logical frame.
func (pl *placement) prepare() {
	sa := pl.spaceAround()
	for i := range pl.kids {
		k := &pl.kids[i]
		bu, bv := pl.axis.FromScreen(k.ln.Width, k.ln.Height)
		k.bu, k.bv = max(bu-2*sa, 0), max(bv-2*sa, 0)
		ou, ov := pl.axis.FromScreen(k.ln.ContentX, k.ln.ContentY)
		k.cu0, k.cv0 = ou-sa, ov-sa
		k.cu, k.cv = pl.axis.FromScreen(k.ln.ContentW, k.ln.ContentH)
		k.before, k.after = pl.axis.overlaps(k.ln.Overlap)
		k.empty = k.ln.Width == 0 && k.ln.Height == 0
		if pl.axis == Vertical {
			k.cloudV = k.ln.CloudExtra
		}
	}
}

// assemble computes the node box from the placed children: the union of the
// content with its margin and every child box, padded by the cloud. The
// content offset follows from how far children reach above and to the left.
// A node with nothing to show, neither content nor a non-empty child, gets a
// 0×0 box.
func (pl *placement) assemble() {
	sa := pl.spaceAround()
	ln := pl.ln

	var ext Block
	if !pl.blank() {
		ext = BlockAt(0, 0, pl.cw, pl.ch).Grow(sa, sa)
	}
	core := ext
	boxes := make([]Block, len(pl.kids))
	for i := range pl.kids {
		k := &pl.kids[i]
		if k.empty {
			x, y := pl.axis.ToScreen(k.u, k.v)
			boxes[i] = BlockAt(x, y, 0, 0)
			continue
		}
		x, y := pl.axis.ToScreen(k.u-sa, k.v-sa)
		w, h := pl.axis.ToScreen(k.bu+2*sa, k.bv+2*sa)
		boxes[i] = BlockAt(x, y, w, h)
		ext = ext.Union(boxes[i])
		if !k.free {
			core = core.Union(boxes[i])
		}
	}
	cloudTop, cloudBottom := pl.cloud/2, pl.cloud-pl.cloud/2
	ext.Top, ext.Bottom = ext.Top-cloudTop, ext.Bottom+cloudBottom
	core.Top, core.Bottom = core.Top-cloudTop, core.Bottom+cloudBottom

	ln.ContentX, ln.ContentY = -ext.Left, -ext.Top
	ln.ContentW, ln.ContentH = pl.cw, pl.ch
	ln.CloudExtra = pl.cloud
	ln.Width, ln.Height = ext.Width(), ext.Height()
	ln.Overlap = Insets{
		Top:    core.Top - ext.Top,
		Bottom: ext.Bottom - core.Bottom,
		Left:   core.Left - ext.Left,
		Right:  ext.Right - core.Right,
	}
	ln.Axis = pl.axis

	for i := range pl.kids {
		ln.ChildX[i] = boxes[i].Left - ext.Left
		ln.ChildY[i] = boxes[i].Top - ext.Top
	}
	pl.outline()
	ln.Slack = silhouetteSlack(ln.Silhouettes, core.Translate(-ext.Left, -ext.Top).Grow(-sa, -sa))
}

// blank reports whether the node has no content, no cloud and no child
// that takes up space.
func (pl *placement) blank() bool {
	if pl.cw != 0 || pl.ch != 0 || pl.cloud != 0 {
		return false
	}
	for i := range pl.kids {
		if !pl.kids[i].empty {
			return false
		}
	}
	return true
}

// outline rebuilds the node's silhouettes from its content and the
// silhouettes of its stacked children.
func (pl *placement) outline() {
	ln := pl.ln
	cloudTop := pl.cloud / 2
	s := rectSilhouettes(BlockAt(ln.ContentX, ln.ContentY-cloudTop, pl.cw, pl.ch+pl.cloud))
	for i := range pl.kids {
		if k := &pl.kids[i]; !k.free {
			s.merge(k.ln.Silhouettes.Translate(ln.ChildX[i], ln.ChildY[i]))
		}
	}
	ln.Silhouettes = s
}

// silhouetteSlack measures, for each side of the stacked inner box, the
// deepest reach of empty space between the box edge and the silhouettes.
func silhouetteSlack(s Silhouettes, inner Block) Insets {
	var in Insets
	if inner.Empty() {
		return in
	}
	clamp := func(d, limit int) int { return min(max(d, 0), limit) }
	if v, ok := extreme(s.Top, true); ok {
		in.Top = clamp(v-inner.Top, inner.Height())
	}
	if v, ok := extreme(s.Bottom, false); ok {
		in.Bottom = clamp(inner.Bottom-v, inner.Height())
	}
	if v, ok := extreme(s.Left, true); ok {
		in.Left = clamp(v-inner.Left, inner.Width())
	}
	if v, ok := extreme(s.Right, false); ok {
		in.Right = clamp(inner.Right-v, inner.Width())
	}
	return in
}

// extreme returns the largest (or smallest) value f takes.
func extreme(f stepfunc.Func, largest bool) (int, bool) {
	segs := f.Segments()
	if len(segs) == 0 {
		return 0, false
	}
	v := segs[0].Value
	for _, sg := range segs[1:] {
		if largest {
			v = max(v, sg.Value)
		} else {
			v = min(v, sg.Value)
		}
	}
	return v, true
}
