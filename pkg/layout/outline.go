package layout

import "github.com/matzehuels/mindlayout/pkg/mindmap"

// outlineStrategy cascades children as an indented list: content at a fixed
// inset, children one below the other at the parent content's left edge
// plus the indent. Sides, summaries, free placement, alignment and
// compaction do not apply.
type outlineStrategy struct{}

func (outlineStrategy) layout(pl *placement) {
	ln := pl.ln
	sa := pl.spaceAround()
	indent := pl.p.scale(pl.p.OutlineIndent)
	gap := pl.p.scale(pl.p.OutlineGap)
	cloudTop, cloudBottom := pl.cloud/2, pl.cloud-pl.cloud/2

	ln.ContentX, ln.ContentY = sa, sa+cloudTop
	ln.ContentW, ln.ContentH = pl.cw, pl.ch
	ln.CloudExtra = pl.cloud
	ln.Overlap = Insets{}
	ln.Axis = Vertical

	width := ln.ContentX + pl.cw + sa
	height := ln.ContentY + pl.ch + cloudBottom + sa
	y := ln.ContentY + pl.ch + cloudBottom + gap
	for i := range pl.kids {
		k := &pl.kids[i]
		k.free = false
		k.side = mindmap.SideBottomOrRight
		x := ln.ContentX - sa + indent
		ln.ChildX[i], ln.ChildY[i] = x, y
		width = max(width, x+k.ln.Width)
		height = max(height, y+k.ln.Height+cloudBottom)
		y += k.ln.Height + gap
	}
	ln.Width, ln.Height = width, height
	pl.outline()
}
