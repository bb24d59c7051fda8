// Package svg paints a computed mind-map layout as an SVG box diagram.
//
// The output is a faithful picture of the engine's geometry: every node box
// is drawn where [geometry.Scene] puts it, with the node's text inside its
// content box, connectors from parents to children and brackets for
// summary nodes. [WithSilhouettes] overlays the subtree silhouettes, which
// is the quickest way to see why two branches are spaced the way they are.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/mindlayout/pkg/geometry"
)

const (
	bracketDepth = 6
	fontSize     = 12
	lineHeight   = 16
	foldRadius   = 3
)

var depthFills = []string{"#fde68a", "#bfdbfe", "#bbf7d0", "#fecaca", "#ddd6fe", "#fbcfe8"}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	boxes       bool
	silhouettes bool
	title       string
}

// WithBoxes outlines every node's full box, including its space around.
func WithBoxes() Option { return func(r *renderer) { r.boxes = true } }

// WithSilhouettes draws the silhouettes recorded in the scene. Build the
// scene with geometry.WithSilhouettes for this to have any effect.
func WithSilhouettes() Option { return func(r *renderer) { r.silhouettes = true } }

// WithTitle sets the document title.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// Render paints s and returns the SVG document.
func Render(s geometry.Scene, opts ...Option) []byte {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	buf.WriteString(`  <style>.node text { font-family: sans-serif; font-size: ` + fmt.Sprint(fontSize) + `px; }</style>` + "\n")

	for _, n := range s.Nodes {
		if n.Cloud != "" {
			renderCloud(&buf, n)
		}
	}
	for _, e := range s.Edges {
		from, okF := s.Find(e.From)
		to, okT := s.Find(e.To)
		if !okF || !okT || to.Content.W == 0 {
			continue
		}
		renderEdge(&buf, s.Mode, from, to)
	}
	for _, b := range s.Brackets {
		if parent := parentOf(&s, b.Summary); parent != nil {
			renderBracket(&buf, parent.Axis, b)
		}
	}
	for _, n := range s.Nodes {
		renderNode(&buf, &r, n)
	}
	if r.silhouettes {
		for _, n := range s.Nodes {
			if n.Silhouette != nil {
				renderSilhouette(&buf, n)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func parentOf(s *geometry.Scene, id int) *geometry.Node {
	n, ok := s.Find(id)
	if !ok {
		return nil
	}
	p, ok := s.Find(n.Parent)
	if !ok || p.ID == n.ID {
		return nil
	}
	return p
}

func renderNode(buf *bytes.Buffer, r *renderer, n geometry.Node) {
	if r.boxes {
		fmt.Fprintf(buf, `  <rect class="box" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#9ca3af" stroke-dasharray="2 2"/>`+"\n",
			n.Box.X, n.Box.Y, n.Box.W, n.Box.H)
	}
	c := n.Content
	if c.W == 0 || c.H == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="node" id="node-%d">`+"\n", n.ID)
	fill := depthFills[n.Depth%len(depthFills)]
	if n.Summary {
		fill = "#f3f4f6"
	}
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s" stroke="#374151"/>`+"\n",
		c.X, c.Y, c.W, c.H, fill)

	lines := strings.Split(n.Label, "\n")
	top := c.Y + (c.H-len(lines)*lineHeight)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		fmt.Fprintf(buf, `    <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			c.X+c.W/2, top+i*lineHeight+lineHeight/2, escapeXML(line))
	}
	if n.Folded {
		x := c.Right() + foldRadius
		if n.Side == "left" {
			x = c.X - foldRadius
		}
		fmt.Fprintf(buf, `    <circle class="folded" cx="%d" cy="%d" r="%d" fill="#fff" stroke="#374151"/>`+"\n",
			x, c.Y+c.H/2, foldRadius)
	}
	buf.WriteString("  </g>\n")
}

func renderCloud(buf *bytes.Buffer, n geometry.Node) {
	rx := 0
	switch n.Cloud {
	case "round_rect":
		rx = 8
	case "arc", "star":
		rx = min(n.Box.W, n.Box.H) / 2
	}
	fmt.Fprintf(buf, `  <rect class="cloud cloud-%s" x="%d" y="%d" width="%d" height="%d" rx="%d" fill="#f9fafb" stroke="#d1d5db"/>`+"\n",
		n.Cloud, n.Box.X, n.Box.Y, n.Box.W, n.Box.H, rx)
}

// renderEdge connects facing sides of the two content boxes. In outline mode
// the connector is an elbow down the parent's left edge.
func renderEdge(buf *bytes.Buffer, mode string, from, to *geometry.Node) {
	p, c := from.Content, to.Content
	var d string
	switch {
	case mode == geometry.ModeOutline:
		x := p.X + min(p.W, c.X-p.X)/2
		d = fmt.Sprintf("M%d,%d V%d H%d", x, p.Bottom(), c.Y+c.H/2, c.X)
	case from.Axis == "horizontal":
		x1, x2 := p.X+p.W/2, c.X+c.W/2
		y1, y2 := p.Bottom(), c.Y
		if c.Bottom() <= p.Y {
			y1, y2 = p.Y, c.Bottom()
		}
		mid := (y1 + y2) / 2
		d = fmt.Sprintf("M%d,%d C%d,%d %d,%d %d,%d", x1, y1, x1, mid, x2, mid, x2, y2)
	default:
		y1, y2 := p.Y+p.H/2, c.Y+c.H/2
		x1, x2 := p.Right(), c.X
		if c.Right() <= p.X {
			x1, x2 = p.X, c.Right()
		}
		mid := (x1 + x2) / 2
		d = fmt.Sprintf("M%d,%d C%d,%d %d,%d %d,%d", x1, y1, mid, y1, mid, y2, x2, y2)
	}
	fmt.Fprintf(buf, `  <path class="edge" d="%s" fill="none" stroke="#6b7280"/>`+"\n", d)
}

// renderBracket draws a curly brace along the side of the span facing the
// summary node.
func renderBracket(buf *bytes.Buffer, axis string, b geometry.Bracket) {
	s := b.Span
	dir := 1
	if b.Side == "left" {
		dir = -1
	}
	var d string
	if axis == "horizontal" {
		y := s.Bottom()
		if dir < 0 {
			y = s.Y
		}
		k, mid := dir*bracketDepth, s.X+s.W/2
		d = fmt.Sprintf("M%d,%d Q%d,%d %d,%d H%d Q%d,%d %d,%d Q%d,%d %d,%d H%d Q%d,%d %d,%d",
			s.X, y, s.X, y+k, s.X+bracketDepth, y+k, mid-bracketDepth,
			mid, y+k, mid, y+2*k, mid, y+k, mid+bracketDepth, y+k, s.Right()-bracketDepth,
			s.Right(), y+k, s.Right(), y)
	} else {
		x := s.Right()
		if dir < 0 {
			x = s.X
		}
		k, mid := dir*bracketDepth, s.Y+s.H/2
		d = fmt.Sprintf("M%d,%d Q%d,%d %d,%d V%d Q%d,%d %d,%d Q%d,%d %d,%d V%d Q%d,%d %d,%d",
			x, s.Y, x+k, s.Y, x+k, s.Y+bracketDepth, mid-bracketDepth,
			x+k, mid, x+2*k, mid, x+k, mid, x+k, mid+bracketDepth, s.Bottom()-bracketDepth,
			x+k, s.Bottom(), x, s.Bottom())
	}
	fmt.Fprintf(buf, `  <path class="bracket" data-summary="%d" d="%s" fill="none" stroke="#374151"/>`+"\n", b.Summary, d)
}

func renderSilhouette(buf *bytes.Buffer, n geometry.Node) {
	for _, edge := range []struct {
		class string
		steps []geometry.Step
	}{
		{"top", n.Silhouette.Top},
		{"bottom", n.Silhouette.Bottom},
	} {
		if d := stepPath(edge.steps); d != "" {
			fmt.Fprintf(buf, `  <path class="silhouette silhouette-%s" data-node="%d" d="%s" fill="none" stroke="#ef4444" stroke-width="0.5"/>`+"\n",
				edge.class, n.ID, d)
		}
	}
}

// stepPath traces a step function as a path, joining consecutive runs with
// vertical segments and starting a new subpath across gaps.
func stepPath(steps []geometry.Step) string {
	var sb strings.Builder
	for i, s := range steps {
		if i > 0 && steps[i-1].To == s.From {
			fmt.Fprintf(&sb, " V%d H%d", s.Value, s.To)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "M%d,%d H%d", s.From, s.Value, s.To)
	}
	return sb.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
