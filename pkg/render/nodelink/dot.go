package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindlayout/pkg/mindmap"
	"github.com/matzehuels/mindlayout/pkg/observability"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the key and placement attributes in node labels.
	// When false, only the node text is shown.
	Detailed bool

	// ShowFolded includes the descendants of folded nodes.
	ShowFolded bool
}

// ToDOT converts a mind map to Graphviz DOT format. The map grows left to
// right from the root. Summary nodes are drawn dashed and free nodes dotted.
func ToDOT(m *mindmap.Map, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(id mindmap.NodeID)
	walk = func(id mindmap.NodeID) {
		n := m.MustNode(id)
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(id), strings.Join(fmtAttrs(n, opts.Detailed), ", "))

		children := m.VisibleChildren(id)
		if opts.ShowFolded {
			children = m.Children(id)
		}
		for _, c := range children {
			if m.MustNode(c).Hidden {
				continue
			}
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", nodeName(id), nodeName(c)))
			walk(c)
		}
	}
	walk(m.Root())

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id mindmap.NodeID) string { return "n" + strconv.Itoa(int(id)) }

func fmtLabel(n *mindmap.Node, detailed bool) string {
	if !detailed {
		return n.Text
	}

	var parts []string
	if n.Key != "" {
		parts = append(parts, "key: "+n.Key)
	}
	if n.Side != mindmap.SideDefault {
		parts = append(parts, "side: "+n.Side.String())
	}
	if n.Orientation != mindmap.OrientationInherit {
		parts = append(parts, "orientation: "+n.Orientation.String())
	}
	if n.Alignment != mindmap.AlignNotSet {
		parts = append(parts, "alignment: "+n.Alignment.String())
	}
	if len(parts) == 0 {
		return n.Text
	}
	return n.Text + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *mindmap.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch {
	case n.IsSummaryNode():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Free:
		attrs = append(attrs, "style=\"rounded,filled,dotted\"")
	}
	if n.Folded && len(n.Children) > 0 {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz. The result can be
// converted further with render.Convert.
func RenderSVG(ctx context.Context, dot string) (out []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "dot")
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, "dot", time.Since(start), err) }()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
