// Package nodelink renders mind maps as traditional node-link diagrams.
//
// # Overview
//
// This package lays a map out with Graphviz instead of the layout engine,
// where nodes appear as boxes connected by arrows. It is mostly useful as a
// reference picture when checking what the engine did with a map.
//
// # Usage
//
// Convert a map to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pass the SVG to render.Convert.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the key, side, orientation and alignment
//   - ShowFolded: descendants of folded nodes are drawn too
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) with rounded box
// nodes. Summary nodes are dashed, free nodes dotted and folded nodes get a
// double border.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
