// Package render turns laid-out mind maps into pictures.
//
// # Overview
//
// This package contains the generic format conversion shared by the
// renderers:
//
//   - Box diagrams of a computed layout (in [svg] subpackage)
//   - Node-link reference diagrams via Graphviz (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Convert] dispatches on a
// format name and reports to the registered render hooks.
//
//	out := svg.Render(scene)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// # Box Diagrams
//
// The [svg] subpackage paints a [geometry.Scene] exactly as the layout
// engine computed it: node boxes, content boxes, connectors, summary
// brackets and, for debugging, subtree silhouettes.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage lays the same map out with Graphviz, which is
// useful to compare against the engine's placement.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	out, err := nodelink.RenderSVG(ctx, dot)
//
// [svg]: github.com/matzehuels/mindlayout/pkg/render/svg
// [nodelink]: github.com/matzehuels/mindlayout/pkg/render/nodelink
// [geometry.Scene]: github.com/matzehuels/mindlayout/pkg/geometry.Scene
package render
