// Package geometry provides the serializable result of a layout.
//
// A [Scene] is a flat snapshot of an engine's current geometry: one
// [Node] per visible map node with its absolute box and content box, the
// parent-child [Edge] list, and one [Bracket] per summary. It is what the
// CLI writes, what the HTTP API returns, and what the renderers paint.
//
// # Building
//
//	e := layout.NewEngine(m)
//	scene := geometry.Build(e)
//	data, _ := geometry.Marshal(scene)
//
// [WithSilhouettes] additionally records the top and bottom silhouettes of
// every subtree, which the debug SVG renderer can draw.
//
// # JSON Format
//
//	{
//	  "width": 248, "height": 28, "mode": "vertical", "zoom": 1,
//	  "nodes": [
//	    {"id": 0, "parent": -1, "label": "root",
//	     "box": {"x": 0, "y": 0, "w": 248, "h": 28},
//	     "content": {"x": 68, "y": 4, "w": 50, "h": 20}}
//	  ],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Coordinates are pixels with the origin at the root box's top-left corner.
package geometry
