// Package pkg provides the core libraries for mindlayout, a layout engine for
// mind-map style node trees.
//
// # Overview
//
// Every node of a mind map is a rectangle with content. The engine places
// each node's children next to it, stacked on one or both sides of the
// parent, with summary brackets spanning groups of siblings, optional
// clouds around subtrees and free-floating nodes that keep their own offset.
// Results are cached per node and recomputed only along dirty paths when
// the map changes.
//
// # Architecture
//
// The typical data flow:
//
//	YAML/JSON/TOML document
//	         ↓
//	    [mapio] package (decode into a map)
//	         ↓
//	    [mindmap] package (tree model, change notifications)
//	         ↓
//	    [layout] package (incremental layout engine)
//	         ↓
//	    [geometry] package (absolute scene in pixels)
//	         ↓
//	    [render] packages (SVG, Graphviz, PDF/PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mindlayout/pkg/geometry"
//	    "github.com/matzehuels/mindlayout/pkg/layout"
//	    "github.com/matzehuels/mindlayout/pkg/mapio"
//	    "github.com/matzehuels/mindlayout/pkg/render/svg"
//	)
//
//	m, _ := mapio.ReadFile("topic.yaml")
//	e := layout.NewEngine(m)
//	defer e.Close()
//
//	scene := geometry.Build(e)
//	out := svg.Render(scene)
//
// Edits go through the map and invalidate only what they touch:
//
//	id, _ := m.FindByKey("budget")
//	m.SetFolded(id, true)
//	e.Validate()
//
// # Main Packages
//
// [mindmap] - The node tree: sides, orientation, alignment, summaries,
// clouds, folding. Mutations notify observers such as the engine.
//
// [layout] - The engine. Vertical and horizontal stacking strategies,
// summary levels, outline mode and compact placement. Subtree silhouettes
// live in [layout/stepfunc].
//
// [geometry] - Flattens an engine into absolute boxes, edges and brackets
// and reads or writes them as JSON.
//
// [mapio] - Map documents in YAML, JSON and TOML.
//
// [config] - Layout parameters from $XDG_CONFIG_HOME/mindlayout/config.toml.
//
// [render/svg] - Paints a scene. [render/nodelink] draws the tree with
// Graphviz. [render] converts SVG to PDF or PNG.
//
// [server] - HTTP API for layout and rendering.
//
// [errors], [observability], [metrics] and [cache] are shared infrastructure.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/layout/...          # Engine and silhouettes
//	go test -run Example ./pkg/...    # Examples only
package pkg
