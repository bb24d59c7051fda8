// Package mapio reads and writes mind map documents.
//
// A document is a nested outline: the root node with its attributes and,
// recursively, its children. The same structure is accepted as JSON, YAML
// or TOML:
//
//	root:
//	  text: Project
//	  children:
//	    - text: Goals
//	      side: left
//	    - text: Tasks
//	      orientation: horizontal
//	      children:
//	        - text: Write
//	        - text: Review
//	    - text: This week
//	      summary: true
//
// # Node Fields
//
// Only text is required. Optional fields mirror [mindmap.Node]:
//   - key: stable identifier; a random UUID is assigned when missing
//   - side: left, right (default: resolved by the layout)
//   - orientation, alignment, children_sides: layout style names
//   - summary, first_group, hidden_summary, free, compact, folded, hidden
//   - min_child_distance, base_distance, distance_to_parent: gaps in pixels
//   - shift_x, shift_y: offsets, mostly for free nodes
//   - width, height: fixed content size
//   - cloud: {shape, color}
//
// # Reading and Writing
//
// Use [ReadFile] to load a document by extension, or [Read] with an explicit
// [Format]:
//
//	m, err := mapio.ReadFile("ideas.yaml")
//
// [Write] and [WriteFile] export a map; every attribute that differs from
// its default is written, so import and export round-trip.
package mapio
