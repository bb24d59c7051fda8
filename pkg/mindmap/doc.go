// Package mindmap provides the node tree consumed by the layout engine.
//
// A [Map] is an arena of [Node] values addressed by stable integer [NodeID]s.
// Parent and child links are ids, never pointers, so a map can be copied,
// inspected and mutated without lifetime hazards.
//
// # Attributes
//
// Each node carries the attributes the layout engine reads:
//   - Side: which side of the root a branch is drawn on
//   - Free: positioned by its shift offset instead of being stacked
//   - Summary / FirstGroup / HiddenSummary: summary brackets over siblings
//   - Orientation: axis along which the node stacks its own children
//   - Alignment: where the node's content sits relative to its children block
//   - ChildrenSides: whether children may use both sides of the node
//   - Gaps and shifts, fold and filter state, cloud decoration
//
// # Change notification
//
// Every mutator notifies registered [Observer]s with the node id and a
// [Change] kind. The layout engine registers itself as an observer and turns
// notifications into explicit dirty flags; nothing is recomputed implicitly.
//
//	m := mindmap.New("Project")
//	a := m.AddChild(m.Root(), "Goals")
//	m.SetSide(a, mindmap.SideTopOrLeft)
//	m.SetFolded(a, true)
package mindmap
