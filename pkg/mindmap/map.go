package mindmap

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when an id does not address a live node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrRootMove is returned when the root is removed or moved.
	ErrRootMove = errors.New("root cannot be moved or removed")

	// ErrCycle is returned by [Map.Move] when the target parent lies inside
	// the moved subtree.
	ErrCycle = errors.New("move would create a cycle")

	// ErrInvalidValue is returned by the Parse helpers for unknown names.
	ErrInvalidValue = errors.New("invalid value")

	// ErrBrokenLink is returned by [Map.Validate] when parent and child links
	// disagree. This indicates arena corruption.
	ErrBrokenLink = errors.New("inconsistent parent/child link")
)

// Change classifies a mutation for observers.
type Change int

const (
	// ChangeContent: text or explicit size changed; the content size oracle
	// may answer differently.
	ChangeContent Change = iota
	// ChangeStyle: a layout style parameter changed.
	ChangeStyle
	// ChangeChildren: the child list changed.
	ChangeChildren
	// ChangeVisibility: folding or filtering changed.
	ChangeVisibility
)

var changeNames = [...]string{"content", "style", "children", "visibility"}

func (c Change) String() string {
	if int(c) < len(changeNames) {
		return changeNames[c]
	}
	return fmt.Sprintf("change(%d)", int(c))
}

// Observer receives a notification after every mutation.
type Observer interface {
	NodeChanged(id NodeID, c Change)
}

// Map is an arena-backed tree of nodes. It is not safe for concurrent use.
type Map struct {
	nodes     []*Node
	root      NodeID
	observers []Observer
}

// New creates a map holding a single root node with the given text.
func New(rootText string) *Map {
	m := &Map{}
	m.root = m.alloc(NoNode, rootText)
	return m
}

func (m *Map) alloc(parent NodeID, text string) NodeID {
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, &Node{
		ID:     id,
		Text:   text,
		Parent: parent,
		Gaps:   UnsetGaps(),
	})
	return id
}

// Observe registers o for change notifications.
func (m *Map) Observe(o Observer) {
	m.observers = append(m.observers, o)
}

// Unobserve removes a previously registered observer.
func (m *Map) Unobserve(o Observer) {
	m.observers = slices.DeleteFunc(m.observers, func(x Observer) bool { return x == o })
}

func (m *Map) notify(id NodeID, c Change) {
	for _, o := range m.observers {
		o.NodeChanged(id, c)
	}
}

// Root returns the root id.
func (m *Map) Root() NodeID { return m.root }

// Len returns the number of live nodes.
func (m *Map) Len() int {
	n := 0
	for _, nd := range m.nodes {
		if !nd.removed {
			n++
		}
	}
	return n
}

// Capacity returns one past the largest id ever allocated. Engines size their
// per-node caches with it.
func (m *Map) Capacity() int { return len(m.nodes) }

// Node returns the node with the given id.
func (m *Map) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(m.nodes) || m.nodes[id].removed {
		return nil, false
	}
	return m.nodes[id], true
}

// MustNode is Node for ids known to be valid.
func (m *Map) MustNode(id NodeID) *Node {
	n, ok := m.Node(id)
	if !ok {
		panic(fmt.Sprintf("mindmap: %v: %d", ErrUnknownNode, id))
	}
	return n
}

// Parent returns the parent id, or NoNode for the root and unknown ids.
func (m *Map) Parent(id NodeID) NodeID {
	if n, ok := m.Node(id); ok {
		return n.Parent
	}
	return NoNode
}

// Children returns the ordered child ids. The slice must not be modified.
func (m *Map) Children(id NodeID) []NodeID {
	if n, ok := m.Node(id); ok {
		return n.Children
	}
	return nil
}

// Depth returns the number of edges between id and the root.
func (m *Map) Depth(id NodeID) int {
	d := 0
	for p := m.Parent(id); p != NoNode; p = m.Parent(p) {
		d++
	}
	return d
}

// Walk visits the subtree below id in pre-order. Returning false from fn
// skips the node's children.
func (m *Map) Walk(id NodeID, fn func(n *Node) bool) {
	n, ok := m.Node(id)
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		m.Walk(c, fn)
	}
}

// AddChild appends a new child under parent.
func (m *Map) AddChild(parent NodeID, text string) NodeID {
	p := m.MustNode(parent)
	return m.InsertChild(parent, len(p.Children), text)
}

// InsertChild inserts a new child under parent at index (clamped).
func (m *Map) InsertChild(parent NodeID, index int, text string) NodeID {
	p := m.MustNode(parent)
	id := m.alloc(parent, text)
	index = max(0, min(index, len(p.Children)))
	p.Children = slices.Insert(p.Children, index, id)
	m.notify(parent, ChangeChildren)
	return id
}

// Remove detaches id and its subtree from the map.
func (m *Map) Remove(id NodeID) error {
	n, ok := m.Node(id)
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownNode)
	}
	if n.IsRoot() {
		return ErrRootMove
	}
	parent := n.Parent
	m.detach(id)
	m.Walk(id, func(d *Node) bool {
		d.removed = true
		return true
	})
	m.notify(parent, ChangeChildren)
	return nil
}

// Move re-parents id under newParent at index.
func (m *Map) Move(id, newParent NodeID, index int) error {
	n, ok := m.Node(id)
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrUnknownNode)
	}
	if n.IsRoot() {
		return ErrRootMove
	}
	p, ok := m.Node(newParent)
	if !ok {
		return fmt.Errorf("move to %d: %w", newParent, ErrUnknownNode)
	}
	for a := newParent; a != NoNode; a = m.Parent(a) {
		if a == id {
			return ErrCycle
		}
	}
	oldParent := n.Parent
	m.detach(id)
	index = max(0, min(index, len(p.Children)))
	p.Children = slices.Insert(p.Children, index, id)
	n.Parent = newParent
	m.notify(oldParent, ChangeChildren)
	if oldParent != newParent {
		m.notify(newParent, ChangeChildren)
	}
	return nil
}

func (m *Map) detach(id NodeID) {
	n := m.nodes[id]
	p := m.nodes[n.Parent]
	p.Children = slices.DeleteFunc(p.Children, func(c NodeID) bool { return c == id })
}

// Validate checks arena consistency: every live child points back to its
// parent and the tree is reachable from the root without revisits.
func (m *Map) Validate() error {
	seen := make(map[NodeID]bool, len(m.nodes))
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if seen[id] {
			return fmt.Errorf("%w: node %d reached twice", ErrBrokenLink, id)
		}
		seen[id] = true
		n, ok := m.Node(id)
		if !ok {
			return fmt.Errorf("%w: dangling child %d", ErrBrokenLink, id)
		}
		for _, c := range n.Children {
			cn, ok := m.Node(c)
			if !ok {
				return fmt.Errorf("%w: dangling child %d of %d", ErrBrokenLink, c, id)
			}
			if cn.Parent != id {
				return fmt.Errorf("%w: child %d names parent %d, listed under %d", ErrBrokenLink, c, cn.Parent, id)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(m.root); err != nil {
		return err
	}
	if len(seen) != m.Len() {
		return fmt.Errorf("%w: %d live nodes, %d reachable", ErrBrokenLink, m.Len(), len(seen))
	}
	return nil
}

// FindByKey returns the first live node whose Key equals key.
func (m *Map) FindByKey(key string) (NodeID, bool) {
	for _, n := range m.nodes {
		if !n.removed && n.Key == key {
			return n.ID, true
		}
	}
	return NoNode, false
}
