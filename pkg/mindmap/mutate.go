package mindmap

// update applies fn to id and notifies observers with c.
func (m *Map) update(id NodeID, c Change, fn func(n *Node)) {
	fn(m.MustNode(id))
	m.notify(id, c)
}

func (m *Map) SetText(id NodeID, text string) {
	m.update(id, ChangeContent, func(n *Node) { n.Text = text })
}

func (m *Map) SetKey(id NodeID, key string) {
	m.MustNode(id).Key = key
}

// SetSize fixes the content size; zero or negative values restore measuring.
func (m *Map) SetSize(id NodeID, width, height int) {
	m.update(id, ChangeContent, func(n *Node) { n.Width, n.Height = width, height })
}

func (m *Map) SetSide(id NodeID, s Side) {
	m.update(id, ChangeStyle, func(n *Node) { n.Side = s })
}

func (m *Map) SetFree(id NodeID, free bool) {
	m.update(id, ChangeStyle, func(n *Node) { n.Free = free })
}

// SetSummary marks id as a summary bracket over its preceding siblings.
func (m *Map) SetSummary(id NodeID, summary bool) {
	m.update(id, ChangeStyle, func(n *Node) { n.Summary = summary })
}

// SetFirstGroup marks id as the first node covered by the next summary.
func (m *Map) SetFirstGroup(id NodeID, first bool) {
	m.update(id, ChangeStyle, func(n *Node) { n.FirstGroup = first })
}

func (m *Map) SetHiddenSummary(id NodeID, hidden bool) {
	m.update(id, ChangeStyle, func(n *Node) { n.HiddenSummary = hidden })
}

func (m *Map) SetOrientation(id NodeID, o Orientation) {
	m.update(id, ChangeStyle, func(n *Node) { n.Orientation = o })
}

func (m *Map) SetAlignment(id NodeID, a Alignment) {
	m.update(id, ChangeStyle, func(n *Node) { n.Alignment = a })
}

func (m *Map) SetChildrenSides(id NodeID, c ChildrenSides) {
	m.update(id, ChangeStyle, func(n *Node) { n.ChildrenSides = c })
}

// SetCompact enables silhouette compaction of id's children.
func (m *Map) SetCompact(id NodeID, compact bool) {
	m.update(id, ChangeStyle, func(n *Node) { n.Compact = compact })
}

func (m *Map) SetGaps(id NodeID, g Gaps) {
	m.update(id, ChangeStyle, func(n *Node) { n.Gaps = g })
}

// SetShift sets the manual offset. Free nodes are positioned by it; stacked
// nodes add ShiftY to the gap above them.
func (m *Map) SetShift(id NodeID, dx, dy int) {
	m.update(id, ChangeStyle, func(n *Node) { n.ShiftX, n.ShiftY = dx, dy })
}

func (m *Map) SetCloud(id NodeID, c *Cloud) {
	m.update(id, ChangeStyle, func(n *Node) { n.Cloud = c })
}

func (m *Map) SetFolded(id NodeID, folded bool) {
	m.update(id, ChangeVisibility, func(n *Node) { n.Folded = folded })
}

// SetHidden filters id's own content; its subtree may stay visible.
func (m *Map) SetHidden(id NodeID, hidden bool) {
	m.update(id, ChangeVisibility, func(n *Node) { n.Hidden = hidden })
}

// VisibleChildren returns the children taking part in layout: none when id
// is folded.
func (m *Map) VisibleChildren(id NodeID) []NodeID {
	n, ok := m.Node(id)
	if !ok || n.Folded {
		return nil
	}
	return n.Children
}

// EffectiveOrientation resolves OrientationInherit up the tree; the root
// defaults to vertical.
func (m *Map) EffectiveOrientation(id NodeID) Orientation {
	for cur := id; cur != NoNode; cur = m.Parent(cur) {
		if n, ok := m.Node(cur); ok && n.Orientation != OrientationInherit {
			return n.Orientation
		}
	}
	return OrientationVertical
}

// EffectiveSide resolves the side a node is drawn on relative to its parent.
// The root has no side and reports SideDefault.
func (m *Map) EffectiveSide(id NodeID) Side {
	side, _ := m.ResolveSide(id)
	return side
}

// ResolveSide is EffectiveSide plus a flag telling whether the node's own
// explicit side had to be overridden by its parent's ChildrenSides.
func (m *Map) ResolveSide(id NodeID) (side Side, conflict bool) {
	n, ok := m.Node(id)
	if !ok || n.IsRoot() {
		return SideDefault, false
	}
	p := m.MustNode(n.Parent)
	switch p.ChildrenSides {
	case ChildrenSidesTopOrLeft:
		return SideTopOrLeft, n.Side == SideBottomOrRight
	case ChildrenSidesBottomOrRight:
		return SideBottomOrRight, n.Side == SideTopOrLeft
	case ChildrenSidesBoth:
		if n.Side != SideDefault {
			return n.Side, false
		}
	default:
		if !p.IsRoot() {
			inherited := m.EffectiveSide(p.ID)
			return inherited, n.Side != SideDefault && n.Side != inherited
		}
		if n.Side != SideDefault {
			return n.Side, false
		}
	}
	if p.IsRoot() {
		return SideBottomOrRight, false
	}
	return m.EffectiveSide(p.ID), false
}
