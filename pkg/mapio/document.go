package mapio

import (
	"github.com/google/uuid"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// Document is the serialized form of a map.
type Document struct {
	Version int  `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Root    Node `json:"root" yaml:"root" toml:"root"`
}

// Node is one node of a document with its subtree.
type Node struct {
	Key  string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Text string `json:"text" yaml:"text" toml:"text"`

	Side          string `json:"side,omitempty" yaml:"side,omitempty" toml:"side,omitempty"`
	Summary       bool   `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`
	FirstGroup    bool   `json:"first_group,omitempty" yaml:"first_group,omitempty" toml:"first_group,omitempty"`
	HiddenSummary bool   `json:"hidden_summary,omitempty" yaml:"hidden_summary,omitempty" toml:"hidden_summary,omitempty"`
	Free          bool   `json:"free,omitempty" yaml:"free,omitempty" toml:"free,omitempty"`

	Orientation   string `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Alignment     string `json:"alignment,omitempty" yaml:"alignment,omitempty" toml:"alignment,omitempty"`
	ChildrenSides string `json:"children_sides,omitempty" yaml:"children_sides,omitempty" toml:"children_sides,omitempty"`
	Compact       bool   `json:"compact,omitempty" yaml:"compact,omitempty" toml:"compact,omitempty"`

	MinChildDistance *int `json:"min_child_distance,omitempty" yaml:"min_child_distance,omitempty" toml:"min_child_distance,omitempty"`
	BaseDistance     *int `json:"base_distance,omitempty" yaml:"base_distance,omitempty" toml:"base_distance,omitempty"`
	DistanceToParent *int `json:"distance_to_parent,omitempty" yaml:"distance_to_parent,omitempty" toml:"distance_to_parent,omitempty"`
	ShiftX           int  `json:"shift_x,omitempty" yaml:"shift_x,omitempty" toml:"shift_x,omitempty"`
	ShiftY           int  `json:"shift_y,omitempty" yaml:"shift_y,omitempty" toml:"shift_y,omitempty"`
	Width            int  `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height           int  `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	Folded bool   `json:"folded,omitempty" yaml:"folded,omitempty" toml:"folded,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Cloud  *Cloud `json:"cloud,omitempty" yaml:"cloud,omitempty" toml:"cloud,omitempty"`

	Children []Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Cloud is a node's cloud decoration.
type Cloud struct {
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// ToMap builds a map from the document. Nodes without a key get a random
// UUID; duplicate keys, invalid names and invalid text are rejected with
// ErrCodeInvalidMap.
func (d *Document) ToMap() (*mindmap.Map, error) {
	b := builder{m: mindmap.New(""), keys: make(map[string]bool)}
	if err := b.apply(b.m.Root(), &d.Root); err != nil {
		return nil, err
	}
	return b.m, nil
}

type builder struct {
	m    *mindmap.Map
	keys map[string]bool
}

func (b *builder) apply(id mindmap.NodeID, n *Node) error {
	if err := errors.ValidateText(n.Text); err != nil {
		return err
	}
	key := n.Key
	if key == "" {
		key = uuid.NewString()
	} else if err := errors.ValidateKey(key); err != nil {
		return err
	}
	if b.keys[key] {
		return errors.New(errors.ErrCodeInvalidMap, "duplicate node key %q", key)
	}
	b.keys[key] = true

	m := b.m
	m.SetKey(id, key)
	m.SetText(id, n.Text)

	side, err := mindmap.ParseSide(n.Side)
	if err != nil {
		return invalid(key, err)
	}
	orientation, err := mindmap.ParseOrientation(n.Orientation)
	if err != nil {
		return invalid(key, err)
	}
	alignment, err := mindmap.ParseAlignment(n.Alignment)
	if err != nil {
		return invalid(key, err)
	}
	childrenSides, err := mindmap.ParseChildrenSides(n.ChildrenSides)
	if err != nil {
		return invalid(key, err)
	}
	m.SetSide(id, side)
	m.SetOrientation(id, orientation)
	m.SetAlignment(id, alignment)
	m.SetChildrenSides(id, childrenSides)

	m.SetSummary(id, n.Summary)
	m.SetFirstGroup(id, n.FirstGroup)
	m.SetHiddenSummary(id, n.HiddenSummary)
	m.SetFree(id, n.Free)
	m.SetCompact(id, n.Compact)
	m.SetShift(id, n.ShiftX, n.ShiftY)
	m.SetSize(id, n.Width, n.Height)

	gaps := mindmap.UnsetGaps()
	for _, g := range []struct {
		src *int
		dst *int
	}{
		{n.MinChildDistance, &gaps.MinChildDistance},
		{n.BaseDistance, &gaps.BaseDistance},
		{n.DistanceToParent, &gaps.DistanceToParent},
	} {
		if g.src == nil {
			continue
		}
		if *g.src < 0 {
			return errors.New(errors.ErrCodeInvalidMap, "node %q: gaps must not be negative", key)
		}
		*g.dst = *g.src
	}
	m.SetGaps(id, gaps)

	if n.Cloud != nil {
		shape, err := mindmap.ParseCloudShape(n.Cloud.Shape)
		if err != nil {
			return invalid(key, err)
		}
		m.SetCloud(id, &mindmap.Cloud{Shape: shape, Color: n.Cloud.Color})
	}

	for i := range n.Children {
		child := m.AddChild(id, "")
		if err := b.apply(child, &n.Children[i]); err != nil {
			return err
		}
	}
	m.SetHidden(id, n.Hidden)
	m.SetFolded(id, n.Folded)
	return nil
}

func invalid(key string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidMap, err, "node %q", key)
}

// FromMap converts a map into a document, omitting default attributes.
func FromMap(m *mindmap.Map) Document {
	return Document{Version: 1, Root: fromNode(m, m.Root())}
}

func fromNode(m *mindmap.Map, id mindmap.NodeID) Node {
	n := m.MustNode(id)
	out := Node{
		Key:           n.Key,
		Text:          n.Text,
		Summary:       n.Summary,
		FirstGroup:    n.FirstGroup,
		HiddenSummary: n.HiddenSummary,
		Free:          n.Free,
		Compact:       n.Compact,
		ShiftX:        n.ShiftX,
		ShiftY:        n.ShiftY,
		Width:         max(n.Width, 0),
		Height:        max(n.Height, 0),
		Folded:        n.Folded,
		Hidden:        n.Hidden,
	}
	if n.Side != mindmap.SideDefault {
		out.Side = n.Side.String()
	}
	if n.Orientation != mindmap.OrientationInherit {
		out.Orientation = n.Orientation.String()
	}
	if n.Alignment != mindmap.AlignNotSet {
		out.Alignment = n.Alignment.String()
	}
	if n.ChildrenSides != mindmap.ChildrenSidesAuto {
		out.ChildrenSides = n.ChildrenSides.String()
	}
	out.MinChildDistance = gap(n.Gaps.MinChildDistance)
	out.BaseDistance = gap(n.Gaps.BaseDistance)
	out.DistanceToParent = gap(n.Gaps.DistanceToParent)
	if n.Cloud != nil {
		out.Cloud = &Cloud{Shape: n.Cloud.Shape.String(), Color: n.Cloud.Color}
	}
	for _, c := range m.Children(id) {
		out.Children = append(out.Children, fromNode(m, c))
	}
	return out
}

func gap(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
