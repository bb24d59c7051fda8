package geometry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/layout/stepfunc"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// Layout modes.
const (
	ModeVertical = "vertical"
	ModeOutline  = "outline"
)

// Scene is the serializable geometry of a laid-out map.
type Scene struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Mode   string  `json:"mode"`
	Zoom   float64 `json:"zoom"`

	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges,omitempty"`
	Brackets []Bracket `json:"brackets,omitempty"`

	// Diagnostics lists the kinds of structural problems the engine worked
	// around, such as "side-conflict".
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

func rectOf(b layout.Block) Rect {
	return Rect{X: b.Left, Y: b.Top, W: b.Width(), H: b.Height()}
}

// Node is one visible map node.
type Node struct {
	ID     int    `json:"id"`
	Key    string `json:"key,omitempty"`
	Parent int    `json:"parent"`
	Depth  int    `json:"depth"`
	Label  string `json:"label,omitempty"`

	Box     Rect `json:"box"`
	Content Rect `json:"content"`

	Side    string `json:"side,omitempty"`
	Axis    string `json:"axis"`
	Free    bool   `json:"free,omitempty"`
	Summary bool   `json:"summary,omitempty"`
	Folded  bool   `json:"folded,omitempty"`
	Cloud   string `json:"cloud,omitempty"`

	Silhouette *Silhouette `json:"silhouette,omitempty"`
}

// Silhouette is the outline of a subtree in absolute coordinates: Top and
// Bottom give the smallest and largest occupied y over runs of x.
type Silhouette struct {
	Top    []Step `json:"top"`
	Bottom []Step `json:"bottom"`
}

// Step is one constant run of a silhouette.
type Step struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Value int `json:"value"`
}

// Edge connects a parent to a visible child.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Bracket is a summary and the siblings it brackets.
type Bracket struct {
	Summary int    `json:"summary"`
	Members []int  `json:"members"`
	Side    string `json:"side"`
	// Span covers the members' boxes.
	Span Rect `json:"span"`
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	silhouettes bool
}

// WithSilhouettes records every node's subtree silhouettes.
func WithSilhouettes() Option {
	return func(o *buildOptions) { o.silhouettes = true }
}

// Build validates e and snapshots its geometry. Nodes appear in depth-first
// order starting at the root.
func Build(e *layout.Engine, opts ...Option) Scene {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	m := e.Map()
	root := e.Layout(m.Root())
	mode := ModeVertical
	if e.Params().Outline {
		mode = ModeOutline
	}
	s := Scene{
		Width:  root.Width,
		Height: root.Height,
		Mode:   mode,
		Zoom:   e.Params().Zoom,
	}
	if diags := e.Diagnostics(); len(diags) > 0 {
		s.Diagnostics = diags
	}

	var walk func(id mindmap.NodeID, depth int)
	walk = func(id mindmap.NodeID, depth int) {
		n := m.MustNode(id)
		ln := e.Layout(id)
		box, _ := e.Box(id)
		content, _ := e.ContentBox(id)

		out := Node{
			ID:      int(id),
			Key:     n.Key,
			Parent:  int(n.Parent),
			Depth:   depth,
			Label:   n.Text,
			Box:     rectOf(box),
			Content: rectOf(content),
			Axis:    ln.Axis.String(),
			Free:    n.Free,
			Summary: n.IsSummaryNode(),
			Folded:  n.Folded && len(n.Children) > 0,
		}
		if n.Cloud != nil {
			out.Cloud = n.Cloud.Shape.String()
		}
		if parent := e.Layout(n.Parent); parent != nil {
			for i, c := range parent.Children {
				if c == id {
					out.Side = parent.ChildSides[i].String()
				}
			}
		}
		if o.silhouettes {
			out.Silhouette = &Silhouette{
				Top:    steps(ln.Silhouettes.Top.Translate(box.Left, box.Top)),
				Bottom: steps(ln.Silhouettes.Bottom.Translate(box.Left, box.Top)),
			}
		}
		s.Nodes = append(s.Nodes, out)

		for _, c := range ln.Children {
			s.Edges = append(s.Edges, Edge{From: int(id), To: int(c)})
		}
		s.Brackets = append(s.Brackets, brackets(e, ln)...)
		for _, c := range ln.Children {
			walk(c, depth+1)
		}
	}
	walk(m.Root(), 0)
	return s
}

func steps(f stepfunc.Func) []Step {
	segs := f.Segments()
	out := make([]Step, len(segs))
	for i, seg := range segs {
		out[i] = Step{From: seg.From, To: seg.To, Value: seg.Value}
	}
	return out
}

// brackets collects the summaries among ln's children. Members are the
// stacked siblings on the summary's side from the start of its group.
func brackets(e *layout.Engine, ln *layout.LayoutNode) []Bracket {
	var out []Bracket
	for i, start := range ln.Groups {
		if start < 0 {
			continue
		}
		b := Bracket{Summary: int(ln.Children[i]), Side: ln.ChildSides[i].String()}
		var span layout.Block
		for p := start; p < i; p++ {
			if ln.ChildSides[p] != ln.ChildSides[i] || ln.ChildFree[p] {
				continue
			}
			b.Members = append(b.Members, int(ln.Children[p]))
			box, _ := e.Box(ln.Children[p])
			span = span.Union(box)
		}
		if len(b.Members) == 0 {
			continue
		}
		b.Span = rectOf(span)
		out = append(out, b)
	}
	return out
}

// Find returns the node with the given id.
func (s *Scene) Find(id int) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Marshal serializes a Scene to pretty-printed JSON bytes.
func Marshal(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Scene.
func Unmarshal(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if len(s.Nodes) == 0 {
		return Scene{}, fmt.Errorf("scene must contain nodes")
	}
	if s.Mode == "" {
		s.Mode = ModeVertical
	}
	return s, nil
}

// Write encodes s as JSON to w.
func Write(s Scene, w io.Writer) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes s to a JSON file.
func WriteFile(s Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Scene from a JSON file.
func ReadFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
