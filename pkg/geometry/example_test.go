package geometry_test

import (
	"fmt"

	"github.com/matzehuels/mindlayout/pkg/geometry"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

func ExampleBuild() {
	m := mindmap.New("root")
	m.SetSize(m.Root(), 50, 20)
	child := m.AddChild(m.Root(), "child")
	m.SetSize(child, 30, 10)

	s := geometry.Build(layout.NewEngine(m))
	fmt.Printf("%dx%d %s\n", s.Width, s.Height, s.Mode)
	for _, n := range s.Nodes {
		fmt.Printf("%s %+v\n", n.Label, n.Content)
	}
	// Output:
	// 108x28 vertical
	// root {X:4 Y:4 W:50 H:20}
	// child {X:74 Y:9 W:30 H:10}
}
