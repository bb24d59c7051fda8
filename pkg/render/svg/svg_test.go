package svg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/geometry"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

func sampleScene(opts ...geometry.Option) geometry.Scene {
	m := mindmap.New("root & <co>")
	m.SetSize(m.Root(), 50, 20)
	a := m.AddChild(m.Root(), "a")
	m.SetSize(a, 40, 10)
	b := m.AddChild(m.Root(), "b")
	m.SetSize(b, 40, 10)
	s := m.AddChild(m.Root(), "sum")
	m.SetSize(s, 20, 10)
	m.SetSummary(s, true)
	m.SetCloud(a, &mindmap.Cloud{Shape: mindmap.CloudRoundRect})
	m.AddChild(b, "hidden leaf")
	m.SetFolded(b, true)
	return geometry.Build(layout.NewEngine(m), opts...)
}

// wellFormed parses out as XML and fails the test on any syntax error.
func wellFormed(t *testing.T, out []byte) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		if _, err := d.Token(); err != nil {
			require.ErrorIs(t, err, io.EOF)
			return
		}
	}
}

func TestRender(t *testing.T) {
	s := sampleScene()
	out := Render(s, WithTitle("demo"))
	wellFormed(t, out)
	svg := string(out)

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, svg, `<title>demo</title>`)
	assert.Contains(t, svg, `root &amp; &lt;co&gt;`)
	assert.Equal(t, len(s.Nodes), strings.Count(svg, `<g class="node"`))
	assert.Equal(t, len(s.Edges), strings.Count(svg, `class="edge"`))
	assert.Equal(t, 1, strings.Count(svg, `class="bracket"`))
	assert.Contains(t, svg, `class="cloud cloud-round_rect"`)
	assert.Contains(t, svg, `class="folded"`)
	assert.NotContains(t, svg, "hidden leaf")
	assert.NotContains(t, svg, `class="box"`)
	assert.NotContains(t, svg, "silhouette")
}

func TestRenderOptions(t *testing.T) {
	s := sampleScene(geometry.WithSilhouettes())
	svg := string(Render(s, WithBoxes(), WithSilhouettes()))
	assert.Equal(t, len(s.Nodes), strings.Count(svg, `class="box"`))
	assert.Contains(t, svg, "silhouette-top")
	assert.Contains(t, svg, "silhouette-bottom")

	// Silhouettes need to be recorded in the scene.
	plain := string(Render(sampleScene(), WithSilhouettes()))
	assert.NotContains(t, plain, "silhouette")
}

func TestRenderOutline(t *testing.T) {
	m := mindmap.New("root")
	c := m.AddChild(m.Root(), "child")
	m.SetSize(c, 30, 10)
	p := layout.DefaultParams()
	p.Outline = true
	s := geometry.Build(layout.NewEngine(m, layout.WithParams(p)))

	svg := string(Render(s))
	wellFormed(t, Render(s))
	assert.Contains(t, svg, " V")
	assert.Equal(t, 1, strings.Count(svg, `class="edge"`))
}

func TestStepPath(t *testing.T) {
	tests := []struct {
		name  string
		steps []geometry.Step
		want  string
	}{
		{"empty", nil, ""},
		{"single", []geometry.Step{{0, 10, 5}}, "M0,5 H10"},
		{"joined", []geometry.Step{{0, 10, 5}, {10, 20, 2}}, "M0,5 H10 V2 H20"},
		{"gap", []geometry.Step{{0, 10, 5}, {15, 20, 2}}, "M0,5 H10 M15,2 H20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stepPath(tt.steps))
		})
	}
}
