package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

func sampleMap() (*mindmap.Map, map[string]mindmap.NodeID) {
	m := mindmap.New("root")
	ids := map[string]mindmap.NodeID{"root": m.Root()}
	ids["a"] = m.AddChild(m.Root(), "a")
	ids["b"] = m.AddChild(m.Root(), "b")
	ids["sum"] = m.AddChild(m.Root(), "sum")
	ids["free"] = m.AddChild(ids["a"], "free")
	ids["deep"] = m.AddChild(ids["b"], "deep")
	m.SetSummary(ids["sum"], true)
	m.SetFree(ids["free"], true)
	m.SetFolded(ids["b"], true)
	return m, ids
}

func TestToDOT_Basic(t *testing.T) {
	m, ids := sampleMap()
	dot := ToDOT(m, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() output should grow left to right")
	}
	for _, name := range []string{"root", "a", "b", "sum", "free"} {
		if !strings.Contains(dot, nodeName(ids[name])+" [label=") {
			t.Errorf("ToDOT() output missing node %s", name)
		}
	}
	edge := nodeName(ids["root"]) + " -> " + nodeName(ids["a"])
	if !strings.Contains(dot, edge) {
		t.Errorf("ToDOT() output missing edge %s", edge)
	}
	if strings.Contains(dot, `"deep"`) {
		t.Error("ToDOT() should skip descendants of folded nodes")
	}
}

func TestToDOT_ShowFolded(t *testing.T) {
	m, ids := sampleMap()
	dot := ToDOT(m, Options{ShowFolded: true})
	if !strings.Contains(dot, nodeName(ids["b"])+" -> "+nodeName(ids["deep"])) {
		t.Error("ToDOT() with ShowFolded missing folded descendant")
	}
}

func TestToDOT_Hidden(t *testing.T) {
	m, ids := sampleMap()
	m.SetHidden(ids["a"], true)
	dot := ToDOT(m, Options{})
	if strings.Contains(dot, nodeName(ids["a"])+" [") {
		t.Error("ToDOT() should skip hidden nodes")
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		name string
		node mindmap.Node
		want string
	}{
		{"summary", mindmap.Node{Text: "s", Summary: true}, "dashed"},
		{"hidden summary", mindmap.Node{HiddenSummary: true}, "lightgrey"},
		{"free", mindmap.Node{Text: "f", Free: true}, "dotted"},
		{"folded", mindmap.Node{Text: "f", Folded: true, Children: []mindmap.NodeID{3}}, "peripheries=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := strings.Join(fmtAttrs(&tt.node, false), ", ")
			if !strings.Contains(attrs, tt.want) {
				t.Errorf("fmtAttrs() = %q, want it to contain %q", attrs, tt.want)
			}
		})
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	n := mindmap.Node{Text: "topic", Key: "k1"}
	if label := fmtLabel(&n, false); label != "topic" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "topic")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	n := mindmap.Node{
		Text:      "topic",
		Key:       "k1",
		Side:      mindmap.SideTopOrLeft,
		Alignment: mindmap.AlignByCenter,
	}
	label := fmtLabel(&n, true)
	for _, want := range []string{"topic\n", "key: k1", "side: left", "alignment: by_center"} {
		if !strings.Contains(label, want) {
			t.Errorf("fmtLabel() detailed = %q, missing %q", label, want)
		}
	}
	if strings.Contains(label, "orientation") {
		t.Errorf("fmtLabel() detailed = %q, should omit default orientation", label)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave svg without viewBox untouched")
	}
}
