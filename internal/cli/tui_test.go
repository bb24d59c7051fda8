package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

func inspectFixture() (InspectModel, map[string]mindmap.NodeID) {
	m := mindmap.New("root")
	ids := map[string]mindmap.NodeID{}
	ids["a"] = m.AddChild(m.Root(), "a")
	ids["a1"] = m.AddChild(ids["a"], "a1")
	ids["a2"] = m.AddChild(ids["a"], "a2")
	ids["b"] = m.AddChild(m.Root(), "b\nsecond line")
	return NewInspectModel(layout.NewEngine(m)), ids
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m InspectModel, keys ...string) InspectModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(InspectModel)
	}
	return m
}

func TestInspectNavigation(t *testing.T) {
	m, ids := inspectFixture()
	require.Len(t, m.rows, 5)
	assert.Equal(t, m.Map.Root(), m.Selected())

	m = press(m, "down", "down")
	assert.Equal(t, ids["a1"], m.Selected())

	m = press(m, "up", "up", "up")
	assert.Equal(t, 0, m.Cursor, "cursor stops at the top")

	m = press(m, "j", "j", "j", "j", "j", "j")
	assert.Equal(t, ids["b"], m.Selected(), "cursor stops at the bottom")
}

func TestInspectFold(t *testing.T) {
	m, ids := inspectFixture()
	m = press(m, "down")
	require.Equal(t, ids["a"], m.Selected())

	before := m.Engine.Stats().Recomputed
	m = press(m, " ")
	assert.True(t, m.Map.MustNode(ids["a"]).Folded)
	assert.Len(t, m.rows, 3)
	assert.Equal(t, ids["a"], m.Selected(), "selection stays on the folded node")
	// Only the folded node and its ancestors are laid out again.
	assert.Equal(t, 2, m.Engine.Stats().Recomputed-before)

	m = press(m, " ")
	assert.False(t, m.Map.MustNode(ids["a"]).Folded)
	assert.Len(t, m.rows, 5)

	// Leaves don't fold.
	m = press(m, "down", " ")
	assert.False(t, m.Map.MustNode(ids["a1"]).Folded)
}

func TestInspectViewSettings(t *testing.T) {
	m, _ := inspectFixture()

	m = press(m, "o")
	assert.True(t, m.Engine.Params().Outline)
	assert.Contains(t, m.View(), "outline")
	m = press(m, "o")
	assert.False(t, m.Engine.Params().Outline)

	m = press(m, "+")
	assert.InDelta(t, zoomStep, m.Engine.Params().Zoom, 1e-9)
	m = press(m, "-", "-")
	assert.InDelta(t, 1/zoomStep, m.Engine.Params().Zoom, 1e-9)
	for range 20 {
		m = press(m, "-")
	}
	assert.Equal(t, minZoom, m.Engine.Params().Zoom)
}

func TestInspectQuit(t *testing.T) {
	m, _ := inspectFixture()
	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestInspectWindowSize(t *testing.T) {
	m, _ := inspectFixture()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 17})
	m = next.(InspectModel)
	assert.Equal(t, 5, m.Height)

	m = press(m, "down", "down", "down", "down", "down")
	assert.Equal(t, 0, m.Offset)
}

func TestInspectView(t *testing.T) {
	m, _ := inspectFixture()
	m = press(m, "down")
	view := m.View()

	assert.Contains(t, view, "Inspect Layout")
	assert.Contains(t, view, "- a")
	assert.Contains(t, view, "· a1")
	assert.Contains(t, view, "b")
	assert.NotContains(t, view, "second line")
	assert.Contains(t, view, "content")
	assert.Contains(t, view, "right")
	assert.Contains(t, view, "[2/5]")
}

func TestSideOf(t *testing.T) {
	m, ids := inspectFixture()
	assert.Equal(t, "-", sideOf(m.Engine, m.Map.Root()))
	assert.Equal(t, "right", sideOf(m.Engine, ids["a"]))
}
