package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

const (
	zoomStep     = 1.25
	minZoom      = 0.25
	maxZoom      = 8
	maxLabelCols = 40
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

type inspectRow struct {
	id    mindmap.NodeID
	depth int
}

// InspectModel is the bubbletea model for browsing a laid-out map. Folding,
// outline and zoom go through the map and engine setters, so only the
// affected nodes are recomputed.
type InspectModel struct {
	Map    *mindmap.Map
	Engine *layout.Engine
	Cursor int
	Offset int
	Height int

	rows []inspectRow
}

// NewInspectModel creates a browser over e's map.
func NewInspectModel(e *layout.Engine) InspectModel {
	m := InspectModel{Map: e.Map(), Engine: e, Height: 15}
	m.refresh()
	return m
}

// refresh validates the layout and rebuilds the visible rows.
func (m *InspectModel) refresh() {
	m.Engine.Validate()

	var rows []inspectRow
	var walk func(id mindmap.NodeID, depth int)
	walk = func(id mindmap.NodeID, depth int) {
		rows = append(rows, inspectRow{id: id, depth: depth})
		for _, c := range m.Map.VisibleChildren(id) {
			if !m.Map.MustNode(c).Hidden {
				walk(c, depth+1)
			}
		}
	}
	walk(m.Map.Root(), 0)
	m.rows = rows

	m.Cursor = min(m.Cursor, len(rows)-1)
	m.scroll()
}

func (m *InspectModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the node under the cursor.
func (m InspectModel) Selected() mindmap.NodeID { return m.rows[m.Cursor].id }

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.scroll()
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				m.scroll()
			}
		case " ", "space", "enter":
			id := m.Selected()
			if n := m.Map.MustNode(id); len(n.Children) > 0 {
				m.Map.SetFolded(id, !n.Folded)
				m.refresh()
			}
		case "o":
			m.Engine.SetOutline(!m.Engine.Params().Outline)
			m.refresh()
		case "+", "=":
			m.Engine.SetZoom(min(maxZoom, m.Engine.Params().Zoom*zoomStep))
			m.refresh()
		case "-":
			m.Engine.SetZoom(max(minZoom, m.Engine.Params().Zoom/zoomStep))
			m.refresh()
		case "r":
			m.Engine.InvalidateAll()
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-14)
		m.scroll()
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space fold  o outline  +/- zoom  r recompute  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		line := m.rowLabel(m.rows[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailTable())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m InspectModel) rowLabel(r inspectRow) string {
	n := m.Map.MustNode(r.id)
	marker := "·"
	switch {
	case len(n.Children) > 0 && n.Folded:
		marker = "+"
	case len(n.Children) > 0:
		marker = "-"
	}
	label := nodeLabel(n)
	if n.IsSummaryNode() {
		label += listDimStyle.Render(" (summary)")
	}
	return strings.Repeat("  ", r.depth) + marker + " " + label
}

// nodeLabel returns the first line of the node text, cut to fit a row.
func nodeLabel(n *mindmap.Node) string {
	text, _, _ := strings.Cut(n.Text, "\n")
	if text == "" {
		text = listDimStyle.Render("(empty)")
	}
	return runewidth.Truncate(text, maxLabelCols, "…")
}

func (m InspectModel) detailTable() string {
	id := m.Selected()
	n := m.Map.MustNode(id)
	ln := m.Engine.Layout(id)
	box, _ := m.Engine.Box(id)
	content, _ := m.Engine.ContentBox(id)

	rows := [][]string{
		{"key", n.Key},
		{"box", fmtBlock(box)},
		{"content", fmtBlock(content)},
		{"offset", fmt.Sprintf("%d,%d", content.Left-box.Left, content.Top-box.Top)},
		{"overlap", fmt.Sprintf("top %d  bottom %d  left %d  right %d",
			ln.Overlap.Top, ln.Overlap.Bottom, ln.Overlap.Left, ln.Overlap.Right)},
		{"axis", ln.Axis.String()},
		{"side", sideOf(m.Engine, id)},
		{"children", fmt.Sprintf("%d", len(n.Children))},
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	return t.Render()
}

func (m InspectModel) footer() string {
	p := m.Engine.Params()
	root := m.Engine.Layout(m.Map.Root())
	mode := "vertical"
	if p.Outline {
		mode = "outline"
	}
	return listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s  zoom %.2f  %d×%d  recomputed %d",
		m.Cursor+1, len(m.rows), mode, p.Zoom, root.Width, root.Height, m.Engine.Stats().LastRecomputed))
}

func fmtBlock(b layout.Block) string {
	return fmt.Sprintf("%d,%d %d×%d", b.Left, b.Top, b.Width(), b.Height())
}

// sideOf reports the side id was placed on by its parent.
func sideOf(e *layout.Engine, id mindmap.NodeID) string {
	parent := e.Layout(e.Map().Parent(id))
	if parent == nil {
		return "-"
	}
	for i, c := range parent.Children {
		if c == id {
			return parent.ChildSides[i].String()
		}
	}
	return "-"
}
