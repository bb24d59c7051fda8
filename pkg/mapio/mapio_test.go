package mapio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

const sampleYAML = `
root:
  key: project
  text: Project
  children_sides: both
  children:
    - key: goals
      text: Goals
      side: left
      cloud:
        shape: arc
        color: "#ffeecc"
    - key: tasks
      text: Tasks
      orientation: horizontal
      alignment: flow
      min_child_distance: 6
      children:
        - key: write
          text: Write
        - key: review
          text: Review
          folded: true
          children:
            - text: Proofread
    - key: week
      text: This week
      summary: true
    - key: note
      text: Note
      free: true
      shift_x: 10
      shift_y: -30
      width: 80
      height: 24
`

func TestReadYAML(t *testing.T) {
	m, err := Read(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	root := m.MustNode(m.Root())
	assert.Equal(t, "Project", root.Text)
	assert.Equal(t, mindmap.ChildrenSidesBoth, root.ChildrenSides)
	require.Len(t, root.Children, 4)

	goals, ok := m.FindByKey("goals")
	require.True(t, ok)
	g := m.MustNode(goals)
	assert.Equal(t, mindmap.SideTopOrLeft, g.Side)
	require.NotNil(t, g.Cloud)
	assert.Equal(t, mindmap.CloudArc, g.Cloud.Shape)
	assert.Equal(t, "#ffeecc", g.Cloud.Color)

	tasks, _ := m.FindByKey("tasks")
	tn := m.MustNode(tasks)
	assert.Equal(t, mindmap.OrientationHorizontal, tn.Orientation)
	assert.Equal(t, mindmap.AlignFlow, tn.Alignment)
	assert.Equal(t, 6, tn.Gaps.MinChildDistance)
	assert.Equal(t, -1, tn.Gaps.BaseDistance)

	review, _ := m.FindByKey("review")
	assert.True(t, m.MustNode(review).Folded)
	assert.Empty(t, m.VisibleChildren(review))
	proofread := m.Children(review)[0]
	_, err = uuid.Parse(m.MustNode(proofread).Key)
	assert.NoError(t, err, "missing keys are filled with uuids")

	week, _ := m.FindByKey("week")
	assert.True(t, m.MustNode(week).Summary)

	note, _ := m.FindByKey("note")
	nn := m.MustNode(note)
	assert.True(t, nn.Free)
	assert.Equal(t, 10, nn.ShiftX)
	assert.Equal(t, -30, nn.ShiftY)
	assert.Equal(t, 80, nn.Width)
	assert.Equal(t, 24, nn.Height)
}

func TestRoundTrip(t *testing.T) {
	m, err := Read(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	want := FromMap(m)

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(m, &buf, format))

			again, err := Read(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, want, FromMap(again))
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"root": `, errors.ErrCodeInvalidFormat},
		{"unknown json field", FormatJSON, `{"root": {"text": "a", "colour": "red"}}`, errors.ErrCodeInvalidFormat},
		{"unknown yaml field", FormatYAML, "root:\n  txt: a\n", errors.ErrCodeInvalidFormat},
		{"unknown toml field", FormatTOML, "[root]\ntext = \"a\"\nsize = 3\n", errors.ErrCodeInvalidFormat},
		{"bad side", FormatJSON, `{"root": {"text": "a", "children": [{"text": "b", "side": "up"}]}}`, errors.ErrCodeInvalidMap},
		{"bad alignment", FormatYAML, "root:\n  text: a\n  alignment: sideways\n", errors.ErrCodeInvalidMap},
		{"bad cloud", FormatJSON, `{"root": {"text": "a", "cloud": {"shape": "blob"}}}`, errors.ErrCodeInvalidMap},
		{"duplicate key", FormatJSON, `{"root": {"key": "a", "text": "a", "children": [{"key": "a", "text": "b"}]}}`, errors.ErrCodeInvalidMap},
		{"bad key", FormatJSON, `{"root": {"key": "a b", "text": "a"}}`, errors.ErrCodeInvalidMap},
		{"negative gap", FormatJSON, `{"root": {"text": "a", "base_distance": -4}}`, errors.ErrCodeInvalidMap},
		{"control text", FormatJSON, `{"root": {"text": "a\u0007"}}`, errors.ErrCodeInvalidMap},
		{"unknown format", Format("xml"), `<map/>`, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestReadTooLarge(t *testing.T) {
	data := strings.Repeat(" ", MaxDocumentSize+1)
	_, err := Read(strings.NewReader(data), FormatJSON)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestFormats(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"map.json", FormatJSON, false},
		{"dir/map.yml", FormatYAML, false},
		{"map.yaml", FormatYAML, false},
		{"map.toml", FormatTOML, false},
		{"map.mm", "", true},
		{"map", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("opml")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestFiles(t *testing.T) {
	m, err := Read(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "map.toml")
	require.NoError(t, WriteFile(m, path))
	again, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), again.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	err = WriteFile(m, filepath.Join(dir, "map.txt"))
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}
