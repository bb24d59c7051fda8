package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/geometry"
)

const testMapYAML = `root:
  key: root
  text: Topic
  children:
    - text: First
      children:
        - text: Leaf
    - text: Second
    - text: Both
      summary: true
`

// runCLI executes the root command with args and returns what went to
// stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.stdin = strings.NewReader(stdin)
	c.stdout = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testMapYAML), 0o644))
	return path
}

func TestLayoutCommand(t *testing.T) {
	input := writeMap(t)
	_, err := runCLI(t, "", "layout", input)
	require.NoError(t, err)

	scene, err := geometry.ReadFile(strings.TrimSuffix(input, ".yaml") + ".layout.json")
	require.NoError(t, err)
	assert.Equal(t, geometry.ModeVertical, scene.Mode)
	assert.Len(t, scene.Nodes, 5)
	assert.Len(t, scene.Brackets, 1)
}

func TestLayoutCommandStdio(t *testing.T) {
	out, err := runCLI(t, `{"root": {"text": "r", "children": [{"text": "c"}]}}`,
		"layout", "-", "--outline", "--silhouettes")
	require.NoError(t, err)

	scene, err := geometry.Unmarshal([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, geometry.ModeOutline, scene.Mode)
	require.Len(t, scene.Nodes, 2)
	assert.NotNil(t, scene.Nodes[0].Silhouette)
}

func TestLayoutCommandConfig(t *testing.T) {
	input := writeMap(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("zoom = 2.0\n"), 0o644))
	output := filepath.Join(t.TempDir(), "out.json")

	_, err := runCLI(t, "", "layout", input, "--config", cfgPath, "-o", output)
	require.NoError(t, err)
	scene, err := geometry.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 2.0, scene.Zoom)

	_, err = runCLI(t, "", "layout", input, "--config", cfgPath, "-o", output, "--zoom", "1.5")
	require.NoError(t, err)
	scene, err = geometry.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 1.5, scene.Zoom)
}

func TestLayoutCommandErrors(t *testing.T) {
	input := writeMap(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"layout", filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad zoom", []string{"layout", input, "--zoom", "-1"}, errors.ErrCodeInvalidConfig},
		{"unknown extension", []string{"layout", filepath.Join(t.TempDir(), "map.txt")}, errors.ErrCodeUnsupported},
		{"bad input format", []string{"layout", input, "--input-format", "xml"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeMap(t)
	_, err := runCLI(t, "", "render", input, "--silhouettes", "--boxes")
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimSuffix(input, ".yaml") + ".svg")
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "Topic")
	assert.Contains(t, svg, "silhouette-top")
	assert.Contains(t, svg, `class="box"`)
}

func TestRenderCommandNodeLink(t *testing.T) {
	out, err := runCLI(t, testMapYAML, "render", "-", "--input-format", "yaml", "-t", "nodelink", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "key: root")
}

func TestRenderNodeLinkCache(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()
	dot := "digraph G { a -> b }"

	first, err := c.renderNodeLink(ctx, dot, false)
	require.NoError(t, err)

	store := c.artifactCache(false)
	cached, hit, err := store.Get(ctx, cache.Key("nodelink", dot))
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, first, cached)

	require.NoError(t, store.Set(ctx, cache.Key("nodelink", dot), []byte("<svg>cached</svg>"), 0))
	again, err := c.renderNodeLink(ctx, dot, false)
	require.NoError(t, err)
	assert.Equal(t, "<svg>cached</svg>", string(again))

	fresh, err := c.renderNodeLink(ctx, dot, true)
	require.NoError(t, err)
	assert.Contains(t, string(fresh), "<svg")
	assert.NotEqual(t, "<svg>cached</svg>", string(fresh))
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeMap(t)

	_, err := runCLI(t, "", "render", input, "-t", "tower")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	_, err = runCLI(t, "", "render", input, "-f", "gif")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported), "got %v", err)
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "zoom = 1.0")
	assert.Contains(t, out, "[text]")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	_, err := runCLI(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = runCLI(t, "", "config", "init", "--config", path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	_, err = runCLI(t, "", "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	// The written defaults load back.
	out, err := runCLI(t, "", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "base_distance = 20")
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "mindlayout")

	_, err = runCLI(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, output, suffix, want string
	}{
		{"maps/topic.yaml", "", ".svg", "maps/topic.svg"},
		{"topic", "", ".layout.json", "topic.layout.json"},
		{"topic.json", "out.json", ".layout.json", "out.json"},
		{"-", "", ".svg", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.input, tt.output, tt.suffix))
		})
	}
}
