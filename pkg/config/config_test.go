package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultMatchesEngine(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, layout.DefaultParams(), cfg.Params())
	assert.Equal(t, "by_center", cfg.DefaultAlignment)
	assert.Equal(t, 8, cfg.Cloud.Margin)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
zoom = 1.5
base_distance = 24
default_alignment = "flow"
compact = true

[text]
char_width = 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Zoom)
	assert.Equal(t, 24, cfg.BaseDistance)
	assert.Equal(t, 8, cfg.Text.CharWidth)
	assert.Equal(t, 16, cfg.Text.LineHeight, "unset keys keep defaults")

	p := cfg.Params()
	assert.Equal(t, mindmap.AlignFlow, p.DefaultAlignment)
	assert.True(t, p.Compact)
	assert.Equal(t, 3, p.MinimalChildDistance)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "zoom = "},
		{"unknown key", "zooom = 2"},
		{"zero zoom", "zoom = 0"},
		{"negative gap", "base_distance = -1"},
		{"negative padding", "[text]\npadding = -2"},
		{"zero char width", "[text]\nchar_width = 0"},
		{"unknown alignment", `default_alignment = "diagonal"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), err.Error())
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/mindlayout/config.toml", p)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	p, err = Path()
	require.NoError(t, err)
	assert.Equal(t, "/home/someone/.config/mindlayout/config.toml", p)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Zoom = 2
	cfg.Outline = true

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	got, err := Load(writeConfig(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLayoutOptions(t *testing.T) {
	cfg := Default()
	cfg.Zoom = 2
	cfg.Text.Padding = 0
	cfg.Text.CharWidth = 10

	m := mindmap.New("abc")
	e := layout.NewEngine(m, cfg.LayoutOptions()...)
	root := e.Layout(m.Root())
	assert.Equal(t, 2.0, e.Params().Zoom)
	assert.Equal(t, 60, root.ContentW, "three cells of 10px, zoomed twice")
	assert.Equal(t, 32, root.ContentH)
}
