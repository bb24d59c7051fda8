// Package config loads the layout and view settings of mindlayout.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/mindlayout/config.toml:
//
//	zoom = 1.5
//	base_distance = 24
//	default_alignment = "flow"
//
//	[text]
//	char_width = 8
//
// Missing keys keep their defaults, and a missing file is not an error.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

const appName = "mindlayout"

// Config holds every user-tunable setting. Pixel values are unzoomed.
type Config struct {
	Zoom                 float64 `toml:"zoom"`
	SpaceAround          int     `toml:"space_around"`
	DefaultVGap          int     `toml:"default_vgap"`
	MinimalChildDistance int     `toml:"minimal_child_distance"`
	BaseDistance         int     `toml:"base_distance"`
	SummaryGap           int     `toml:"summary_gap"`
	SummarizedIndent     int     `toml:"summarized_indent"`
	OutlineIndent        int     `toml:"outline_indent"`
	OutlineGap           int     `toml:"outline_gap"`
	Outline              bool    `toml:"outline"`
	Compact              bool    `toml:"compact"`
	DefaultAlignment     string  `toml:"default_alignment"`

	Text  Text  `toml:"text"`
	Cloud Cloud `toml:"cloud"`
}

// Text configures the default content size oracle.
type Text struct {
	CharWidth  int `toml:"char_width"`
	LineHeight int `toml:"line_height"`
	Padding    int `toml:"padding"`
	MaxWidth   int `toml:"max_width"`
}

// Cloud configures the default cloud oracle.
type Cloud struct {
	Margin int `toml:"margin"`
}

// Default returns the stock configuration.
func Default() Config {
	p := layout.DefaultParams()
	t := layout.DefaultTextOracle()
	return Config{
		Zoom:                 p.Zoom,
		SpaceAround:          p.SpaceAround,
		DefaultVGap:          p.DefaultVGap,
		MinimalChildDistance: p.MinimalChildDistance,
		BaseDistance:         p.BaseDistance,
		SummaryGap:           p.SummaryGap,
		SummarizedIndent:     p.SummarizedIndent,
		OutlineIndent:        p.OutlineIndent,
		OutlineGap:           p.OutlineGap,
		DefaultAlignment:     p.DefaultAlignment.String(),
		Text: Text{
			CharWidth:  t.CharWidth,
			LineHeight: t.LineHeight,
			Padding:    t.Padding,
			MaxWidth:   t.MaxWidth,
		},
		Cloud: Cloud{Margin: layout.DefaultCloudOracle().Margin},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path on top of the defaults and validates the result. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot use.
func (c *Config) Validate() error {
	if c.Zoom <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom must be positive, got %g", c.Zoom)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"space_around", c.SpaceAround},
		{"default_vgap", c.DefaultVGap},
		{"minimal_child_distance", c.MinimalChildDistance},
		{"base_distance", c.BaseDistance},
		{"summary_gap", c.SummaryGap},
		{"summarized_indent", c.SummarizedIndent},
		{"outline_indent", c.OutlineIndent},
		{"outline_gap", c.OutlineGap},
		{"text.padding", c.Text.Padding},
		{"cloud.margin", c.Cloud.Margin},
	} {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %d", f.name, f.value)
		}
	}
	if c.Text.CharWidth <= 0 || c.Text.LineHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "text.char_width and text.line_height must be positive")
	}
	if _, err := mindmap.ParseAlignment(c.DefaultAlignment); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "default_alignment")
	}
	return nil
}

// Params converts the configuration into engine settings.
func (c *Config) Params() layout.Params {
	align, _ := mindmap.ParseAlignment(c.DefaultAlignment)
	return layout.Params{
		Zoom:                 c.Zoom,
		SpaceAround:          c.SpaceAround,
		DefaultVGap:          c.DefaultVGap,
		MinimalChildDistance: c.MinimalChildDistance,
		BaseDistance:         c.BaseDistance,
		SummaryGap:           c.SummaryGap,
		SummarizedIndent:     c.SummarizedIndent,
		OutlineIndent:        c.OutlineIndent,
		OutlineGap:           c.OutlineGap,
		Outline:              c.Outline,
		Compact:              c.Compact,
		DefaultAlignment:     align,
	}
}

// LayoutOptions returns the engine options for this configuration: the
// parameters and both content oracles.
func (c *Config) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithParams(c.Params()),
		layout.WithContentSize(layout.TextOracle{
			CharWidth:  c.Text.CharWidth,
			LineHeight: c.Text.LineHeight,
			Padding:    c.Text.Padding,
			MaxWidth:   c.Text.MaxWidth,
		}),
		layout.WithCloudHeight(layout.CloudOracle{Margin: c.Cloud.Margin}),
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
