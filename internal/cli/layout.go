package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/config"
	"github.com/matzehuels/mindlayout/pkg/geometry"
)

// viewFlags are the per-run overrides of the configured view settings.
type viewFlags struct {
	inputFormat string
	outline     bool
	compact     bool
	zoom        float64
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "map format: json, yaml, toml (default: from extension)")
	cmd.Flags().BoolVar(&f.outline, "outline", false, "outline display mode")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "compact every subtree along its silhouette")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 0, "zoom factor (default: from config)")
}

// apply overrides cfg with the flags the user set explicitly.
func (f *viewFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("outline") {
		cfg.Outline = f.outline
	}
	if flags.Changed("compact") {
		cfg.Compact = f.compact
	}
	if flags.Changed("zoom") {
		cfg.Zoom = f.zoom
	}
	return cfg.Validate()
}

// layoutResult is a validated layout ready to be written.
type layoutResult struct {
	scene      geometry.Scene
	nodes      int
	recomputed int
}

// computeLayout reads input and lays it out with the effective settings.
func (c *CLI) computeLayout(ctx context.Context, cmd *cobra.Command, input string, flags *viewFlags, opts ...geometry.Option) (*layoutResult, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := flags.apply(cmd, &cfg); err != nil {
		return nil, err
	}

	m, err := c.readMap(input, flags.inputFormat)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	e := c.newEngine(m, cfg)
	defer e.Close()
	e.ValidateContext(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &layoutResult{
		scene:      geometry.Build(e, opts...),
		nodes:      m.Len(),
		recomputed: e.Stats().Recomputed,
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", res.nodes), "mode", res.scene.Mode)
	return res, nil
}

// layoutCommand creates the layout command which writes the geometry of a map.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		silhouettes bool
		flags       viewFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [map]",
		Short: "Compute the layout of a mind map",
		Long: `Compute the layout of a mind map.

The layout command reads a map document (JSON, YAML or TOML) and writes the
computed geometry as JSON: the box and content box of every visible node,
parent-child edges and summary brackets. Use "-" to read from stdin and write
to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []geometry.Option
			if silhouettes {
				opts = append(opts, geometry.WithSilhouettes())
			}
			return c.runLayout(cmd, args[0], output, &flags, opts...)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&silhouettes, "silhouettes", false, "include subtree silhouettes")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input, output string, flags *viewFlags, opts ...geometry.Option) error {
	res, err := c.computeLayout(cmd.Context(), cmd, input, flags, opts...)
	if err != nil {
		return err
	}

	data, err := geometry.Marshal(res.scene)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	outputPath := outputPath(input, output, ".layout.json")
	if err := c.writeOutput(outputPath, append(data, '\n')); err != nil {
		return err
	}
	if outputPath == stdio {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.nodes, res.scene.Width, res.scene.Height, res.recomputed)
	printDiagnostics(res.scene.Diagnostics)
	printNewline()
	printNextStep("Render", "mindlayout render "+input)
	return nil
}
