package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/geometry"
	"github.com/matzehuels/mindlayout/pkg/render"
	"github.com/matzehuels/mindlayout/pkg/render/nodelink"
	"github.com/matzehuels/mindlayout/pkg/render/svg"
)

// artifactTTL bounds how long a cached Graphviz rendering is reused.
const artifactTTL = 7 * 24 * time.Hour

const (
	typeBoxes    = "boxes"    // the engine's geometry, box by box
	typeNodeLink = "nodelink" // Graphviz reference diagram
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path
	vizType     string  // "boxes" or "nodelink"
	format      string  // "svg", "pdf" or "png"
	scale       float64 // PNG scale factor
	silhouettes bool    // overlay subtree silhouettes (boxes)
	boxes       bool    // outline full node boxes (boxes)
	detailed    bool    // label nodes with their attributes (nodelink)
	noCache     bool    // skip the Graphviz artifact cache (nodelink)
	view        viewFlags
}

// renderCommand creates the render command for generating pictures of a map.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{vizType: typeBoxes, format: render.FormatSVG, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [map]",
		Short: "Render a mind map to SVG, PDF or PNG",
		Long: `Render a mind map to SVG, PDF or PNG.

The boxes type paints the computed layout exactly: node boxes, text, connectors
and summary brackets. The nodelink type lays the map out with Graphviz instead,
which is handy as a reference. PDF and PNG output need rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: boxes, nodelink")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, pdf, png")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.silhouettes, "silhouettes", false, "overlay subtree silhouettes (boxes)")
	cmd.Flags().BoolVar(&opts.boxes, "boxes", false, "outline full node boxes including margins (boxes)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node attributes in labels (nodelink)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run Graphviz (nodelink)")
	opts.view.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	format, err := errors.ValidateFormat(opts.format, render.FormatSVG, render.FormatPDF, render.FormatPNG)
	if err != nil {
		return err
	}
	outputPath := outputPath(input, opts.output, "."+format)
	quiet := outputPath == stdio

	var out []byte
	switch strings.ToLower(opts.vizType) {
	case typeBoxes:
		var geomOpts []geometry.Option
		svgOpts := []svg.Option{svg.WithTitle(input)}
		if opts.silhouettes {
			geomOpts = append(geomOpts, geometry.WithSilhouettes())
			svgOpts = append(svgOpts, svg.WithSilhouettes())
		}
		if opts.boxes {
			svgOpts = append(svgOpts, svg.WithBoxes())
		}
		res, err := c.computeLayout(ctx, cmd, input, &opts.view, geomOpts...)
		if err != nil {
			return err
		}
		if !quiet {
			printDiagnostics(res.scene.Diagnostics)
		}
		out = svg.Render(res.scene, svgOpts...)

	case typeNodeLink:
		m, err := c.readMap(input, opts.view.inputFormat)
		if err != nil {
			return fmt.Errorf("load map %s: %w", input, err)
		}
		out, err = c.renderNodeLink(ctx, nodelink.ToDOT(m, nodelink.Options{Detailed: opts.detailed}), opts.noCache)
		if err != nil {
			return err
		}

	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown visualization type %q (want %s or %s)", opts.vizType, typeBoxes, typeNodeLink)
	}

	if format != render.FormatSVG {
		c.Logger.Debug("Converting", "format", format, "scale", opts.scale)
	}
	out, err = render.Convert(ctx, out, format, opts.scale)
	if err != nil {
		return fmt.Errorf("convert to %s: %w", format, err)
	}

	if err := c.writeOutput(outputPath, out); err != nil {
		return err
	}
	if !quiet {
		printSuccess("Rendered %s", opts.vizType)
		printFile(outputPath)
	}
	return nil
}

// renderNodeLink runs Graphviz on dot, reusing an earlier result for the
// same source unless noCache is set.
func (c *CLI) renderNodeLink(ctx context.Context, dot string, noCache bool) ([]byte, error) {
	store := c.artifactCache(noCache)
	defer store.Close()

	key := cache.Key("nodelink", dot)
	if data, hit, err := store.Get(ctx, key); err != nil {
		c.Logger.Warn("Cache read failed", "error", err)
	} else if hit {
		c.Logger.Debug("Cache hit", "key", key)
		return data, nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering with Graphviz...")
	spinner.Start()
	out, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Graphviz failed")
		return nil, fmt.Errorf("render nodelink: %w", err)
	}
	spinner.Stop()

	if err := store.Set(ctx, key, out, artifactTTL); err != nil {
		c.Logger.Warn("Cache write failed", "error", err)
	}
	return out, nil
}
