package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/metrics"
	"github.com/matzehuels/mindlayout/pkg/server"
)

// serveCommand creates the serve command which exposes layouts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

POST a map document to /v1/layout for its geometry as JSON, or to /v1/render
for an SVG. Query parameters outline, zoom, compact and silhouettes override
the configuration per request. /healthz reports liveness and /metrics exposes
Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			opts := []server.Option{server.WithConfig(cfg), server.WithLogger(c.Logger)}
			if !noMetrics {
				opts = append(opts, server.WithMetrics(metrics.DefaultRegistry().Handler()))
			}
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return server.New(opts...).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}
