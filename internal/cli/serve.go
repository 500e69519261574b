package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

POST /generate-pdf with {"picks": [...]} returns the bracket as a PDF
attachment. See also /api/v1/render, /healthz, /version and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :5000)")
	return cmd
}

// runServe serves until ctx is cancelled. An empty addr uses the configured
// address.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg := c.config()
	if addr != "" {
		cfg.Server.Addr = addr
	}

	runner := c.newRunner(ctx, false)
	defer runner.Close()

	srv := server.New(runner, cfg.Server,
		server.WithDefaults(c.baseOptions()),
		server.WithLogger(c.Logger),
	)
	c.ui().note("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))

	return srv.Serve(ctx)
}
