package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidegen/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the deck API until interrupted:

  POST /v1/decks?format=pptx|json|md   outline body in, artifact out
  GET  /v1/styles                      available highlight styles
  GET  /healthz                        liveness

Defaults come from the [server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.cfg.Server.Addr
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Options{
		Theme:   c.cfg.Theme(),
		MaxBody: c.cfg.Server.MaxBody,
		Timeout: c.cfg.Server.Timeout.Duration,
	})
	return srv.ListenAndServe(ctx, addr)
}
