package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/config"
	"github.com/matzehuels/chordsheet/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
		timeout time.Duration
		noCache bool
		private bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the chordsheet HTTP API.

Routes:
  GET  /healthz
  GET  /api/v1/adapters
  POST /api/v1/render
  POST /api/v1/transpose
  POST /api/v1/key

The server shares the configured cache; set cache.redis_url to share it
between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := []server.Option{server.WithTimeout(timeout)}
			if len(origins) > 0 {
				opts = append(opts, server.WithAllowedOrigins(origins...))
			}
			if private {
				c.Logger.Warn("render sources may reach private networks")
				opts = append(opts, server.WithPrivateSources())
			}
			srv := server.New(runner, c.Logger, opts...)

			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed CORS origin (repeatable; default any)")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&private, "allow-private-sources", false, "allow fetching loopback and private network hosts")

	return cmd
}
