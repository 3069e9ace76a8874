package cmd

import (
	"os/signal"
	"syscall"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/api"
	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Serve exposes the calculators as a JSON API:

  GET  /healthz
  GET  /api/v1/calculators
  POST /api/v1/cagr/calculate
  POST /api/v1/calculate/{calculator}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.app.Server
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(c.engine, c.logger, cfg)
			defer srv.Close()
			return srv.ListenAndServe(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
