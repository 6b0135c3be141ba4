package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/proxygen/internal/api"
	"github.com/ramonehamilton/proxygen/internal/api/handlers"
	"github.com/ramonehamilton/proxygen/internal/config"
	"github.com/ramonehamilton/proxygen/internal/metrics"
	"github.com/ramonehamilton/proxygen/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the proxy web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := loadStore(ctx, a.cfg.Dataset, a.logger)
			if err != nil {
				return err
			}

			srv := api.NewServer(serverConfig(a.cfg), handlers.NewCatalog(store), metrics.NewDecklistMetrics(), a.logger)
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (overrides config)")
	return cmd
}

func serverConfig(cfg *config.Config) *api.Config {
	read, write, request, shutdown := cfg.Timeouts()
	return &api.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     read,
		WriteTimeout:    write,
		RequestTimeout:  request,
		ShutdownTimeout: shutdown,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		MaxTotalCount:   cfg.Decklist.MaxTotalCount,
		RateLimit:       cfg.API.RateLimit,
		RateBurst:       cfg.API.RateBurst,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		Version:         version.GetVersion(),
	}
}
