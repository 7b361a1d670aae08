package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erazemk/sledilnik/internal/api"
	"github.com/erazemk/sledilnik/internal/config"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			ds, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ds.Close(context.Background())

			server := &http.Server{
				Addr: cfg.Addr,
				Handler: api.NewRouter(ds, api.Options{
					DatabaseURLSet:  cfg.DatabaseURLSet,
					DatabaseNameSet: cfg.DatabaseNameSet,
					CORSOrigins:     cfg.CORSOrigins,
				}),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				sig := <-quit
				log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("server forced to shutdown")
				}
			}()

			log.Info().Str("addr", cfg.Addr).Msg("server started")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}

			log.Info().Msg("server stopped, closing database")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: "+config.DefaultAddr+", or :$PORT)")
	return cmd
}
