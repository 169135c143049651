package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/blogly/internal/observability"
	"github.com/sakif/blogly/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			shutdownTracing, err := observability.InitTracing(cmd.Context(), observability.TracingConfig{
				Exporter:     cfg.TracingExporter,
				OTLPEndpoint: cfg.OTLPEndpoint,
				Environment:  cfg.Env,
			})
			if err != nil {
				logger.Error("failed to initialise tracing", slog.String("error", err.Error()))
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(ctx); err != nil {
					logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
				}
			}()

			db, err := openDB(cfg, logger)
			if err != nil {
				logger.Error("failed to open database", slog.String("error", err.Error()))
				return err
			}

			srv, err := server.New(cfg, db, logger)
			if err != nil {
				db.Close()
				logger.Error("failed to create server", slog.String("error", err.Error()))
				return err
			}

			// Start closes the database when it returns.
			if err := srv.Start(); err != nil {
				logger.Error("server error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}
