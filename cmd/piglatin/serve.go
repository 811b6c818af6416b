package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/example/go-piglatin/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Pig Latin HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tr, err := server.NewTranslator(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			slog.Info("server listening",
				slog.String("addr", cfg.Server.ListenAddr),
				slog.Int("workers", cfg.Server.Workers),
			)
			return server.New(cfg, tr).Start(ctx)
		},
	}

	return cmd
}
