package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"staffmatch/internal/app"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			addr, err := app.ListenAddr(cfg.App.HTTPPort)
			if err != nil {
				return fmt.Errorf("invalid HTTP port: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, shutdown, err := app.Bootstrap(ctx, cfg, opts.log)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
			}()
			opts.log.Info("server started", zap.String("addr", addr), zap.String("env", cfg.App.Environment))

			var serveErr error
			select {
			case serveErr = <-errCh:
			case <-ctx.Done():
				opts.log.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				opts.log.Warn("shutdown incomplete", zap.Error(err))
			}
			return serveErr
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "How long to wait for requests and matching runs on shutdown")
	return cmd
}
