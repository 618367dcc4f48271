package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/itec-institute/portal/config"
	"github.com/itec-institute/portal/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config failed", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.LogLevel)

	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (err error) {
	logStartupInfo(ctx, logger, cfg)

	components, err := bootstrap.BuildLoginService(ctx, bootstrap.AuthOptions{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := components.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
		}
	}()

	server, err := bootstrap.NewHTTPServer(&bootstrap.HTTPServerConfig{
		Config: cfg,
		Login:  components.Login,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bootstrap.RunHTTPServer(gctx, server, logger)
	})
	if components.Reaper != nil {
		g.Go(func() error {
			return components.Reaper.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.InfoContext(ctx, "portal stopped")
	return nil
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting portal service",
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev,
		"session_store", string(cfg.Session.Store),
		"session_ttl", cfg.Session.TTL,
		"log_level", cfg.LogLevel.String(),
	)
}
