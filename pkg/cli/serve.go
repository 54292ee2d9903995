package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/khalilabidd/Project-Hermes/pkg/cli/config"
	controller "github.com/khalilabidd/Project-Hermes/pkg/controller/http"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		bitbucketCfg config.Bitbucket
		releaseCfg   config.Release
		slackCfg     config.Slack
		storageCfg   config.Storage
	)

	flags := append(serverCfg.Flags(), bitbucketCfg.Flags()...)
	flags = append(flags, releaseCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server exposing the report API",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting hermes server",
				slog.String("addr", serverCfg.Addr),
				slog.String("project", bitbucketCfg.ProjectKey),
				slog.String("repo", bitbucketCfg.RepoSlug),
			)

			reportUC, cleanup, err := newReportUseCase(ctx, &bitbucketCfg, &releaseCfg, &slackCfg, &storageCfg)
			if err != nil {
				return err
			}
			defer cleanup()

			server, err := controller.NewServer(
				ctx,
				reportUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
