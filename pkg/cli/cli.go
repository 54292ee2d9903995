package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/khalilabidd/Project-Hermes/pkg/cli/config"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
	)
	var logger *slog.Logger

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "hermes",
		Usage:   "Release document generator for Bitbucket repositories",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
		Commands: []*cli.Command{
			cmdGenerate(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		return err
	}

	return nil
}
