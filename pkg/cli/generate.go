package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/khalilabidd/Project-Hermes/pkg/cli/config"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
	"github.com/khalilabidd/Project-Hermes/pkg/infra/bitbucket"
	"github.com/khalilabidd/Project-Hermes/pkg/infra/notify"
	"github.com/khalilabidd/Project-Hermes/pkg/infra/storage"
	"github.com/khalilabidd/Project-Hermes/pkg/renderer"
	"github.com/khalilabidd/Project-Hermes/pkg/usecase"
)

func cmdGenerate() *cli.Command {
	var (
		bitbucketCfg config.Bitbucket
		releaseCfg   config.Release
		slackCfg     config.Slack
		storageCfg   config.Storage
	)

	flags := append(bitbucketCfg.Flags(), releaseCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate the release document set",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			reportUC, cleanup, err := newReportUseCase(ctx, &bitbucketCfg, &releaseCfg, &slackCfg, &storageCfg)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("Generating release documents",
				"project", bitbucketCfg.ProjectKey,
				"repo", bitbucketCfg.RepoSlug,
				"marker", releaseCfg.Marker,
			)

			report, artifacts, err := reportUC.Generate(ctx)
			if err != nil {
				return err
			}

			printSummary(report, artifacts)
			return nil
		},
	}
}

// newReportUseCase wires the repository client, use cases, renderer, and
// optional sinks from CLI configuration. The returned cleanup releases any
// clients holding connections.
func newReportUseCase(
	ctx context.Context,
	bitbucketCfg *config.Bitbucket,
	releaseCfg *config.Release,
	slackCfg *config.Slack,
	storageCfg *config.Storage,
) (interfaces.ReportUseCase, func(), error) {
	cleanup := func() {}

	var clientOpts []bitbucket.Option
	if bitbucketCfg.Username != "" {
		clientOpts = append(clientOpts, bitbucket.WithBasicAuth(bitbucketCfg.Username, bitbucketCfg.Token))
	} else {
		clientOpts = append(clientOpts, bitbucket.WithBearerToken(bitbucketCfg.Token))
	}
	if bitbucketCfg.PageLimit > 0 {
		clientOpts = append(clientOpts, bitbucket.WithPageLimit(bitbucketCfg.PageLimit))
	}

	repoClient, err := bitbucket.NewClient(
		bitbucketCfg.ServerURL,
		bitbucketCfg.ProjectKey,
		bitbucketCfg.RepoSlug,
		clientOpts...,
	)
	if err != nil {
		return nil, cleanup, goerr.Wrap(err, "failed to create Bitbucket client")
	}

	texts, err := releaseCfg.Texts()
	if err != nil {
		return nil, cleanup, err
	}

	releaseUC := usecase.NewRelease(repoClient, usecase.WithPathFilter(releaseCfg.PathFilter))
	docxRenderer := renderer.NewDocx(releaseCfg.OutputDir)

	var reportOpts []usecase.ReportOption
	if storageCfg.Enabled() {
		store, err := storage.NewGCS(ctx, storageCfg.Bucket, storageCfg.Prefix)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = store.Close() }
		reportOpts = append(reportOpts, usecase.WithArtifactStore(store))
	}
	if slackCfg.Enabled() {
		reportOpts = append(reportOpts, usecase.WithNotifier(notify.NewSlack(slackCfg.Token, slackCfg.Channel)))
	}

	reportUC := usecase.NewReport(usecase.ReportConfig{
		ServerURL:  bitbucketCfg.ServerURL,
		ProjectKey: bitbucketCfg.ProjectKey,
		RepoSlug:   bitbucketCfg.RepoSlug,
		Marker:     releaseCfg.Marker,
		Texts:      texts,
	}, releaseUC, docxRenderer, reportOpts...)

	return reportUC, cleanup, nil
}

func printSummary(report *model.ReleaseReport, artifacts []model.Artifact) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Printf("\nRelease documents for %s\n", report.RepositoryName())
	fmt.Printf("Marker commit: %s\n", report.Window.Marker.ShortID())
	fmt.Printf("Commits in window: %d\n", len(report.Window.Commits))
	fmt.Printf("Deployment files changed: %d\n\n", len(report.Window.Changes))

	for _, artifact := range artifacts {
		green.Printf("✓ Created: %s\n", artifact.Path)
	}

	if !report.Window.Bounded {
		yellow.Println("\n⚠ Marker commit not found in branch history; the window covers all enumerated commits.")
	}
	if n := len(report.Window.Skipped); n > 0 {
		yellow.Printf("⚠ Changes of %d commit(s) could not be retrieved; the change list may be incomplete.\n", n)
	}
}
