package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// ReportConfig holds the repository identity and report inputs for one
// report generation pipeline.
type ReportConfig struct {
	ServerURL  string
	ProjectKey string
	RepoSlug   string
	Marker     string
	Texts      model.ReportTexts
}

type reportUseCase struct {
	cfg      ReportConfig
	release  interfaces.ReleaseUseCase
	renderer interfaces.Renderer
	store    interfaces.ArtifactStore
	notifier interfaces.Notifier
}

// ReportOption configures optional post-generation steps.
type ReportOption func(*reportUseCase)

// WithArtifactStore enables artifact upload after rendering.
func WithArtifactStore(store interfaces.ArtifactStore) ReportOption {
	return func(uc *reportUseCase) {
		uc.store = store
	}
}

// WithNotifier enables a completion notification after rendering.
func WithNotifier(notifier interfaces.Notifier) ReportOption {
	return func(uc *reportUseCase) {
		uc.notifier = notifier
	}
}

// NewReport creates a ReportUseCase that builds release windows via release
// and renders documents via renderer.
func NewReport(cfg ReportConfig, release interfaces.ReleaseUseCase, renderer interfaces.Renderer, opts ...ReportOption) interfaces.ReportUseCase {
	uc := &reportUseCase{
		cfg:      cfg,
		release:  release,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate runs one full report generation. Window resolution failures are
// fatal and produce no documents. Upload and notification are best effort:
// the documents on disk are the primary output.
func (uc *reportUseCase) Generate(ctx context.Context) (*model.ReleaseReport, []model.Artifact, error) {
	logger := ctxlog.From(ctx)

	window, err := uc.release.BuildWindow(ctx, uc.cfg.Marker)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to build release window",
			goerr.V("project", uc.cfg.ProjectKey),
			goerr.V("repo", uc.cfg.RepoSlug),
		)
	}

	report := &model.ReleaseReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		ServerURL:   uc.cfg.ServerURL,
		ProjectKey:  uc.cfg.ProjectKey,
		RepoSlug:    uc.cfg.RepoSlug,
		Window:      window,
		Texts:       uc.cfg.Texts,
	}

	logger.Info("Built release window",
		"run_id", report.RunID,
		"marker", window.Marker.ShortID(),
		"commits", len(window.Commits),
		"deployment_files", len(window.Changes),
		"bounded", window.Bounded,
	)

	artifacts, err := uc.renderer.Render(ctx, report)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to render release documents",
			goerr.V("run_id", report.RunID))
	}

	if uc.store != nil {
		uc.uploadArtifacts(ctx, artifacts)
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReport(ctx, report, artifacts); err != nil {
			logger.Warn("Failed to send report notification", "error", err)
		}
	}

	logger.Info("Report generation complete",
		"run_id", report.RunID,
		"artifacts", len(artifacts),
	)
	return report, artifacts, nil
}

// uploadArtifacts pushes each document to the configured store. Uploads are
// per-artifact best effort; a failed upload leaves the local file in place.
func (uc *reportUseCase) uploadArtifacts(ctx context.Context, artifacts []model.Artifact) {
	logger := ctxlog.From(ctx)

	for _, artifact := range artifacts {
		uri, err := uc.store.Upload(ctx, artifact)
		if err != nil {
			logger.Warn("Failed to upload artifact",
				"name", artifact.Name,
				"error", err,
			)
			continue
		}
		logger.Info("Uploaded artifact", "name", artifact.Name, "uri", uri)
	}
}
