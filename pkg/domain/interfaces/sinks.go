package interfaces

import (
	"context"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// Renderer turns a release report into a set of document artifacts.
type Renderer interface {
	Render(ctx context.Context, report *model.ReleaseReport) ([]model.Artifact, error)
}

// ArtifactStore uploads generated documents to external storage.
type ArtifactStore interface {
	// Upload stores one artifact and returns its destination URI.
	Upload(ctx context.Context, artifact model.Artifact) (string, error)
}

// Notifier announces a completed report to an external channel.
type Notifier interface {
	NotifyReport(ctx context.Context, report *model.ReleaseReport, artifacts []model.Artifact) error
}
