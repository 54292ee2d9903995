package interfaces

import (
	"context"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// ReleaseUseCase defines release window resolution against a repository.
type ReleaseUseCase interface {
	// ResolveMarker finds the commit the first marker-matching tag points at.
	ResolveMarker(ctx context.Context, markerSubstring string) (model.Commit, error)

	// CollectSince returns the commits strictly newer than the marker
	// commit. bounded is false when the marker was never encountered in
	// the enumerated history.
	CollectSince(ctx context.Context, markerCommitID string) (commits []model.Commit, bounded bool, err error)

	// AggregateChanges builds the deduplicated deployment change index for
	// the given commits, plus the list of commits that had to be skipped.
	AggregateChanges(ctx context.Context, commits []model.Commit) ([]model.FileChange, []model.CommitSkip)

	// TagsFor returns marker-matching tag names attached to a commit.
	// Best effort: failures yield an empty result.
	TagsFor(ctx context.Context, commitID, markerSubstring string) []string

	// BuildWindow runs the full resolution pipeline for one report.
	BuildWindow(ctx context.Context, markerSubstring string) (*model.ReleaseWindow, error)
}

// ReportUseCase generates the release document set.
type ReportUseCase interface {
	// Generate builds a release window, renders all documents, and runs
	// the configured post-generation steps (upload, notification).
	Generate(ctx context.Context) (*model.ReleaseReport, []model.Artifact, error)
}
