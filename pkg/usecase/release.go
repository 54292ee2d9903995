package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/types"
)

// defaultPathFilter marks a file change as deployment relevant when its path
// contains this substring, case-insensitively.
const defaultPathFilter = "deployment"

type releaseUseCase struct {
	repo       interfaces.RepositoryClient
	pathFilter string
}

// ReleaseOption configures the release use case.
type ReleaseOption func(*releaseUseCase)

// WithPathFilter overrides the substring that selects deployment-relevant
// file paths.
func WithPathFilter(filter string) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.pathFilter = filter
	}
}

// NewRelease creates a ReleaseUseCase backed by the given repository client.
func NewRelease(repo interfaces.RepositoryClient, opts ...ReleaseOption) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		repo:       repo,
		pathFilter: defaultPathFilter,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ResolveMarker finds the commit the release marker tag points at. The first
// tag (in server order) whose display name contains markerSubstring wins.
// No match is fatal for the run: without a marker there is no window.
func (uc *releaseUseCase) ResolveMarker(ctx context.Context, markerSubstring string) (model.Commit, error) {
	logger := ctxlog.From(ctx)

	tags, err := uc.repo.ListTags(ctx)
	if err != nil {
		return model.Commit{}, goerr.Wrap(err, "failed to list tags")
	}

	for _, tag := range tags {
		if !strings.Contains(tag.DisplayID, markerSubstring) {
			continue
		}

		logger.Info("Resolved release marker tag",
			"tag", tag.DisplayID,
			"commit", tag.LatestCommit,
		)

		commit, err := uc.repo.GetCommit(ctx, tag.LatestCommit)
		if err != nil {
			return model.Commit{}, goerr.Wrap(err, "failed to load marker commit",
				goerr.V("tag", tag.DisplayID),
				goerr.V("commit", tag.LatestCommit),
			)
		}
		return commit, nil
	}

	return model.Commit{}, goerr.Wrap(types.ErrMarkerNotFound, "no tag matches marker",
		goerr.V("marker", markerSubstring),
		goerr.V("tag_count", len(tags)),
	)
}

// CollectSince walks the default branch newest-first and collects every
// commit until the marker commit is reached. The marker commit and anything
// older are excluded. If the marker never shows up, the entire enumerated
// history is returned and bounded is false; callers must surface that.
func (uc *releaseUseCase) CollectSince(ctx context.Context, markerCommitID string) ([]model.Commit, bool, error) {
	logger := ctxlog.From(ctx)

	history, err := uc.repo.ListCommits(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to list commits")
	}

	collected := make([]model.Commit, 0, len(history))
	for _, commit := range history {
		if commit.ID == markerCommitID {
			logger.Info("Collected commits since marker",
				"count", len(collected),
				"marker", model.ShortCommitID(markerCommitID),
			)
			return collected, true, nil
		}
		collected = append(collected, commit)
	}

	logger.Warn("Marker commit not reached in enumerated history, window is unbounded",
		"marker", model.ShortCommitID(markerCommitID),
		"history_size", len(history),
	)
	return collected, false, nil
}

// AggregateChanges scans the commits in the given (newest-first) order and
// builds the deduplicated index of deployment-relevant file changes.
//
// Deduplication is keyed by exact path. The stored change type is the one
// observed when the path was first seen; under newest-first iteration that is
// the most recent commit's type. Contributing short ids accumulate in
// iteration order. A commit whose change listing fails is skipped with a
// warning and recorded; a single bad commit never aborts the whole report.
func (uc *releaseUseCase) AggregateChanges(ctx context.Context, commits []model.Commit) ([]model.FileChange, []model.CommitSkip) {
	logger := ctxlog.From(ctx)
	filter := strings.ToLower(uc.pathFilter)

	index := make(map[string]int) // path -> position in result
	var result []model.FileChange
	var skipped []model.CommitSkip

	for _, commit := range commits {
		changes, err := uc.repo.GetCommitChanges(ctx, commit.ID)
		if err != nil {
			logger.Warn("Failed to fetch changes for commit, skipping",
				"commit", commit.ShortID(),
				"error", err,
			)
			skipped = append(skipped, model.CommitSkip{
				CommitID: commit.ID,
				Reason:   err.Error(),
			})
			continue
		}

		for _, change := range changes {
			if !strings.Contains(strings.ToLower(change.Path), filter) {
				continue
			}

			pos, ok := index[change.Path]
			if !ok {
				pos = len(result)
				index[change.Path] = pos
				result = append(result, model.FileChange{
					Path: change.Path,
					Type: change.Type,
				})
			}
			result[pos].Commits = append(result[pos].Commits, commit.ShortID())
		}
	}

	logger.Info("Aggregated deployment changes",
		"files", len(result),
		"commits", len(commits),
		"skipped", len(skipped),
	)
	return result, skipped
}

// TagsFor returns the marker-matching tag names attached to a commit, in
// server order. Tag annotation is decoration on the report: a query failure
// yields an empty result and a warning instead of aborting the run.
func (uc *releaseUseCase) TagsFor(ctx context.Context, commitID, markerSubstring string) []string {
	logger := ctxlog.From(ctx)

	tags, err := uc.repo.GetTagsForCommit(ctx, commitID)
	if err != nil {
		logger.Warn("Failed to fetch tags for commit",
			"commit", model.ShortCommitID(commitID),
			"error", err,
		)
		return nil
	}

	var names []string
	for _, tag := range tags {
		if strings.Contains(tag.DisplayID, markerSubstring) {
			names = append(names, tag.DisplayID)
		}
	}
	return names
}

// BuildWindow runs the full resolution pipeline: marker resolution, commit
// collection, change aggregation, and marker tag lookup.
func (uc *releaseUseCase) BuildWindow(ctx context.Context, markerSubstring string) (*model.ReleaseWindow, error) {
	marker, err := uc.ResolveMarker(ctx, markerSubstring)
	if err != nil {
		return nil, err
	}

	commits, bounded, err := uc.CollectSince(ctx, marker.ID)
	if err != nil {
		return nil, err
	}

	changes, skipped := uc.AggregateChanges(ctx, commits)
	markerTags := uc.TagsFor(ctx, marker.ID, markerSubstring)

	return &model.ReleaseWindow{
		Marker:     marker,
		Commits:    commits,
		Bounded:    bounded,
		Changes:    changes,
		MarkerTags: markerTags,
		Skipped:    skipped,
	}, nil
}
