package interfaces

import (
	"context"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// RepositoryClient defines the query operations hermes needs from a source
// control server. Implementations own pagination and authentication; callers
// consume each listing as a single ordered sequence.
type RepositoryClient interface {
	// ListTags returns all tags of the repository, in server order.
	ListTags(ctx context.Context) ([]model.Tag, error)

	// ListCommits returns the commits of the default branch, newest first.
	ListCommits(ctx context.Context) ([]model.Commit, error)

	// GetCommit returns a single commit by id.
	GetCommit(ctx context.Context, commitID string) (model.Commit, error)

	// GetCommitChanges returns the file changes of a single commit.
	GetCommitChanges(ctx context.Context, commitID string) ([]model.FileChange, error)

	// GetTagsForCommit returns the tags pointing at a specific commit.
	GetTagsForCommit(ctx context.Context, commitID string) ([]model.Tag, error)
}
