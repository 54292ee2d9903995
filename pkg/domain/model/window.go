package model

// CommitSkip records a commit whose change listing could not be retrieved
// during aggregation. Skips degrade the change index but never abort a run.
type CommitSkip struct {
	CommitID string
	Reason   string
}

// ReleaseWindow is the derived view of everything that changed between the
// release marker commit and the current head of the default branch. It is
// built fresh for each run and never mutated afterwards.
type ReleaseWindow struct {
	// Marker is the commit the marker tag points at.
	Marker Commit

	// Commits are all commits newer than the marker, in the repository's
	// newest-first order. The marker commit itself is never included.
	Commits []Commit

	// Bounded reports whether the marker commit was actually encountered
	// while walking history. When false, Commits holds the entire
	// enumerated history and the window boundary is unreliable.
	Bounded bool

	// Changes is the deduplicated index of deployment-relevant file
	// changes across Commits, in first-seen order.
	Changes []FileChange

	// MarkerTags are the marker-pattern tag names attached to the marker
	// commit, for reporting. Best effort; may be empty.
	MarkerTags []string

	// Skipped lists commits whose changes could not be retrieved.
	Skipped []CommitSkip
}
