package model

import "time"

// shortIDLen is the commit id prefix length used for display and
// contributing-commit annotations.
const shortIDLen = 7

// Tag represents a repository tag. Multiple tags may point at the same commit.
type Tag struct {
	DisplayID    string // Tag display name (e.g. "prod-server-2024-01")
	LatestCommit string // Full id of the commit the tag points at
}

// Commit represents a single commit as returned by the repository, in the
// repository's native newest-first history order.
type Commit struct {
	ID              string // Full commit id, unique and immutable
	AuthorName      string
	AuthorTimestamp time.Time
	Message         string
}

// ShortID returns the compact display form of the commit id.
func (c Commit) ShortID() string {
	return ShortCommitID(c.ID)
}

// ShortCommitID truncates a full commit id to its display prefix.
func ShortCommitID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
