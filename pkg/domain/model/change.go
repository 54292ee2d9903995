package model

// ChangeType represents the kind of modification a commit applied to a file.
type ChangeType string

const (
	ChangeTypeAdd     ChangeType = "ADD"
	ChangeTypeModify  ChangeType = "MODIFY"
	ChangeTypeDelete  ChangeType = "DELETE"
	ChangeTypeUnknown ChangeType = "UNKNOWN"
)

// ParseChangeType maps a raw change type string from the repository API.
// Anything outside the supported set collapses to UNKNOWN.
func ParseChangeType(s string) ChangeType {
	switch ChangeType(s) {
	case ChangeTypeAdd, ChangeTypeModify, ChangeTypeDelete:
		return ChangeType(s)
	default:
		return ChangeTypeUnknown
	}
}

// FileChange represents one changed file, deduplicated by path across the
// commits of a release window. Commits holds the short ids of every commit
// that touched the path, newest first.
type FileChange struct {
	Path    string
	Type    ChangeType
	Commits []string
}
