package model

import (
	"fmt"
	"strings"
	"time"
)

// ReportTexts holds the free-text sections that go into the generated
// documents. They usually come from a TOML file or fall back to defaults.
type ReportTexts struct {
	Implementation string `toml:"implementation"`
	Rollback       string `toml:"rollback"`
}

// ReleaseReport bundles a release window with everything the document
// renderer needs: run identity, repository coordinates, and report texts.
type ReleaseReport struct {
	RunID       string
	GeneratedAt time.Time
	ServerURL   string
	ProjectKey  string
	RepoSlug    string
	Window      *ReleaseWindow
	Texts       ReportTexts
}

// CommitURL returns the repository browser URL for a commit.
func (r *ReleaseReport) CommitURL(commitID string) string {
	return fmt.Sprintf("%s/projects/%s/repos/%s/commits/%s",
		strings.TrimRight(r.ServerURL, "/"), r.ProjectKey, r.RepoSlug, commitID)
}

// RepositoryName returns the "PROJECT/slug" display form.
func (r *ReleaseReport) RepositoryName() string {
	return r.ProjectKey + "/" + r.RepoSlug
}

// Artifact is one generated document on disk.
type Artifact struct {
	Name string // File name (e.g. "Rollback_plan_CHG.docx")
	Path string // Absolute or output-dir-relative path
	Size int64  // Size in bytes
}
