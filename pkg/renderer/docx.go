package renderer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// Document file names follow the change-request naming convention the
// release process expects.
const (
	fileImplementationPlan = "Implementation_plan_CHG.docx"
	filePreTestPlan        = "PRE_test_plan_CHG.docx"
	filePostTestPlan       = "POST_test_plan_CHG.docx"
	fileRollbackPlan       = "Rollback_plan_CHG.docx"
	fileCodeChangeReview   = "Code_change_Review_CHG.docx"
)

const (
	titleSize   = "44"
	headingSize = "32"

	// tableWidth is the table width in twentieths of a point, sized for an
	// A4 page with default margins.
	tableWidth = 8000

	timestampLayout = "2006-01-02 15:04:05"

	// messageLimit truncates long commit messages in the review table.
	messageLimit = 100
)

// DocxRenderer renders the release document set as DOCX files.
type DocxRenderer struct {
	outputDir string
}

var _ interfaces.Renderer = (*DocxRenderer)(nil)

// NewDocx creates a renderer writing into outputDir. The directory is
// created on first render if missing.
func NewDocx(outputDir string) *DocxRenderer {
	return &DocxRenderer{outputDir: outputDir}
}

// Render produces all five release documents for the report.
func (r *DocxRenderer) Render(ctx context.Context, report *model.ReleaseReport) ([]model.Artifact, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", r.outputDir))
	}

	documents := map[string]*docx.Docx{
		fileImplementationPlan: r.implementationPlan(report),
		filePreTestPlan:        r.preTestPlan(report),
		filePostTestPlan:       r.postTestPlan(report),
		fileRollbackPlan:       r.rollbackPlan(report),
		fileCodeChangeReview:   r.codeChangeReview(report),
	}

	// Fixed output order for stable logs and notifications.
	order := []string{
		fileImplementationPlan,
		filePreTestPlan,
		filePostTestPlan,
		fileRollbackPlan,
		fileCodeChangeReview,
	}

	artifacts := make([]model.Artifact, 0, len(order))
	for _, name := range order {
		artifact, err := r.save(name, documents[name])
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)

		logger.Info("Rendered document", "name", artifact.Name, "size_bytes", artifact.Size)
	}

	return artifacts, nil
}

func (r *DocxRenderer) save(name string, doc *docx.Docx) (model.Artifact, error) {
	path := filepath.Join(r.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return model.Artifact{}, goerr.Wrap(err, "failed to create document file", goerr.V("path", path))
	}
	defer f.Close()

	size, err := doc.WriteTo(f)
	if err != nil {
		return model.Artifact{}, goerr.Wrap(err, "failed to write document", goerr.V("path", path))
	}

	return model.Artifact{Name: name, Path: path, Size: size}, nil
}

func (r *DocxRenderer) implementationPlan(report *model.ReleaseReport) *docx.Docx {
	doc := newDocument("Implementation Plan - Change Request")
	addMetadata(doc, report)

	addHeading(doc, "Implementation Overview")
	text := report.Texts.Implementation
	if text == "" {
		text = "Please provide implementation details"
	}
	addMultiline(doc, text)
	doc.AddParagraph()

	addHeading(doc, "Files Changed in Deployment Folder")
	changes := report.Window.Changes
	if len(changes) == 0 {
		doc.AddParagraph().AddText("No deployment files changed in this release")
	} else {
		tbl := doc.AddTable(len(changes)+1, 3, tableWidth, nil)
		setRow(tbl, 0, "File Path", "Type", "Commits")
		for i, change := range changes {
			setRow(tbl, i+1, change.Path, string(change.Type), strings.Join(change.Commits, ", "))
		}
	}

	if len(report.Window.Skipped) > 0 {
		doc.AddParagraph()
		doc.AddParagraph().AddText(fmt.Sprintf(
			"Note: changes of %d commit(s) could not be retrieved; the list above may be incomplete.",
			len(report.Window.Skipped)))
	}
	if !report.Window.Bounded {
		doc.AddParagraph().AddText(
			"Warning: the release marker commit was not found in branch history; " +
				"the change list covers the entire enumerated history.")
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText("---")
	doc.AddParagraph().AddText("Change Type: Release Deployment")
	doc.AddParagraph().AddText("Status: Pending Review")
	return doc
}

func (r *DocxRenderer) preTestPlan(report *model.ReleaseReport) *docx.Docx {
	doc := newDocument("PRE Test Plan - Change Request")
	doc.AddParagraph().AddText("Generated: " + report.GeneratedAt.Format(timestampLayout))
	doc.AddParagraph()

	addHeading(doc, "Pre-Deployment Testing")
	doc.AddParagraph().AddText("Test Scope:")
	for _, item := range []string{
		"Code quality checks",
		"Unit tests verification",
		"Integration tests",
		"Security scanning",
	} {
		addBullet(doc, item)
	}

	doc.AddParagraph()
	addHeading(doc, "Test Results")
	doc.AddParagraph().AddText("All tests must pass before proceeding to deployment.")

	testTypes := []string{"Code Quality", "Unit Tests", "Integration Tests", "Security Scan"}
	tbl := doc.AddTable(len(testTypes)+1, 3, tableWidth, nil)
	setRow(tbl, 0, "Test Type", "Status", "Notes")
	for i, testType := range testTypes {
		setRow(tbl, i+1, testType, "[ ] Pass  [ ] Fail", "")
	}
	return doc
}

func (r *DocxRenderer) postTestPlan(report *model.ReleaseReport) *docx.Docx {
	doc := newDocument("POST Test Plan - Change Request")
	doc.AddParagraph().AddText("Generated: " + report.GeneratedAt.Format(timestampLayout))
	doc.AddParagraph()

	addHeading(doc, "Post-Deployment Validation")
	doc.AddParagraph().AddText("Validation Steps:")
	for _, item := range []string{
		"System health check",
		"Service availability verification",
		"Database consistency check",
		"Application logs review",
		"User acceptance testing",
	} {
		addBullet(doc, item)
	}

	doc.AddParagraph()
	addHeading(doc, "Success Criteria")
	doc.AddParagraph().AddText("All deployment targets must be operational with no critical errors in logs.")

	items := []string{"Health Check", "Services Running", "Database Sync", "Error Log Check", "UAT Approval"}
	tbl := doc.AddTable(len(items)+1, 2, tableWidth, nil)
	setRow(tbl, 0, "Validation Item", "Status")
	for i, item := range items {
		setRow(tbl, i+1, item, "[ ] OK  [ ] Failed")
	}
	return doc
}

func (r *DocxRenderer) rollbackPlan(report *model.ReleaseReport) *docx.Docx {
	doc := newDocument("Rollback Plan - Change Request")
	doc.AddParagraph().AddText("Generated: " + report.GeneratedAt.Format(timestampLayout))
	doc.AddParagraph()

	addHeading(doc, "Release Information")
	if tags := report.Window.MarkerTags; len(tags) > 0 {
		doc.AddParagraph().AddText("Release Tags: " + strings.Join(tags, ", "))
	} else {
		doc.AddParagraph().AddText("Release Tags: Not available")
	}
	doc.AddParagraph()

	addHeading(doc, "Rollback Strategy")
	text := report.Texts.Rollback
	if text == "" {
		text = "[Insert rollback strategy details here]"
	}
	addMultiline(doc, text)
	doc.AddParagraph()

	addHeading(doc, "Rollback Procedures")
	for i, step := range []string{
		"Notify stakeholders of rollback decision",
		"Take application offline for maintenance",
		"Restore database from backup",
		"Revert application code to previous release",
		"Verify system functionality",
		"Bring application back online",
	} {
		doc.AddParagraph().AddText(fmt.Sprintf("Step %d: %s", i+1, step))
	}

	doc.AddParagraph()
	addHeading(doc, "Rollback Triggers")
	doc.AddParagraph().AddText("Rollback should be initiated if:")
	for _, item := range []string{
		"Critical application error occurs",
		"Database corruption is detected",
		"Service availability drops below SLA",
		"Data integrity issues are found",
	} {
		addBullet(doc, item)
	}
	return doc
}

func (r *DocxRenderer) codeChangeReview(report *model.ReleaseReport) *docx.Docx {
	doc := newDocument("Code Change Review - Change Request")
	doc.AddParagraph().AddText("Generated: " + report.GeneratedAt.Format(timestampLayout))
	doc.AddParagraph().AddText("Repository: " + report.RepositoryName())
	doc.AddParagraph()

	addHeading(doc, "Commits Included in Release")
	commits := report.Window.Commits
	if len(commits) == 0 {
		doc.AddParagraph().AddText("No commits found in this release")
	} else {
		tbl := doc.AddTable(len(commits)+1, 4, tableWidth, nil)
		setRow(tbl, 0, "Commit ID", "Author", "Date", "Message")
		for i, commit := range commits {
			setRow(tbl, i+1,
				commit.ShortID(),
				commit.AuthorName,
				commit.AuthorTimestamp.Format(timestampLayout),
				truncate(commit.Message, messageLimit),
			)
		}
	}

	doc.AddParagraph()
	addHeading(doc, "Commit Details with Links")
	for _, commit := range commits {
		p := doc.AddParagraph()
		p.AddText("• ")
		p.AddLink(commit.ShortID(), report.CommitURL(commit.ID))
		p.AddText(": " + commit.Subject())
	}

	doc.AddParagraph()
	addHeading(doc, "Code Review Checklist")
	for _, item := range []string{
		"All changes have been reviewed",
		"Code follows standards and best practices",
		"No security vulnerabilities identified",
		"Tests are included and passing",
		"Documentation is updated",
		"Performance impact is acceptable",
	} {
		addBullet(doc, "[ ] "+item)
	}
	return doc
}

func newDocument(title string) *docx.Docx {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(title).Size(titleSize).Bold()
	return doc
}

func addMetadata(doc *docx.Docx, report *model.ReleaseReport) {
	doc.AddParagraph().AddText("Generated: " + report.GeneratedAt.Format(timestampLayout))
	doc.AddParagraph().AddText(fmt.Sprintf("Project: %s | Repository: %s", report.ProjectKey, report.RepoSlug))
	doc.AddParagraph()
}

func addHeading(doc *docx.Docx, text string) {
	doc.AddParagraph().AddText(text).Size(headingSize).Bold()
}

func addBullet(doc *docx.Docx, text string) {
	doc.AddParagraph().AddText("• " + text)
}

// addMultiline writes a text block as one paragraph per line.
func addMultiline(doc *docx.Docx, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		doc.AddParagraph().AddText(strings.TrimSpace(line))
	}
}

func setRow(tbl *docx.Table, row int, cells ...string) {
	for i, text := range cells {
		tbl.TableRows[row].TableCells[i].AddParagraph().AddText(text)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
