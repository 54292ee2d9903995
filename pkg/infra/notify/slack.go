package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// SlackNotifier posts a release report summary to a Slack channel.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

var _ interfaces.Notifier = (*SlackNotifier)(nil)

// NewSlack creates a notifier using a Slack bot token and target channel.
func NewSlack(token, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyReport posts a summary of the generated documents.
func (n *SlackNotifier) NotifyReport(ctx context.Context, report *model.ReleaseReport, artifacts []model.Artifact) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Release documents generated* for `%s`\n", report.RepositoryName())
	fmt.Fprintf(&sb, "Marker commit: `%s`", report.Window.Marker.ShortID())
	if len(report.Window.MarkerTags) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(report.Window.MarkerTags, ", "))
	}
	fmt.Fprintf(&sb, "\nCommits in window: %d", len(report.Window.Commits))
	fmt.Fprintf(&sb, "\nDeployment files changed: %d", len(report.Window.Changes))
	if !report.Window.Bounded {
		sb.WriteString("\n:warning: Marker commit not found in branch history, window is unbounded")
	}
	if len(report.Window.Skipped) > 0 {
		fmt.Fprintf(&sb, "\n:warning: %d commit(s) skipped during change aggregation", len(report.Window.Skipped))
	}
	sb.WriteString("\nDocuments:")
	for _, artifact := range artifacts {
		fmt.Fprintf(&sb, "\n• %s", artifact.Name)
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(sb.String(), false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("channel", n.channel),
			goerr.V("run_id", report.RunID),
		)
	}
	return nil
}
