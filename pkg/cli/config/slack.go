package config

import "github.com/urfave/cli/v3"

// Slack holds notification configuration
type Slack struct {
	Token   string
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token (notification disabled when empty)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("HERMES_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for report notifications",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("HERMES_SLACK_CHANNEL"),
		},
	}
}

// Enabled reports whether notification is configured.
func (c *Slack) Enabled() bool {
	return c.Token != "" && c.Channel != ""
}
