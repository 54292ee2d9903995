package config

import "github.com/urfave/cli/v3"

// Bitbucket holds Bitbucket Server connection configuration
type Bitbucket struct {
	ServerURL  string
	ProjectKey string
	RepoSlug   string
	Username   string
	Token      string
	PageLimit  int
}

// Flags returns CLI flags for Bitbucket configuration
func (c *Bitbucket) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bitbucket-url",
			Usage:       "Bitbucket server URL (e.g. https://bitbucket.company.com)",
			Required:    true,
			Destination: &c.ServerURL,
			Sources:     cli.EnvVars("HERMES_BITBUCKET_URL"),
		},
		&cli.StringFlag{
			Name:        "project",
			Usage:       "Bitbucket project key (e.g. PROJ)",
			Required:    true,
			Destination: &c.ProjectKey,
			Sources:     cli.EnvVars("HERMES_PROJECT_KEY"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository slug",
			Required:    true,
			Destination: &c.RepoSlug,
			Sources:     cli.EnvVars("HERMES_REPO_SLUG"),
		},
		&cli.StringFlag{
			Name:        "bitbucket-user",
			Usage:       "Bitbucket username (omit to use bearer token auth)",
			Destination: &c.Username,
			Sources:     cli.EnvVars("HERMES_BITBUCKET_USER"),
		},
		&cli.StringFlag{
			Name:        "bitbucket-token",
			Usage:       "Bitbucket password or personal access token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("HERMES_BITBUCKET_TOKEN"),
		},
		&cli.IntFlag{
			Name:        "page-limit",
			Usage:       "Page size for Bitbucket REST listings",
			Value:       100,
			Destination: &c.PageLimit,
			Sources:     cli.EnvVars("HERMES_PAGE_LIMIT"),
		},
	}
}
