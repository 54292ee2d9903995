package config

import "github.com/urfave/cli/v3"

// Storage holds artifact upload configuration
type Storage struct {
	Bucket string
	Prefix string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upload-bucket",
			Usage:       "GCS bucket for generated documents (upload disabled when empty)",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("HERMES_UPLOAD_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "upload-prefix",
			Usage:       "Object name prefix for uploaded documents",
			Value:       "release-documents",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("HERMES_UPLOAD_PREFIX"),
		},
	}
}

// Enabled reports whether artifact upload is configured.
func (c *Storage) Enabled() bool {
	return c.Bucket != ""
}
