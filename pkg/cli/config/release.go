package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

// Release holds release window and report configuration
type Release struct {
	Marker     string
	PathFilter string
	OutputDir  string
	TextsPath  string
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "marker",
			Usage:       "Substring identifying the production marker tag",
			Value:       "prod-server",
			Destination: &c.Marker,
			Sources:     cli.EnvVars("HERMES_MARKER"),
		},
		&cli.StringFlag{
			Name:        "path-filter",
			Usage:       "Substring selecting deployment-relevant file paths (case-insensitive)",
			Value:       "deployment",
			Destination: &c.PathFilter,
			Sources:     cli.EnvVars("HERMES_PATH_FILTER"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for generated documents",
			Value:       "./release_documents",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("HERMES_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "texts",
			Usage:       "TOML file with implementation and rollback text sections",
			Destination: &c.TextsPath,
			Sources:     cli.EnvVars("HERMES_TEXTS"),
		},
	}
}

// Texts loads the report text sections from the configured TOML file.
// Without a file, empty texts are returned and the renderer falls back to
// its placeholders.
func (c *Release) Texts() (model.ReportTexts, error) {
	var texts model.ReportTexts
	if c.TextsPath == "" {
		return texts, nil
	}

	data, err := os.ReadFile(c.TextsPath)
	if err != nil {
		return texts, goerr.Wrap(err, "failed to read report texts file", goerr.V("path", c.TextsPath))
	}
	if err := toml.Unmarshal(data, &texts); err != nil {
		return texts, goerr.Wrap(err, "failed to parse report texts file", goerr.V("path", c.TextsPath))
	}
	return texts, nil
}
