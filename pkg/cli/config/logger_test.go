package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/khalilabidd/Project-Hermes/pkg/cli/config"
)

func TestLogger_Configure_Levels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", false},
		{"Info", false},
		{"", true},
		{"verbose", true},
		{"trace", true},
	}

	for _, tt := range tests {
		name := tt.level
		if name == "" {
			name = "(empty)"
		}
		t.Run(name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level}

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.NotNil(t, logger)
		})
	}
}

func TestLogger_Configure_Handlers(t *testing.T) {
	for _, json := range []bool{true, false} {
		cfg := &config.Logger{Level: "info", JSON: json}

		logger, err := cfg.Configure()
		gt.NoError(t, err)
		gt.NotNil(t, logger)

		logger.Info("handler smoke test", "json", json)
	}
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.Number(t, len(flags)).Equal(2)

	names := map[string]bool{}
	for _, flag := range flags {
		if f, ok := flag.(interface{ Names() []string }); ok {
			for _, n := range f.Names() {
				names[n] = true
			}
		}
	}
	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}
