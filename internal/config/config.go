// Package config loads the YAML configuration of the lineup tools.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and normalizes the output name.
func Validate(cfg *Config) error {
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if !slices.Contains(constants.OutputFormats, cfg.Output) {
		return fmt.Errorf("output: invalid format %q (must be one of %s)", cfg.Output, strings.Join(constants.OutputFormats, ", "))
	}

	cfg.Layout = strings.ToLower(strings.TrimSpace(cfg.Layout))
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	if !slices.Contains(constants.Layouts, cfg.Layout) {
		return fmt.Errorf("layout: invalid layout %q (must be one of %s)", cfg.Layout, strings.Join(constants.Layouts, ", "))
	}

	if _, err := util.NewTimeProvider(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	if cfg.Concurrency < 0 {
		return errors.New("concurrency: must not be negative")
	}

	if cfg.Width < 0 {
		return errors.New("width: must not be negative")
	}

	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: invalid format %q (must be text or json)", cfg.Log.Format)
	}

	return nil
}
