package config

import (
	"os"
	"strconv"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
)

// Default values for configuration.
const (
	DefaultOutput    = constants.OutputTable
	DefaultLayout    = constants.LayoutFull
	DefaultTimezone  = "Local"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Environment variable names.
const (
	EnvTimezone    = "LINEUP_TIMEZONE"
	EnvOutput      = "LINEUP_OUTPUT"
	EnvCacheDir    = "LINEUP_CACHE_DIR"
	EnvConcurrency = "LINEUP_CONCURRENCY"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths:    []string{},
		Output:   DefaultOutput,
		Layout:   DefaultLayout,
		Timezone: DefaultTimezone,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if output := os.Getenv(EnvOutput); output != "" {
		c.Output = output
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		c.CacheDir = dir
	}
	if n, err := strconv.Atoi(os.Getenv(EnvConcurrency)); err == nil {
		c.Concurrency = n
	}
}
