package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lineup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLayout, cfg.Layout)
	assert.Empty(t, cfg.Paths)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
paths:
  - bands/
  - extra.json
output: CSV
timezone: UTC
band_years: 1981-present
concurrency: 8
strict: true
cache_dir: /tmp/lineup-cache
width: 100
layout: Minimal
log:
  level: debug
  format: json
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"bands/", "extra.json"}, cfg.Paths)
	assert.Equal(t, "csv", cfg.Output)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "1981-present", cfg.BandYears)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "/tmp/lineup-cache", cfg.CacheDir)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, "minimal", cfg.Layout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvTimezone, "Europe/Oslo")
	t.Setenv(EnvOutput, "json")
	t.Setenv(EnvCacheDir, "/var/cache/lineup")
	t.Setenv(EnvConcurrency, "3")

	cfg, err := Load(context.Background(), writeConfig(t, "output: table\ntimezone: UTC\n"))
	require.NoError(t, err)
	assert.Equal(t, "Europe/Oslo", cfg.Timezone)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "/var/cache/lineup", cfg.CacheDir)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad_yaml", content: "output: [unclosed", errMsg: "parsing config file"},
		{name: "bad_output", content: "output: pdf", errMsg: "output: invalid format"},
		{name: "bad_timezone", content: "timezone: Mars/Olympus", errMsg: "timezone"},
		{name: "negative_concurrency", content: "concurrency: -1", errMsg: "concurrency"},
		{name: "bad_layout", content: "layout: fancy", errMsg: "layout: invalid layout"},
		{name: "negative_width", content: "width: -5", errMsg: "width"},
		{name: "bad_log_format", content: "log:\n  format: xml", errMsg: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
