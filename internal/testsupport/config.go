// Package testsupport provides helpers shared by package tests: temp-dir
// backed configurations and dataset fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"clipset/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Dataset.NumClasses = 4
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.MetaDir = filepath.Join(base, "meta")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogPath = filepath.Join(base, "catalog.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithShape overrides the configured frame shape.
func WithShape(height, width, channels int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Dataset.CropHeight = height
		cfg.Dataset.CropWidth = width
		cfg.Dataset.Channels = channels
	}
}

// WithClasses overrides the configured class count.
func WithClasses(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Dataset.NumClasses = n
	}
}
