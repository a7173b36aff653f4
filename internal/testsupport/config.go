package testsupport

import (
	"path/filepath"
	"testing"

	"packsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AssetsDir = filepath.Join(base, "assets")
	cfg.Paths.ExportDir = filepath.Join(base, "export")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithEnvironment overrides the host environment on the test config.
func WithEnvironment(env string) ConfigOption {
	return func(c *config.Config) {
		c.Host.Environment = env
	}
}
