package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	assetsDir  string
	exportDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		assetsDir:  filepath.Join(base, "assets"),
		exportDir:  filepath.Join(base, "export"),
	}
	if err := os.MkdirAll(env.assetsDir, 0o755); err != nil {
		t.Fatalf("mkdir assets: %v", err)
	}

	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
assets_dir = %q
export_dir = %q

[logging]
format = "json"
level = "warn"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		env.assetsDir,
		env.exportDir,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
