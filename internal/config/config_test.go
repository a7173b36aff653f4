package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packsmith/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "packsmith")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Host.Environment != "desktop" {
		t.Fatalf("unexpected environment: %q", cfg.Host.Environment)
	}
	if !cfg.Autosave.Enabled || !cfg.Autosave.RestoreOnStart {
		t.Fatal("autosave should be fully enabled by default")
	}
	if cfg.Autosave.DesktopIntervalSeconds != 30 || cfg.Autosave.WebIntervalSeconds != 15 {
		t.Fatalf("unexpected intervals: %+v", cfg.Autosave)
	}
	if cfg.SaveFilePath() != filepath.Join(wantData, "project.json") {
		t.Fatalf("unexpected save file path: %q", cfg.SaveFilePath())
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"

[host]
environment = "WEB"

[autosave]
desktop_interval_seconds = 60

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to resolve")
	}
	if cfg.Host.Environment != "web" {
		t.Fatalf("environment not normalized: %q", cfg.Host.Environment)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Autosave.DesktopIntervalSeconds != 60 {
		t.Fatalf("interval override lost: %+v", cfg.Autosave)
	}
	if cfg.Autosave.WebIntervalSeconds != 15 {
		t.Fatalf("unset interval must default: %+v", cfg.Autosave)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		setup string
		want  string
	}{
		{
			name:  "bad environment",
			setup: "[host]\nenvironment = \"mobile\"\n",
			want:  "host.environment",
		},
		{
			name:  "interval too small",
			setup: "[autosave]\nweb_interval_seconds = 1\n",
			want:  "web_interval_seconds",
		},
		{
			name:  "bad log format",
			setup: "[logging]\nformat = \"xml\"\n",
			want:  "logging.format",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.setup), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("second create must refuse to overwrite")
	}

	// The sample must itself load cleanly.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/packs")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "packs") {
		t.Fatalf("expanded to %q", got)
	}
}
