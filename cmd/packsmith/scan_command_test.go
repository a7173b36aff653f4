package main

import (
	"path/filepath"
	"testing"

	"packsmith/internal/testsupport"
)

func TestScanReportsCodecAndTotals(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteOggVorbis(t, filepath.Join(env.assetsDir, "spring1.ogg"), 44100, 2)
	testsupport.WriteOggOpus(t, filepath.Join(env.assetsDir, "opus.ogg"), 2)

	out, err := runCLI(t, env, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "spring1.ogg")
	requireContains(t, out, "44100 Hz")
	requireContains(t, out, "1 valid, 1 invalid")
}

func TestScanAddValidCreatesEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteOggVorbis(t, filepath.Join(env.assetsDir, "spring1.ogg"), 44100, 2)
	testsupport.WriteOggOpus(t, filepath.Join(env.assetsDir, "opus.ogg"), 2)

	out, err := runCLI(t, env, "scan", "--add-valid")
	if err != nil {
		t.Fatalf("scan --add-valid: %v", err)
	}
	requireContains(t, out, "Added 1 new entries")

	out, err = runCLI(t, env, "project", "show")
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "spring1")
	requireContains(t, out, "replace")
}

func TestScanRejectsMissingFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, env, "scan", filepath.Join(env.baseDir, "nope")); err == nil {
		t.Fatal("expected an error for a missing folder")
	}
}
