package exporter_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"packsmith/internal/exporter"
	"packsmith/internal/project"
	"packsmith/internal/testsupport"
)

func testConfig() project.Config {
	return project.Config{
		ID:          "Me.RainPack",
		Name:        "Rain Pack! (v2)",
		Author:      "Me",
		Version:     "1.0.0",
		Description: "Softer rain",
	}
}

func testEntries() []project.Entry {
	return []project.Entry{
		{
			ID:       "rainsound",
			Kind:     project.KindReplace,
			Category: project.CategoryAmbient,
			Files:    []string{"rain.ogg"},
		},
		{
			ID:       "my_theme",
			Kind:     project.KindCustom,
			Category: project.CategoryMusic,
			Files:    []string{"theme.ogg"},
			Looped:   true,
			Jukebox:  &project.JukeboxTrack{Name: "My Theme", Available: true},
		},
	}
}

func newExporter() *exporter.Exporter {
	return exporter.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPackFolderName(t *testing.T) {
	cases := map[string]string{
		"Rain Pack! (v2)": "[CP] Rain Pack v2",
		"  Simple  ":      "[CP] Simple",
		"***":             "[CP] ",
	}
	for in, want := range cases {
		if got := exporter.PackFolderName(in); got != want {
			t.Errorf("PackFolderName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportToFolder(t *testing.T) {
	source := t.TempDir()
	testsupport.WriteOggVorbis(t, filepath.Join(source, "rain.ogg"), 44100, 2)
	testsupport.WriteOggVorbis(t, filepath.Join(source, "theme.ogg"), 44100, 2)

	dest := t.TempDir()
	result, err := newExporter().ToFolder(context.Background(), dest, testConfig(), testEntries(), exporter.Options{
		CopyAudioFiles:    true,
		AudioSourceFolder: source,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !result.Success || len(result.FailedCopies) != 0 {
		t.Fatalf("expected clean export: %+v", result)
	}

	root := filepath.Join(dest, "[CP] Rain Pack v2")
	for _, rel := range []string{
		"manifest.json",
		"content.json",
		filepath.Join("i18n", "default.json"),
		filepath.Join("assets", "README.txt"),
		filepath.Join("assets", "rain.ogg"),
		filepath.Join("assets", "theme.ogg"),
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if len(result.FilesCreated) != 6 {
		t.Fatalf("files created %v", result.FilesCreated)
	}
}

func TestExportReportsMissingSourceFile(t *testing.T) {
	source := t.TempDir()
	testsupport.WriteOggVorbis(t, filepath.Join(source, "rain.ogg"), 44100, 2)
	// theme.ogg deliberately absent

	dest := t.TempDir()
	result, err := newExporter().ToFolder(context.Background(), dest, testConfig(), testEntries(), exporter.Options{
		CopyAudioFiles:    true,
		AudioSourceFolder: source,
	})
	if err != nil {
		t.Fatalf("export must not abort on a missing file: %v", err)
	}
	if result.Success {
		t.Fatal("missing source file must mark the export unsuccessful")
	}
	if len(result.FailedCopies) != 1 || result.FailedCopies[0].File != "theme.ogg" {
		t.Fatalf("unexpected failure list: %+v", result.FailedCopies)
	}

	// The documents are still written despite the failed copy.
	root := filepath.Join(dest, "[CP] Rain Pack v2")
	for _, rel := range []string{"manifest.json", "content.json", filepath.Join("i18n", "default.json")} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("document not written: %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "assets", "rain.ogg")); err != nil {
		t.Errorf("copyable file skipped: %v", err)
	}
}

func TestZipAndFolderDocumentsAreIdentical(t *testing.T) {
	cfg := testConfig()
	entries := testEntries()
	e := newExporter()

	dest := t.TempDir()
	if _, err := e.ToFolder(context.Background(), dest, cfg, entries, exporter.Options{}); err != nil {
		t.Fatalf("folder export: %v", err)
	}

	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if _, err := e.ToZip(context.Background(), zipPath, cfg, entries, exporter.Options{}); err != nil {
		t.Fatalf("zip export: %v", err)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer reader.Close()

	zipped := make(map[string][]byte)
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		zipped[f.Name] = data
	}

	root := filepath.Join(dest, "[CP] Rain Pack v2")
	for _, rel := range []string{"manifest.json", "content.json", "i18n/default.json", "assets/README.txt"} {
		onDisk, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read folder doc %s: %v", rel, err)
		}
		inZip, ok := zipped["[CP] Rain Pack v2/"+rel]
		if !ok {
			t.Fatalf("archive missing %s (has %v)", rel, keys(zipped))
		}
		if !bytes.Equal(onDisk, inZip) {
			t.Fatalf("document %s differs between folder and zip export", rel)
		}
	}
}

func TestDocumentsForRestrictedHost(t *testing.T) {
	docs, err := newExporter().Documents(testConfig(), testEntries())
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(docs))
	}
	if docs[0].Path != "manifest.json" || len(docs[0].Data) == 0 {
		t.Fatalf("unexpected first document: %+v", docs[0].Path)
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
