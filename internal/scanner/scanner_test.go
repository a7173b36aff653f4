package scanner_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"packsmith/internal/scanner"
	"packsmith/internal/testsupport"
)

func newScanner() *scanner.Scanner {
	return scanner.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScanClassifiesVorbisAndOpus(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteOggVorbis(t, filepath.Join(dir, "rain.ogg"), 44100, 2)
	testsupport.WriteOggOpus(t, filepath.Join(dir, "voice.ogg"), 1)

	result, err := newScanner().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result.TotalValid != 1 || result.TotalInvalid != 1 {
		t.Fatalf("valid/invalid = %d/%d, want 1/1", result.TotalValid, result.TotalInvalid)
	}

	byName := make(map[string]bool, len(result.Files))
	for _, f := range result.Files {
		byName[f.Name] = f.AcceptedCodec
	}
	if !byName["rain.ogg"] {
		t.Fatal("vorbis file should be accepted")
	}
	if byName["voice.ogg"] {
		t.Fatal("opus file must not be accepted")
	}

	for _, f := range result.Files {
		if f.Name == "rain.ogg" {
			if f.SampleRate != 44100 || f.Channels != 2 {
				t.Fatalf("vorbis header not parsed: rate=%d channels=%d", f.SampleRate, f.Channels)
			}
			if f.Error != "" {
				t.Fatalf("accepted file carries error: %q", f.Error)
			}
		}
		if f.Name == "voice.ogg" && f.Error == "" {
			t.Fatal("opus file should explain why it is rejected")
		}
	}
}

func TestScanIsShallowAndSkipsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteOggVorbis(t, filepath.Join(dir, "top.ogg"), 44100, 2)
	testsupport.WriteOggVorbis(t, filepath.Join(dir, "nested", "deep.ogg"), 44100, 2)
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), 64)
	testsupport.WriteFile(t, filepath.Join(dir, "music.wav"), 2048)

	result, err := newScanner().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files (ogg + wav), got %d: %#v", len(result.Files), result.Files)
	}
	for _, f := range result.Files {
		if f.Name == "deep.ogg" {
			t.Fatal("scan must not descend into subfolders")
		}
		if f.Name == "notes.txt" {
			t.Fatal("unrecognized extensions must be skipped")
		}
	}
}

func TestScanOrdersNamesCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Zebra.ogg", "apple.ogg", "Mango.ogg"} {
		testsupport.WriteOggVorbis(t, filepath.Join(dir, name), 44100, 2)
	}

	result, err := newScanner().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		got = append(got, f.Name)
	}
	want := []string{"apple.ogg", "Mango.ogg", "Zebra.ogg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteOggVorbis(t, filepath.Join(dir, "a.ogg"), 44100, 2)
	testsupport.WriteOggUnknown(t, filepath.Join(dir, "b.ogg"))

	s := newScanner()
	first, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	second, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(first.Files) != len(second.Files) ||
		first.TotalValid != second.TotalValid ||
		first.TotalSize != second.TotalSize {
		t.Fatalf("repeat scan diverged: %#v vs %#v", first, second)
	}
}

func TestScanRejectsBadFolder(t *testing.T) {
	s := newScanner()
	if _, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("missing folder must error")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Scan(context.Background(), file); err == nil {
		t.Fatal("non-directory path must error")
	}
}

func TestProbeReportsTruncatedOgg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stub.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}

	info := newScanner().Probe(path)
	if info.AcceptedCodec {
		t.Fatal("truncated file must not be accepted")
	}
	if info.Error == "" {
		t.Fatal("truncated file should carry a probe error")
	}
}

func TestFormatSizeBoundaries(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{2 * 1024 * 1024 * 1024, "2.00 GB"},
	}
	for _, tc := range cases {
		if got := scanner.FormatSize(tc.bytes); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}
