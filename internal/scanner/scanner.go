// Package scanner inspects an assets folder and classifies the audio files
// inside it. Scans are shallow: only the folder's immediate children are
// considered, matching how pack assets are laid out on disk.
package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"packsmith/internal/project"
)

// families maps a lowercase file extension to its codec family. Only OGG is
// directly usable in a pack; the rest are listed so the conversion workflow
// can pick them up.
var families = map[string]string{
	".ogg":  "OGG",
	".wav":  "WAV",
	".mp3":  "MP3",
	".flac": "FLAC",
}

// Scanner probes audio files and produces scan results for the project
// engine. Results are reported back through a dispatched command carrying the
// generation returned by Engine.BeginScan, which lets the reducer discard
// output from a superseded scan.
type Scanner struct {
	logger *slog.Logger
	coll   *collate.Collator
}

func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		logger: logger.With("component", "scanner"),
		coll:   collate.New(language.Und, collate.IgnoreCase),
	}
}

// Scan lists the immediate children of folder and probes every recognized
// audio file. Per-file problems land in the file's Error field and never
// abort the scan; only an unusable folder fails the call.
func (s *Scanner) Scan(ctx context.Context, folder string) (*project.ScanResult, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %s", folder)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", folder)
	}

	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	result := &project.ScanResult{Folder: folder, Files: []project.FileInfo{}}
	var totalBytes int64
	for _, dirEntry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dirEntry.IsDir() {
			continue
		}
		family, ok := families[strings.ToLower(filepath.Ext(dirEntry.Name()))]
		if !ok {
			continue
		}
		file := s.Probe(filepath.Join(folder, dirEntry.Name()))
		file.Family = family
		totalBytes += file.SizeBytes
		result.Files = append(result.Files, file)
	}

	sort.SliceStable(result.Files, func(i, j int) bool {
		return s.coll.CompareString(result.Files[i].Name, result.Files[j].Name) < 0
	})

	for _, file := range result.Files {
		if file.Valid() {
			result.TotalValid++
		} else {
			result.TotalInvalid++
		}
	}
	result.TotalSize = FormatSize(totalBytes)

	s.logger.Info("folder scanned",
		"folder", folder,
		"files", len(result.Files),
		"valid", result.TotalValid,
		"invalid", result.TotalInvalid)
	return result, nil
}

// Probe inspects a single audio file. OGG files get a codec probe; other
// families are sized and passed through for conversion.
func (s *Scanner) Probe(path string) project.FileInfo {
	file := project.FileInfo{
		Name:   filepath.Base(path),
		Path:   path,
		Family: families[strings.ToLower(filepath.Ext(path))],
	}
	if stat, err := os.Stat(path); err == nil {
		file.SizeBytes = stat.Size()
	}
	file.SizeDisplay = FormatSize(file.SizeBytes)

	if file.Family != "OGG" {
		return file
	}

	f, err := os.Open(path)
	if err != nil {
		file.Error = "cannot open file: " + err.Error()
		return file
	}
	defer f.Close()

	probe := probeOgg(f)
	file.AcceptedCodec = probe.Vorbis
	file.SampleRate = probe.SampleRate
	file.Channels = probe.Channels
	file.Error = probe.Error
	return file
}
