// Package exporter packages the generated documents and referenced audio
// files into a distributable content pack: an on-disk folder tree, a zip
// archive, or individual document downloads for hosts without filesystem
// access. The document bytes are identical across all three profiles.
package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"packsmith/internal/artifacts"
	"packsmith/internal/fileutil"
	"packsmith/internal/project"
)

// Options controls whether referenced audio payloads are bundled alongside
// the generated documents.
type Options struct {
	CopyAudioFiles    bool
	AudioSourceFolder string
}

// FailedCopy records one referenced audio file that could not be bundled.
type FailedCopy struct {
	File   string
	Reason string
}

// Result reports what an export produced. FilesCreated lists every path
// written relative to the pack root; FailedCopies lists referenced audio
// files that could not be bundled. Success is false whenever any referenced
// file failed, even though the documents were still written.
type Result struct {
	Success      bool
	Path         string
	Message      string
	FilesCreated []string
	FailedCopies []FailedCopy
}

// Document is one generated file, path relative to the pack root.
type Document struct {
	Path string
	Data []byte
}

// Exporter writes content packs. It is stateless apart from its logger and
// safe for concurrent use.
type Exporter struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{logger: logger.With("component", "exporter")}
}

// PackFolderName derives the pack's root folder name from its display name.
// Everything except letters, digits and spaces is stripped.
func PackFolderName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return "[CP] " + strings.TrimSpace(b.String())
}

// Documents builds the three pack documents plus the assets README. The
// restricted host serves these as individual downloads; the folder and zip
// profiles write the same bytes.
func (e *Exporter) Documents(cfg project.Config, entries []project.Entry) ([]Document, error) {
	manifest, err := artifacts.EncodeJSON(artifacts.BuildManifest(cfg))
	if err != nil {
		return nil, err
	}
	content, err := artifacts.EncodeJSON(artifacts.BuildContent(entries))
	if err != nil {
		return nil, err
	}
	i18n, err := artifacts.EncodeJSON(artifacts.BuildLocalization(entries))
	if err != nil {
		return nil, err
	}
	return []Document{
		{Path: "manifest.json", Data: manifest},
		{Path: "content.json", Data: content},
		{Path: filepath.Join("i18n", "default.json"), Data: i18n},
		{Path: filepath.Join("assets", "README.txt"), Data: []byte(artifacts.BuildAssetsReadme(entries))},
	}, nil
}

// ToFolder writes the pack into destDir/[CP] <name>. Referenced audio files
// are copied from opts.AudioSourceFolder when requested; a file that cannot
// be copied is recorded and skipped, it never aborts the export.
func (e *Exporter) ToFolder(ctx context.Context, destDir string, cfg project.Config, entries []project.Entry, opts Options) (*Result, error) {
	docs, err := e.Documents(cfg, entries)
	if err != nil {
		return nil, err
	}

	packRoot := filepath.Join(destDir, PackFolderName(cfg.Name))
	for _, sub := range []string{"", "assets", "i18n"} {
		if err := fileutil.EnsureDir(filepath.Join(packRoot, sub)); err != nil {
			return nil, fmt.Errorf("create pack folder: %w", err)
		}
	}

	result := &Result{Success: true, Path: packRoot}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(packRoot, doc.Path), doc.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", doc.Path, err)
		}
		result.FilesCreated = append(result.FilesCreated, doc.Path)
	}

	e.copyAudio(ctx, entries, opts, result, func(name, src string) error {
		return fileutil.CopyFile(src, filepath.Join(packRoot, "assets", name))
	})

	result.Message = fmt.Sprintf("Pack exported to: %s", packRoot)
	if len(result.FailedCopies) > 0 {
		result.Message = fmt.Sprintf("Pack exported to %s with %d file(s) missing", packRoot, len(result.FailedCopies))
	}
	e.logger.Info("folder export finished",
		"path", packRoot,
		"files", len(result.FilesCreated),
		"failed_copies", len(result.FailedCopies))
	return result, nil
}

// copyAudio bundles every referenced audio file through write, recording
// failures on the result. Paths resolve against opts.AudioSourceFolder.
func (e *Exporter) copyAudio(ctx context.Context, entries []project.Entry, opts Options, result *Result, write func(name, src string) error) {
	if !opts.CopyAudioFiles || opts.AudioSourceFolder == "" {
		return
	}
	for _, name := range artifacts.RequiredFiles(entries) {
		if ctx.Err() != nil {
			return
		}
		src := filepath.Join(opts.AudioSourceFolder, name)
		if err := write(name, src); err != nil {
			e.logger.Warn("audio file not bundled", "file", name, "error", err)
			result.Success = false
			result.FailedCopies = append(result.FailedCopies, FailedCopy{File: name, Reason: err.Error()})
			continue
		}
		result.FilesCreated = append(result.FilesCreated, filepath.Join("assets", name))
	}
}
