package exporter

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"packsmith/internal/project"
)

// ToZip writes the pack as a zip archive at zipPath. Entries inside the
// archive live under the same [CP] folder the on-disk export creates, so
// unpacking the archive and exporting to a folder produce the same tree.
func (e *Exporter) ToZip(ctx context.Context, zipPath string, cfg project.Config, entries []project.Entry, opts Options) (*Result, error) {
	docs, err := e.Documents(cfg, entries)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	root := PackFolderName(cfg.Name)
	result := &Result{Success: true, Path: zipPath}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Zip entry names always use forward slashes.
		name := path.Join(root, filepath.ToSlash(doc.Path))
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", doc.Path, err)
		}
		if _, err := w.Write(doc.Data); err != nil {
			return nil, fmt.Errorf("write %s: %w", doc.Path, err)
		}
		result.FilesCreated = append(result.FilesCreated, doc.Path)
	}

	e.copyAudio(ctx, entries, opts, result, func(name, src string) error {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		w, err := zw.Create(path.Join(root, "assets", name))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("flush archive: %w", err)
	}

	result.Message = fmt.Sprintf("Archive created: %s", zipPath)
	if len(result.FailedCopies) > 0 {
		result.Message = fmt.Sprintf("Archive created at %s with %d file(s) missing", zipPath, len(result.FailedCopies))
	}
	e.logger.Info("zip export finished",
		"path", zipPath,
		"files", len(result.FilesCreated),
		"failed_copies", len(result.FailedCopies))
	return result, nil
}
