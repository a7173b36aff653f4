package host

import (
	"context"
	"io"
	"log/slog"

	"packsmith/internal/project"
	"packsmith/internal/scanner"
)

// Restricted is the reduced-capability host. It can probe files it is handed
// but cannot open dialogs, touch the clipboard, spawn converters, or watch
// folders; each of those degrades to the fallback documented on
// Capabilities. Callers poll via rescan instead of watching.
type Restricted struct {
	logger *slog.Logger
	probe  *scanner.Scanner
}

func NewRestricted(logger *slog.Logger, probe *scanner.Scanner) *Restricted {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Restricted{
		logger: logger.With("component", "host", "env", "web"),
		probe:  probe,
	}
}

func (r *Restricted) Environment() string { return "web" }

func (r *Restricted) PickFolder(ctx context.Context, title string) (string, error) {
	return "", ErrUnsupported
}

func (r *Restricted) PickSaveLocation(ctx context.Context, defaultName string, extensions []string) (string, error) {
	return "", ErrUnsupported
}

func (r *Restricted) Confirm(ctx context.Context, message string) (bool, error) {
	return false, ErrUnsupported
}

func (r *Restricted) WriteClipboard(ctx context.Context, text string) error {
	return ErrUnsupported
}

func (r *Restricted) Notify(ctx context.Context, title, body string) error {
	r.logger.Info("notification", "title", title, "body", body)
	return nil
}

func (r *Restricted) ProbeAudioFile(path string) project.FileInfo {
	return r.probe.Probe(path)
}

func (r *Restricted) Convert(ctx context.Context, path, targetFormat string) ConvertOutcome {
	return ConvertOutcome{Error: ErrUnsupported.Error()}
}

func (r *Restricted) WatchFolder(ctx context.Context, path string, onChange func(files []string)) (func(), error) {
	return nil, ErrUnsupported
}
