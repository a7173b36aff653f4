package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"

	"packsmith/internal/convert"
	"packsmith/internal/project"
	"packsmith/internal/scanner"
)

// Desktop is the full-capability host. Dialogs degrade to terminal prompts
// when one is attached; without a terminal they report ErrUnsupported so the
// caller falls back to explicit paths.
type Desktop struct {
	logger    *slog.Logger
	probe     *scanner.Scanner
	converter *convert.Converter
	stdin     *bufio.Reader
}

func NewDesktop(logger *slog.Logger, probe *scanner.Scanner, converter *convert.Converter) *Desktop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Desktop{
		logger:    logger.With("component", "host", "env", "desktop"),
		probe:     probe,
		converter: converter,
		stdin:     bufio.NewReader(os.Stdin),
	}
}

func (d *Desktop) Environment() string { return "desktop" }

func (d *Desktop) interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
}

func (d *Desktop) promptLine(prompt string) (string, error) {
	if !d.interactive() {
		return "", ErrUnsupported
	}
	fmt.Fprint(os.Stderr, prompt)
	line, err := d.stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read prompt answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (d *Desktop) PickFolder(ctx context.Context, title string) (string, error) {
	answer, err := d.promptLine(title + "\nFolder path: ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("no folder selected")
	}
	info, err := os.Stat(answer)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", answer)
	}
	return answer, nil
}

func (d *Desktop) PickSaveLocation(ctx context.Context, defaultName string, extensions []string) (string, error) {
	prompt := fmt.Sprintf("Save location [%s]: ", defaultName)
	answer, err := d.promptLine(prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = defaultName
	}
	return answer, nil
}

func (d *Desktop) Confirm(ctx context.Context, message string) (bool, error) {
	answer, err := d.promptLine(message + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// WriteClipboard shells out to the first available clipboard tool.
func (d *Desktop) WriteClipboard(ctx context.Context, text string) error {
	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"pbcopy"},
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, candidate[0], candidate[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", candidate[0], err)
		}
		return nil
	}
	return ErrUnsupported
}

// Notify sends a desktop notification, falling back to a log line when no
// notifier is installed.
func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	if _, err := exec.LookPath("notify-send"); err == nil {
		return exec.CommandContext(ctx, "notify-send", title, body).Run()
	}
	if _, err := exec.LookPath("osascript"); err == nil {
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	}
	d.logger.Info("notification", "title", title, "body", body)
	return nil
}

func (d *Desktop) ProbeAudioFile(path string) project.FileInfo {
	return d.probe.Probe(path)
}

func (d *Desktop) Convert(ctx context.Context, path, targetFormat string) ConvertOutcome {
	if d.converter == nil {
		return ConvertOutcome{Error: ErrUnsupported.Error()}
	}
	output, err := d.converter.Convert(ctx, path, targetFormat)
	if err != nil {
		return ConvertOutcome{Error: err.Error()}
	}
	return ConvertOutcome{Success: true, OutputPath: output}
}
