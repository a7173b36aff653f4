// Package host is the capability facade between the project core and the
// machine it runs on: dialogs, clipboard, notifications, audio probing and
// conversion, and folder watching. Two implementations exist, a desktop one
// with full filesystem access and a restricted one that degrades every
// missing capability to a documented fallback instead of failing.
package host

import (
	"context"
	"errors"

	"packsmith/internal/project"
)

// ErrUnsupported is returned by any capability the current host lacks.
// Callers must treat it as "use the fallback", never as a fault.
var ErrUnsupported = errors.New("capability not supported on this host")

// ConvertOutcome is the result of one audio conversion.
type ConvertOutcome struct {
	Success    bool
	OutputPath string
	Error      string
}

// Capabilities is the full host surface the core may call. Every method has
// a documented fallback when the host cannot provide it:
//
//	PickFolder, PickSaveLocation  ErrUnsupported; caller supplies the path
//	Confirm                       ErrUnsupported; caller assumes "no"
//	WriteClipboard                ErrUnsupported; caller shows the text
//	Notify                        falls back to a log line
//	ProbeAudioFile                always available (pure file read)
//	Convert                       ErrUnsupported; files must be pre-converted
//	WatchFolder                   ErrUnsupported; caller polls via rescan
type Capabilities interface {
	Environment() string
	PickFolder(ctx context.Context, title string) (string, error)
	PickSaveLocation(ctx context.Context, defaultName string, extensions []string) (string, error)
	Confirm(ctx context.Context, message string) (bool, error)
	WriteClipboard(ctx context.Context, text string) error
	Notify(ctx context.Context, title, body string) error
	ProbeAudioFile(path string) project.FileInfo
	Convert(ctx context.Context, path, targetFormat string) ConvertOutcome
	WatchFolder(ctx context.Context, path string, onChange func(files []string)) (stop func(), err error)
}
