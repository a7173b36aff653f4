package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches rapid file events (editors often write several times
// in quick succession) into one callback.
const watchDebounce = 500 * time.Millisecond

var watchedExtensions = map[string]struct{}{
	".ogg":  {},
	".wav":  {},
	".mp3":  {},
	".flac": {},
}

// WatchFolder watches path for audio file changes and invokes onChange with
// the affected file names. The returned stop function tears the watcher
// down; cancelling ctx does the same.
func (d *Desktop) WatchFolder(ctx context.Context, path string, onChange func(files []string)) (func(), error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("invalid folder path: %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time
		pending := make(map[string]struct{})

		flush := func() {
			if len(pending) == 0 {
				return
			}
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			pending = make(map[string]struct{})
			d.logger.Debug("assets changed", "folder", path, "files", files)
			onChange(files)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				ext := strings.ToLower(filepath.Ext(event.Name))
				if _, watched := watchedExtensions[ext]; !watched {
					continue
				}
				pending[filepath.Base(event.Name)] = struct{}{}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(watchDebounce)
				}
			case <-timerC:
				flush()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Warn("watch error", "folder", path, "error", err)
			}
		}
	}()

	d.logger.Info("watching assets folder", "folder", path)
	stop := func() {
		cancel()
		<-done
	}
	return stop, nil
}
