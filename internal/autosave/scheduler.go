package autosave

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"packsmith/internal/project"
	"packsmith/internal/savefile"
)

// Default intervals per host. The restricted host has no durable process to
// lean on, so it saves more often; the desktop host also has explicit save.
const (
	DesktopInterval    = 30 * time.Second
	RestrictedInterval = 15 * time.Second
)

// IntervalFor returns the auto-save interval for an environment.
func IntervalFor(env savefile.Environment) time.Duration {
	if env == savefile.EnvWeb {
		return RestrictedInterval
	}
	return DesktopInterval
}

// Scheduler periodically snapshots the project through the codec and writes
// it to the store. Writes happen only while the project is dirty; a failed
// write is logged and retried on the next tick, never surfaced to the caller.
type Scheduler struct {
	engine   *project.Engine
	codec    *savefile.Codec
	store    Store
	env      savefile.Environment
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(engine *project.Engine, codec *savefile.Codec, store Store, env savefile.Environment, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		engine:   engine,
		codec:    codec,
		store:    store,
		env:      env,
		interval: IntervalFor(env),
		logger:   logger.With("component", "autosave"),
		now:      time.Now,
	}
}

// SetInterval overrides the environment-default auto-save interval.
// Non-positive values are ignored. Must be called before Start.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Start launches the auto-save loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SaveNow(ctx)
			}
		}
	}()
}

// Stop tears the loop down and waits for the in-flight tick, if any.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SaveNow writes a snapshot immediately if the project is dirty. It reports
// whether a write happened; errors are logged, not returned, because a tick
// failure only means the next tick tries again.
func (s *Scheduler) SaveNow(ctx context.Context) bool {
	state := s.engine.Snapshot()
	if !state.Dirty {
		return false
	}

	data, err := s.codec.Encode(state.Config, state.Entries, s.env, s.now())
	if err != nil {
		s.logger.Error("encode snapshot failed", "error", err)
		return false
	}
	if err := s.store.Save(ctx, data); err != nil {
		s.logger.Warn("auto-save write failed, will retry", "error", err)
		return false
	}

	s.engine.Dispatch(project.MarkSaved{})
	s.logger.Debug("project auto-saved", "entries", len(state.Entries))
	return true
}

// Restore reads the store once and, when the document holds at least one
// entry, loads it into the engine. It returns the decoded snapshot when a
// restore happened so the caller can show a one-time notification. Every
// decode or read problem means "nothing to restore".
func (s *Scheduler) Restore(ctx context.Context) (*savefile.Snapshot, bool) {
	data, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			s.logger.Warn("auto-save store unreadable", "error", err)
		}
		return nil, false
	}

	snapshot, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("stored document not restorable", "error", err)
		return nil, false
	}
	if len(snapshot.Entries) == 0 {
		return nil, false
	}

	s.engine.Dispatch(project.LoadProject{Config: snapshot.Config, Entries: snapshot.Entries})
	s.logger.Info("project restored",
		"entries", len(snapshot.Entries),
		"saved_at", snapshot.SavedAt,
		"origin", string(snapshot.Origin))
	return snapshot, true
}
