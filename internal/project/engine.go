package project

import (
	"log/slog"
	"sync"
)

// Engine owns the live project state. Dispatch serializes command
// application behind a mutex so commands never interleave mid-application;
// everyone else only ever sees snapshots.
type Engine struct {
	mu     sync.Mutex
	state  State
	logger *slog.Logger
}

// NewEngine builds an engine seeded with the initial project state.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		state:  NewState(),
		logger: logger.With("component", "project"),
	}
}

// Dispatch applies one command atomically and returns the resulting snapshot.
func (e *Engine) Dispatch(cmd Command) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Apply(e.state, cmd)
	return e.state.Clone()
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// BeginScan dispatches StartScan and returns the generation the eventual
// SetScanResult must carry. Results tagged with an older generation are
// dropped by the reducer.
func (e *Engine) BeginScan(message string) int64 {
	snapshot := e.Dispatch(StartScan{Message: message})
	return snapshot.ScanSeq
}
