// Package project holds the canonical content-pack project model and the
// state machine that owns it.
//
// State is the aggregate root: pack config, ordered audio entries, the last
// scan result with its transient selection set, convert jobs, and the
// editor-facing flags (active tab, loading, watching, dirty). Apply is the
// single pure transition function; Engine serializes Apply behind a mutex so
// there is exactly one writer. Services that run out-of-band (scanning,
// conversion, export) report back by dispatching follow-up commands through
// the same Engine, which keeps the single-writer invariant intact.
//
// Treat this package as the source of truth for project semantics; new
// fields belong in State and new mutations belong in a Command handled by
// Apply, not in ad-hoc setters.
package project
