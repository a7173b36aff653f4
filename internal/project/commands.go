package project

// Command is one unit of project mutation. Commands are applied exclusively
// by Apply; long-running services report completion by dispatching follow-up
// commands (SetScanResult, UpdateConvertJob) rather than touching State.
type Command interface {
	isCommand()
}

// ConfigPatch carries optional replacements for individual Config fields.
type ConfigPatch struct {
	ID          *string
	Name        *string
	Author      *string
	Version     *string
	Description *string
}

// SetConfig applies a partial config update.
type SetConfig struct{ Patch ConfigPatch }

// SetConfigFull replaces the whole config.
type SetConfigFull struct{ Config Config }

// AddEntry appends an audio entry.
type AddEntry struct{ Entry Entry }

// UpdateEntry replaces the entry at Index.
type UpdateEntry struct {
	Index int
	Entry Entry
}

// RemoveEntry deletes the entry at Index. Out-of-range indexes are a no-op.
type RemoveEntry struct{ Index int }

// ReorderEntries moves the entry at From to position To. Out-of-range
// indexes are a no-op.
type ReorderEntries struct{ From, To int }

// ClearEntries removes every entry.
type ClearEntries struct{}

// SetTab selects the active editor tab.
type SetTab struct{ Tab Tab }

// SetAssetsFolder records the scanned assets directory ("" clears it).
type SetAssetsFolder struct{ Folder string }

// SetLoading toggles the loading flag and message.
type SetLoading struct {
	Loading bool
	Message string
}

// StartScan marks the project loading and advances the scan generation.
// The caller reads the new generation from the next snapshot and attaches it
// to the eventual SetScanResult.
type StartScan struct{ Message string }

// SetScanResult installs a completed scan wholesale and resets the scan
// selection. Results whose Generation no longer matches the state's scan
// sequence are dropped (a newer scan superseded them).
type SetScanResult struct {
	Result     *ScanResult
	Generation int64
}

// ToggleScanSelection flips the checked state of one scanned filename.
type ToggleScanSelection struct{ Name string }

// SelectAllValidScanFiles checks every file the current scan classifies as valid.
type SelectAllValidScanFiles struct{}

// ClearScanSelection unchecks every scanned filename.
type ClearScanSelection struct{}

// SetWatching toggles the folder-watcher flag.
type SetWatching struct{ Watching bool }

// LoadProject replaces config and entries from a decoded save and clears the
// dirty flag. It is the only command that bypasses accretive editing.
type LoadProject struct {
	Config  Config
	Entries []Entry
}

// Reset restores the initial state.
type Reset struct{}

// MarkSaved clears the dirty flag after a successful persistence write.
type MarkSaved struct{}

// AddConvertJob registers a new conversion job.
type AddConvertJob struct{ Job ConvertJob }

// UpdateConvertJob advances a job's progress or status. Updates for unknown
// or already-terminal job ids are a no-op, and status only moves forward.
type UpdateConvertJob struct {
	ID         string
	Status     JobStatus
	Progress   int
	OutputPath string
	Error      string
}

// RemoveConvertJob drops one non-converting job.
type RemoveConvertJob struct{ ID string }

// ClearFinishedConvertJobs drops every job in a terminal status.
type ClearFinishedConvertJobs struct{}

func (SetConfig) isCommand()                {}
func (SetConfigFull) isCommand()            {}
func (AddEntry) isCommand()                 {}
func (UpdateEntry) isCommand()              {}
func (RemoveEntry) isCommand()              {}
func (ReorderEntries) isCommand()           {}
func (ClearEntries) isCommand()             {}
func (SetTab) isCommand()                   {}
func (SetAssetsFolder) isCommand()          {}
func (SetLoading) isCommand()               {}
func (StartScan) isCommand()                {}
func (SetScanResult) isCommand()            {}
func (ToggleScanSelection) isCommand()      {}
func (SelectAllValidScanFiles) isCommand()  {}
func (ClearScanSelection) isCommand()       {}
func (SetWatching) isCommand()              {}
func (LoadProject) isCommand()              {}
func (Reset) isCommand()                    {}
func (MarkSaved) isCommand()                {}
func (AddConvertJob) isCommand()            {}
func (UpdateConvertJob) isCommand()         {}
func (RemoveConvertJob) isCommand()         {}
func (ClearFinishedConvertJobs) isCommand() {}
