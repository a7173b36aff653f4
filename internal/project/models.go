package project

import (
	"strings"
)

// Category classifies how the game plays back an audio entry.
type Category string

const (
	CategoryMusic    Category = "Music"
	CategoryAmbient  Category = "Ambient"
	CategorySound    Category = "Sound"
	CategoryFootstep Category = "Footstep"
)

var allCategories = []Category{CategoryMusic, CategoryAmbient, CategorySound, CategoryFootstep}

// AllCategories returns the ordered list of known categories.
func AllCategories() []Category {
	cp := make([]Category, len(allCategories))
	copy(cp, allCategories)
	return cp
}

// ParseCategory converts a string into a known Category.
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	for _, cat := range allCategories {
		if strings.EqualFold(trimmed, string(cat)) {
			return cat, true
		}
	}
	return "", false
}

// EntryKind distinguishes entries that replace an original game asset from
// entries that add new audio.
type EntryKind string

const (
	KindReplace EntryKind = "replace"
	KindCustom  EntryKind = "custom"
)

// Tab identifies the active editor surface. The engine only stores it; the
// presentation layer decides what each tab renders.
type Tab string

const (
	TabSetup  Tab = "setup"
	TabAudio  Tab = "audio"
	TabScan   Tab = "scan"
	TabExport Tab = "export"
	TabHelp   Tab = "help"
)

// Config identifies the content pack being assembled.
type Config struct {
	ID          string
	Name        string
	Author      string
	Version     string
	Description string
}

// DefaultConfig returns the seed configuration for a fresh project.
func DefaultConfig() Config {
	return Config{
		ID:          "YourName.AudioPack",
		Name:        "My Audio Pack",
		Author:      "Your Name",
		Version:     "1.0.0",
		Description: "Adds and replaces game audio",
	}
}

// JukeboxTrack is the optional secondary listing for a music entry.
type JukeboxTrack struct {
	Name      string
	Available bool
}

// Entry is one audio unit backed by one or more files in the assets folder.
//
// Looped is meaningful only for CategoryMusic; the edit boundary forces it
// false elsewhere. Jukebox is only legal for CategoryMusic. An Entry with an
// empty Files list must never reach the build pipeline.
type Entry struct {
	ID           string
	Kind         EntryKind
	OriginalName string // display name of the replaced asset; empty for KindCustom
	Category     Category
	Files        []string
	Looped       bool
	Jukebox      *JukeboxTrack
}

func (e Entry) clone() Entry {
	cp := e
	cp.Files = append([]string(nil), e.Files...)
	if e.Jukebox != nil {
		jb := *e.Jukebox
		cp.Jukebox = &jb
	}
	return cp
}

// FileInfo describes one scanned audio file.
type FileInfo struct {
	Name          string
	Path          string
	SizeBytes     int64
	SizeDisplay   string
	Family        string // extension-derived codec family, e.g. "OGG", "WAV"
	AcceptedCodec bool   // for the variant-sensitive OGG family: true only for Vorbis
	Error         string // per-file probe failure; never aborts the scan
	SampleRate    int
	Channels      int
}

// Valid reports whether downstream bulk-add logic should treat the file as
// usable: an accepted OGG variant, or any other recognized family.
func (f FileInfo) Valid() bool {
	if f.Family == "" {
		return false
	}
	if f.Family == "OGG" {
		return f.AcceptedCodec
	}
	return f.Error == ""
}

// ScanResult is the wholesale outcome of scanning one assets directory.
type ScanResult struct {
	Folder       string
	Files        []FileInfo
	TotalValid   int
	TotalInvalid int
	TotalSize    string
}

func (r *ScanResult) clone() *ScanResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Files = append([]FileInfo(nil), r.Files...)
	return &cp
}

// JobStatus is the lifecycle of a conversion job. Done and Error are terminal.
type JobStatus string

const (
	JobConverting JobStatus = "converting"
	JobDone       JobStatus = "done"
	JobError      JobStatus = "error"
)

// IsTerminal reports whether a job status accepts no further updates.
func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobError
}

// ConvertJob is a transient work item for one audio format conversion.
type ConvertJob struct {
	ID           string
	SourceFile   string
	TargetFormat string
	Status       JobStatus
	Progress     int // 0..100
	OutputPath   string
	Error        string
}

// State is the aggregate project state. It is owned exclusively by the
// Engine; every other component works on snapshots.
type State struct {
	Config        Config
	Entries       []Entry
	ActiveTab     Tab
	AssetsFolder  string
	Loading       bool
	LoadingMsg    string
	Scan          *ScanResult
	ScanSelection map[string]struct{} // filenames checked for bulk add
	ScanSeq       int64               // generation counter; stale results are dropped
	Watching      bool
	Dirty         bool
	ConvertJobs   []ConvertJob
}

// NewState returns the initial state for a fresh project.
func NewState() State {
	return State{
		Config:        DefaultConfig(),
		ActiveTab:     TabSetup,
		ScanSelection: make(map[string]struct{}),
	}
}

// Clone returns a deep copy so reducer output never aliases reducer input.
func (s State) Clone() State {
	cp := s
	cp.Entries = make([]Entry, len(s.Entries))
	for i, entry := range s.Entries {
		cp.Entries[i] = entry.clone()
	}
	cp.Scan = s.Scan.clone()
	cp.ScanSelection = make(map[string]struct{}, len(s.ScanSelection))
	for name := range s.ScanSelection {
		cp.ScanSelection[name] = struct{}{}
	}
	cp.ConvertJobs = append([]ConvertJob(nil), s.ConvertJobs...)
	return cp
}

// EntryIndex returns the position of the entry with the given id, matched
// case-insensitively, or -1.
func (s State) EntryIndex(id string) int {
	for i, entry := range s.Entries {
		if strings.EqualFold(entry.ID, id) {
			return i
		}
	}
	return -1
}

// JukeboxEntries returns the entries carrying jukebox data, in authored order.
func (s State) JukeboxEntries() []Entry {
	var out []Entry
	for _, entry := range s.Entries {
		if entry.Jukebox != nil {
			out = append(out, entry)
		}
	}
	return out
}
