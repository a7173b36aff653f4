package project

// Apply maps (state, command) to the next state. It is pure and total:
// unrecognized commands and out-of-range indexes leave the state unchanged,
// never fault. Commands that change the persisted portion of the project
// (config and entries) set Dirty; LoadProject, Reset, and MarkSaved clear it.
func Apply(state State, cmd Command) State {
	next := state.Clone()

	switch c := cmd.(type) {
	case SetConfig:
		applyPatch(&next.Config, c.Patch)
		next.Dirty = true

	case SetConfigFull:
		next.Config = c.Config
		next.Dirty = true

	case AddEntry:
		next.Entries = append(next.Entries, c.Entry.clone())
		next.Dirty = true

	case UpdateEntry:
		if c.Index < 0 || c.Index >= len(next.Entries) {
			return state
		}
		next.Entries[c.Index] = c.Entry.clone()
		next.Dirty = true

	case RemoveEntry:
		if c.Index < 0 || c.Index >= len(next.Entries) {
			return state
		}
		next.Entries = append(next.Entries[:c.Index], next.Entries[c.Index+1:]...)
		next.Dirty = true

	case ReorderEntries:
		n := len(next.Entries)
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			return state
		}
		if c.From == c.To {
			next.Dirty = true
			break
		}
		moved := next.Entries[c.From]
		rest := append(next.Entries[:c.From], next.Entries[c.From+1:]...)
		next.Entries = append(rest[:c.To], append([]Entry{moved}, rest[c.To:]...)...)
		next.Dirty = true

	case ClearEntries:
		next.Entries = nil
		next.Dirty = true

	case SetTab:
		next.ActiveTab = c.Tab

	case SetAssetsFolder:
		next.AssetsFolder = c.Folder

	case SetLoading:
		next.Loading = c.Loading
		next.LoadingMsg = c.Message
		if !c.Loading {
			next.LoadingMsg = ""
		}

	case StartScan:
		next.Loading = true
		next.LoadingMsg = c.Message
		next.ScanSeq++

	case SetScanResult:
		if c.Generation != next.ScanSeq {
			return state
		}
		next.Scan = c.Result.clone()
		next.ScanSelection = make(map[string]struct{})
		next.Loading = false
		next.LoadingMsg = ""

	case ToggleScanSelection:
		if _, ok := next.ScanSelection[c.Name]; ok {
			delete(next.ScanSelection, c.Name)
		} else if scanHasFile(next.Scan, c.Name) {
			next.ScanSelection[c.Name] = struct{}{}
		}

	case SelectAllValidScanFiles:
		if next.Scan == nil {
			return state
		}
		next.ScanSelection = make(map[string]struct{})
		for _, file := range next.Scan.Files {
			if file.Valid() {
				next.ScanSelection[file.Name] = struct{}{}
			}
		}

	case ClearScanSelection:
		next.ScanSelection = make(map[string]struct{})

	case SetWatching:
		next.Watching = c.Watching

	case LoadProject:
		next.Config = c.Config
		next.Entries = make([]Entry, len(c.Entries))
		for i, entry := range c.Entries {
			next.Entries[i] = entry.clone()
		}
		next.Dirty = false

	case Reset:
		fresh := NewState()
		fresh.ScanSeq = next.ScanSeq
		return fresh

	case MarkSaved:
		next.Dirty = false

	case AddConvertJob:
		next.ConvertJobs = append(next.ConvertJobs, c.Job)

	case UpdateConvertJob:
		idx := jobIndex(next.ConvertJobs, c.ID)
		if idx < 0 || next.ConvertJobs[idx].Status.IsTerminal() {
			return state
		}
		job := &next.ConvertJobs[idx]
		if c.Status != "" {
			job.Status = c.Status
		}
		if c.Progress > job.Progress {
			job.Progress = c.Progress
		}
		if c.OutputPath != "" {
			job.OutputPath = c.OutputPath
		}
		if c.Error != "" {
			job.Error = c.Error
		}

	case RemoveConvertJob:
		idx := jobIndex(next.ConvertJobs, c.ID)
		if idx < 0 || next.ConvertJobs[idx].Status == JobConverting {
			return state
		}
		next.ConvertJobs = append(next.ConvertJobs[:idx], next.ConvertJobs[idx+1:]...)

	case ClearFinishedConvertJobs:
		kept := next.ConvertJobs[:0]
		for _, job := range next.ConvertJobs {
			if !job.Status.IsTerminal() {
				kept = append(kept, job)
			}
		}
		next.ConvertJobs = kept

	default:
		return state
	}

	return next
}

func applyPatch(cfg *Config, patch ConfigPatch) {
	if patch.ID != nil {
		cfg.ID = *patch.ID
	}
	if patch.Name != nil {
		cfg.Name = *patch.Name
	}
	if patch.Author != nil {
		cfg.Author = *patch.Author
	}
	if patch.Version != nil {
		cfg.Version = *patch.Version
	}
	if patch.Description != nil {
		cfg.Description = *patch.Description
	}
}

func scanHasFile(scan *ScanResult, name string) bool {
	if scan == nil {
		return false
	}
	for _, file := range scan.Files {
		if file.Name == name {
			return true
		}
	}
	return false
}

func jobIndex(jobs []ConvertJob, id string) int {
	for i, job := range jobs {
		if job.ID == id {
			return i
		}
	}
	return -1
}
