package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"packsmith/internal/catalog"
	"packsmith/internal/project"
)

func newEntryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage audio entries",
	}
	cmd.AddCommand(newEntryAddCommand(ctx))
	cmd.AddCommand(newEntryRemoveCommand(ctx))
	cmd.AddCommand(newEntryMoveCommand(ctx))
	return cmd
}

// buildEntryForID classifies an id against the original-audio catalog: known
// ids become replacements carrying the original display name, everything else
// is a custom addition.
func buildEntryForID(id string, files []string) project.Entry {
	entry := project.Entry{
		ID:       id,
		Kind:     project.KindCustom,
		Category: project.CategoryMusic,
		Files:    files,
	}
	if original, known := catalog.Default().Lookup(id); known {
		entry.Kind = project.KindReplace
		entry.OriginalName = original.Name
	}
	return entry
}

// validateNewEntry enforces the edit-boundary rules: non-empty unique id,
// at least one file, no duplicate files within the entry, and jukebox or
// looped flags only on music.
func validateNewEntry(state project.State, entry project.Entry) error {
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if state.EntryIndex(entry.ID) >= 0 {
		return fmt.Errorf("an entry with id %q already exists", entry.ID)
	}
	if len(entry.Files) == 0 {
		return fmt.Errorf("at least one file is required")
	}
	seen := make(map[string]struct{}, len(entry.Files))
	for _, file := range entry.Files {
		if _, dup := seen[file]; dup {
			return fmt.Errorf("duplicate file %q in entry", file)
		}
		seen[file] = struct{}{}
	}
	if entry.Category != project.CategoryMusic {
		if entry.Looped {
			return fmt.Errorf("--looped only applies to Music entries")
		}
		if entry.Jukebox != nil {
			return fmt.Errorf("--jukebox-name only applies to Music entries")
		}
	}
	return nil
}

func newEntryAddCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag, jukeboxFlag string
	var filesFlag []string
	var loopedFlag, hiddenFlag bool

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an audio entry",
		Long: "Add an audio entry. Ids matching an original game cue become " +
			"replacements; any other id becomes a custom addition.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])

			category, ok := project.ParseCategory(categoryFlag)
			if !ok {
				return fmt.Errorf("unknown category %q (Music, Ambient, Sound, Footstep)", categoryFlag)
			}

			entry := buildEntryForID(id, filesFlag)
			entry.Category = category
			entry.Looped = loopedFlag
			if jukeboxFlag != "" {
				entry.Jukebox = &project.JukeboxTrack{Name: jukeboxFlag, Available: !hiddenFlag}
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := validateNewEntry(s.engine.Snapshot(), entry); err != nil {
				return err
			}
			s.engine.Dispatch(project.AddEntry{Entry: entry})
			if err := s.save(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %q (%d file(s))\n",
				strings.ToLower(string(entry.Kind)), entry.ID, len(entry.Files))
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "Music", "Music, Ambient, Sound, or Footstep")
	cmd.Flags().StringSliceVar(&filesFlag, "file", nil, "Backing audio file name (repeatable)")
	cmd.Flags().BoolVar(&loopedFlag, "looped", false, "Loop playback (Music only)")
	cmd.Flags().StringVar(&jukeboxFlag, "jukebox-name", "", "List the track in the jukebox under this name (Music only)")
	cmd.Flags().BoolVar(&hiddenFlag, "jukebox-hidden", false, "Register the jukebox track but keep it hidden")
	return cmd
}

func newEntryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the entry at an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[0])
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.engine.Snapshot()
			if index < 0 || index >= len(state.Entries) {
				return fmt.Errorf("index %d out of range (0..%d)", index, len(state.Entries)-1)
			}
			removed := state.Entries[index].ID

			s.engine.Dispatch(project.RemoveEntry{Index: index})
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %q\n", removed)
			return nil
		},
	}
}

func newEntryMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Reorder entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("from must be a number: %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("to must be a number: %q", args[1])
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			count := len(s.engine.Snapshot().Entries)
			if from < 0 || from >= count || to < 0 || to >= count {
				return fmt.Errorf("indexes out of range (0..%d)", count-1)
			}

			s.engine.Dispatch(project.ReorderEntries{From: from, To: to})
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved entry %d to position %d\n", from, to)
			return nil
		},
	}
}
