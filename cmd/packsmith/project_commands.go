package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"packsmith/internal/fileutil"
	"packsmith/internal/project"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the current pack project",
	}
	cmd.AddCommand(newProjectShowCommand(ctx))
	cmd.AddCommand(newProjectSetCommand(ctx))
	cmd.AddCommand(newProjectSaveCommand(ctx))
	cmd.AddCommand(newProjectLoadCommand(ctx))
	cmd.AddCommand(newProjectResetCommand(ctx))
	return cmd
}

func newProjectSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Save the project to an explicit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.engine.Snapshot()
			data, err := s.codec.Encode(state.Config, state.Entries, ctx.environment(), time.Now())
			if err != nil {
				return err
			}
			if err := fileutil.WriteFileAtomic(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d entries to %s\n", len(state.Entries), args[0])
			return nil
		},
	}
}

func newProjectLoadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Load a project from an explicit file",
		Long: "Load a project save file, replacing the current project. Unlike " +
			"the silent startup restore, a malformed or unsupported file is " +
			"reported as an error.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			snapshot, err := s.codec.Decode(data)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			s.engine.Dispatch(project.LoadProject{
				Config:  snapshot.Config,
				Entries: snapshot.Entries,
			})
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q: %d entries (saved %s, %s)\n",
				snapshot.Config.Name, len(snapshot.Entries),
				snapshot.SavedAt.Format("2006-01-02 15:04"), snapshot.Origin)
			return nil
		},
	}
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show pack config and entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.engine.Snapshot()
			out := cmd.OutOrStdout()

			if s.restored != nil {
				fmt.Fprintf(out, "Restored project saved %s (%s)\n\n",
					s.restored.SavedAt.Format("2006-01-02 15:04"), s.restored.Origin)
			}

			configRows := [][]string{
				{"ID", state.Config.ID},
				{"Name", state.Config.Name},
				{"Author", state.Config.Author},
				{"Version", state.Config.Version},
				{"Description", state.Config.Description},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, configRows, nil))

			if len(state.Entries) == 0 {
				fmt.Fprintln(out, "No entries yet. Add one with: packsmith entry add")
				return nil
			}

			rows := make([][]string, 0, len(state.Entries))
			for i, entry := range state.Entries {
				jukebox := ""
				if entry.Jukebox != nil {
					jukebox = entry.Jukebox.Name
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					entry.ID,
					string(entry.Kind),
					string(entry.Category),
					strconv.Itoa(len(entry.Files)),
					strconv.FormatBool(entry.Looped),
					jukebox,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Kind", "Category", "Files", "Looped", "Jukebox"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newProjectSetCommand(ctx *commandContext) *cobra.Command {
	var idFlag, nameFlag, authorFlag, versionFlag, descriptionFlag string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update pack config fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := project.ConfigPatch{}
			if cmd.Flags().Changed("id") {
				patch.ID = &idFlag
			}
			if cmd.Flags().Changed("name") {
				patch.Name = &nameFlag
			}
			if cmd.Flags().Changed("author") {
				patch.Author = &authorFlag
			}
			if cmd.Flags().Changed("version") {
				patch.Version = &versionFlag
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &descriptionFlag
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			s.engine.Dispatch(project.SetConfig{Patch: patch})
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			cfg := s.engine.Snapshot().Config
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s) by %s\n", cfg.Name, cfg.ID, cfg.Author)
			return nil
		},
	}
	cmd.Flags().StringVar(&idFlag, "id", "", "Unique pack id, e.g. YourName.AudioPack")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Display name")
	cmd.Flags().StringVar(&authorFlag, "author", "", "Author")
	cmd.Flags().StringVar(&versionFlag, "version", "", "Semantic version")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "Description")
	return cmd
}

func newProjectResetCommand(ctx *commandContext) *cobra.Command {
	var forceFlag bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the project and start fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if !forceFlag {
				capabilities, err := ctx.newHost()
				if err != nil {
					return err
				}
				ok, err := capabilities.Confirm(cmd.Context(), "Discard the current project?")
				if err != nil || !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted. Pass --force to skip confirmation.")
					return nil
				}
			}

			s.engine.Dispatch(project.Reset{})
			if err := s.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Project reset.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Skip the confirmation prompt")
	return cmd
}
