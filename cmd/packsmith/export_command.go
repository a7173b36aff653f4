package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"packsmith/internal/exporter"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the project as a Content Patcher pack",
	}
	cmd.AddCommand(newExportFolderCommand(ctx))
	cmd.AddCommand(newExportZipCommand(ctx))
	return cmd
}

func exportOptions(ctx *commandContext, copyFiles bool, source string) (exporter.Options, error) {
	opts := exporter.Options{CopyAudioFiles: copyFiles, AudioSourceFolder: source}
	if copyFiles && source == "" {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return opts, err
		}
		opts.AudioSourceFolder = cfg.Paths.AssetsDir
	}
	return opts, nil
}

func printExportResult(cmd *cobra.Command, result *exporter.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message)
	fmt.Fprintf(out, "Wrote %d file(s) under %s\n", len(result.FilesCreated), result.Path)
	if len(result.FailedCopies) > 0 {
		fmt.Fprintf(out, "%d audio file(s) could not be copied:\n", len(result.FailedCopies))
		for _, failed := range result.FailedCopies {
			fmt.Fprintf(out, "  %s: %s\n", failed.File, failed.Reason)
		}
	}
}

func newExportFolderCommand(ctx *commandContext) *cobra.Command {
	var destFlag, sourceFlag string
	var copyFlag bool
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Export to a pack folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dest := destFlag
			if dest == "" {
				dest = cfg.Paths.ExportDir
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			ex, err := ctx.newExporter()
			if err != nil {
				return err
			}
			opts, err := exportOptions(ctx, copyFlag, sourceFlag)
			if err != nil {
				return err
			}

			state := s.engine.Snapshot()
			result, err := ex.ToFolder(cmd.Context(), dest, state.Config, state.Entries, opts)
			if err != nil {
				return err
			}
			printExportResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&destFlag, "dest", "", "Destination directory (default: the configured export dir)")
	cmd.Flags().BoolVar(&copyFlag, "copy-files", false, "Copy referenced audio files into assets/")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Folder holding the audio files (default: the configured assets dir)")
	return cmd
}

func newExportZipCommand(ctx *commandContext) *cobra.Command {
	var destFlag, sourceFlag string
	var copyFlag bool
	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Export to a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.engine.Snapshot()
			dest := destFlag
			if dest == "" {
				dest = filepath.Join(cfg.Paths.ExportDir,
					exporter.PackFolderName(state.Config.Name)+".zip")
			}

			ex, err := ctx.newExporter()
			if err != nil {
				return err
			}
			opts, err := exportOptions(ctx, copyFlag, sourceFlag)
			if err != nil {
				return err
			}

			result, err := ex.ToZip(cmd.Context(), dest, state.Config, state.Entries, opts)
			if err != nil {
				return err
			}
			printExportResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&destFlag, "dest", "", "Archive path (default: <export dir>/<pack name>.zip)")
	cmd.Flags().BoolVar(&copyFlag, "copy-files", false, "Copy referenced audio files into assets/")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Folder holding the audio files (default: the configured assets dir)")
	return cmd
}
