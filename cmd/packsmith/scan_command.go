package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"packsmith/internal/project"
)

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var addValidFlag bool
	cmd := &cobra.Command{
		Use:   "scan [folder]",
		Short: "Scan a folder for audio files",
		Long: "Scan a folder (non-recursive) for audio files and report each " +
			"file's codec, sample rate, and channel count. Defaults to the " +
			"configured assets folder.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			folder := cfg.Paths.AssetsDir
			if len(args) == 1 {
				folder = args[0]
			}

			sc, err := ctx.newScanner()
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			generation := s.engine.BeginScan("Scanning " + folder)
			result, err := sc.Scan(cmd.Context(), folder)
			if err != nil {
				s.engine.Dispatch(project.SetLoading{})
				return err
			}
			s.engine.Dispatch(project.SetAssetsFolder{Folder: folder})
			s.engine.Dispatch(project.SetScanResult{Result: result, Generation: generation})

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(result.Files))
			for _, file := range result.Files {
				status := "ok"
				if !file.Valid() {
					status = file.Error
					if status == "" {
						status = "unsupported"
					}
				}
				rate, channels := "", ""
				if file.SampleRate > 0 {
					rate = strconv.Itoa(file.SampleRate) + " Hz"
				}
				if file.Channels > 0 {
					channels = strconv.Itoa(file.Channels)
				}
				rows = append(rows, []string{
					file.Name, file.Family, file.SizeDisplay, rate, channels, status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Family", "Size", "Rate", "Ch", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d valid, %d invalid, %s total\n",
				result.TotalValid, result.TotalInvalid, result.TotalSize)

			if addValidFlag {
				added := addValidFiles(s, result)
				if err := s.save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %d new entries\n", added)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&addValidFlag, "add-valid", false, "Add every valid file as a new entry (file stem becomes the id)")
	return cmd
}

// addValidFiles turns each valid scanned file into an entry, skipping names
// already present, and returns the number added.
func addValidFiles(s *session, result *project.ScanResult) int {
	added := 0
	for _, file := range result.Files {
		if !file.Valid() {
			continue
		}
		id := stemOf(file.Name)
		if s.engine.Snapshot().EntryIndex(id) >= 0 {
			continue
		}
		entry := buildEntryForID(id, []string{file.Name})
		s.engine.Dispatch(project.AddEntry{Entry: entry})
		added++
	}
	return added
}
