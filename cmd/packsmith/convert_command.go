package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"packsmith/internal/convert"
	"packsmith/internal/project"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert audio files to OGG Vorbis or WAV",
		Long: "Convert audio files with ffmpeg. The output is written next to " +
			"the input as <name>-converted.<format>.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			manager := convert.NewManager(s.engine, convert.NewConverter(logger), logger)
			ids := make([]string, 0, len(args))
			for _, source := range args {
				ids = append(ids, manager.Start(cmd.Context(), source, formatFlag))
			}
			manager.Wait()

			out := cmd.OutOrStdout()
			failures := 0
			state := s.engine.Snapshot()
			for _, id := range ids {
				job := findJob(state.ConvertJobs, id)
				if job == nil {
					continue
				}
				switch job.Status {
				case project.JobDone:
					fmt.Fprintf(out, "%s -> %s\n", job.SourceFile, job.OutputPath)
				case project.JobError:
					failures++
					fmt.Fprintf(out, "%s: %s\n", job.SourceFile, job.Error)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d conversion(s) failed", failures, len(ids))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "ogg", "Target format: ogg or wav")
	return cmd
}

func findJob(jobs []project.ConvertJob, id string) *project.ConvertJob {
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i]
		}
	}
	return nil
}
