package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"packsmith/internal/autosave"
	"packsmith/internal/host"
	"packsmith/internal/project"
	"packsmith/internal/savefile"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [folder]",
		Short: "Watch a folder and rescan on changes",
		Long: "Watch a folder for audio file changes and rescan it each time " +
			"something is added, removed, or rewritten. Runs until interrupted.",
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

			capabilities, err := ctx.newHost()
			if err != nil {
				return err
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

			if cfg.Autosave.Enabled {
				scheduler := autosave.NewScheduler(s.engine, s.codec, s.store, ctx.environment(), s.logger)
				seconds := cfg.Autosave.DesktopIntervalSeconds
				if ctx.environment() == savefile.EnvWeb {
					seconds = cfg.Autosave.WebIntervalSeconds
				}
				scheduler.SetInterval(time.Duration(seconds) * time.Second)
				scheduler.Start(cmd.Context())
				defer scheduler.Stop()
			}

			out := cmd.OutOrStdout()
			rescan := func() {
				generation := s.engine.BeginScan("Rescanning " + folder)
				result, err := sc.Scan(cmd.Context(), folder)
				if err != nil {
					s.engine.Dispatch(project.SetLoading{})
					fmt.Fprintf(out, "rescan failed: %v\n", err)
					return
				}
				s.engine.Dispatch(project.SetScanResult{Result: result, Generation: generation})
				fmt.Fprintf(out, "%s: %d valid, %d invalid, %s total\n",
					folder, result.TotalValid, result.TotalInvalid, result.TotalSize)
			}

			stop, err := capabilities.WatchFolder(cmd.Context(), folder, func(files []string) {
				fmt.Fprintf(out, "changed: %v\n", files)
				rescan()
			})
			if errors.Is(err, host.ErrUnsupported) {
				return fmt.Errorf("folder watching is not available in the %s environment", capabilities.Environment())
			}
			if err != nil {
				return err
			}
			defer stop()

			s.engine.Dispatch(project.SetWatching{Watching: true})
			defer s.engine.Dispatch(project.SetWatching{Watching: false})

			rescan()
			fmt.Fprintln(out, "Watching. Press Ctrl-C to stop.")

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupt)
			select {
			case <-interrupt:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
}
