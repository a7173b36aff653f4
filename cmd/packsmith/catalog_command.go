package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"packsmith/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var groupFlag string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the original game audio cues",
		Long: "List the original audio cues a pack may replace. Use an id from " +
			"this table with 'entry add' to create a replacement.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, audio := range catalog.Default().All() {
				if groupFlag != "" && !strings.EqualFold(audio.Group, groupFlag) {
					continue
				}
				rows = append(rows, []string{audio.ID, audio.Name, audio.Group})
			}
			if len(rows) == 0 {
				return fmt.Errorf("no cues in group %q", groupFlag)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Group"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&groupFlag, "group", "", "Only show cues from this group")
	return cmd
}
