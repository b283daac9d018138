package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chimera/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available story packs",
	Long:  `Shows all story packs compiled into chimera.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	stories := registry.List()

	if len(stories) == 0 {
		fmt.Fprintln(out, "No stories available.")
		return
	}

	fmt.Fprintln(out, "Available stories:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, s := range stories {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range stories {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'chimera --story <id>' to play a story.")
}
