package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chimera/internal/config"
	"github.com/vovakirdan/chimera/internal/platform/tui"
	"github.com/vovakirdan/chimera/internal/storage"
)

var (
	flagPlain       bool
	flagLimit       int
	flagTransitions bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the run journal",
	Long: `Show recorded game runs and their state transitions.

On a terminal an interactive viewer opens; press enter on a run to see
its transitions. With --plain, or when output is piped, a table is printed.

Examples:
  chimera history
  chimera history --plain --limit 5
  chimera history --plain --transitions`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive viewer")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagTransitions, "transitions", false, "Include each run's transitions with --plain")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	store, err := storage.Open(cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		return tui.WriteHistory(cmd.OutOrStdout(), store, flagLimit, flagTransitions)
	}

	width, height := 80, 24
	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		width, height = w, h
	}
	return tui.RunHistory(store, width, height)
}
