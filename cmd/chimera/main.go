// chimera is the Project Chimera text adventure.
//
// Usage:
//
//	chimera                  - Start the game at the title screen
//	chimera list             - List available story packs
//	chimera history          - Browse the run journal
//	chimera serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.chimera, ./configs)
//	--delay <duration>  - Pause after each narrative line (default: 1s)
//	--pace <preset>     - instant, fast, normal or dramatic
//	--db <path>         - Run journal database (default: ~/.chimera/journal.db)
//	--no-journal        - Do not record runs
//	--log-file <path>   - Log file, truncated per run (default: game.log)
//	--log-level <level> - debug, info, warn or error
//	--story <id>        - Story pack to play (default: chimera)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chimera/internal/platform/terminal"

	// Import story packs to register them
	_ "github.com/vovakirdan/chimera/internal/story"
)

// GoodbyeMessage is printed once the menu loop has ended.
const GoodbyeMessage = "\nGame has exited. Program terminating."

var (
	// Global flags
	flagConfig    string
	flagDelay     time.Duration
	flagPace      string
	flagDBPath    string
	flagNoJournal bool
	flagLogFile   string
	flagLogLevel  string
	flagStory     string
)

func main() {
	// A missing .env is fine; CHIMERA_* variables may come from the shell.
	//nolint:errcheck
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chimera",
	Short: "Project Chimera - a text adventure for the terminal",
	Long: `Project Chimera is a narrative text adventure played in the terminal.

Run without a command to start at the title screen. Menu choices:
  N - New Game
  L - Load Game
  O - Options
  Q - Quit

Examples:
  chimera
  chimera --pace dramatic
  chimera --delay 0 --log-level debug
  chimera history
  chimera serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config YAML")
	flags.DurationVar(&flagDelay, "delay", time.Second, "Pause after each narrative line")
	flags.StringVar(&flagPace, "pace", "", "Narrative pace preset: instant, fast, normal, dramatic")
	flags.StringVar(&flagDBPath, "db", "", "Path to run journal database")
	flags.BoolVar(&flagNoJournal, "no-journal", false, "Do not record runs in the journal")
	flags.StringVar(&flagLogFile, "log-file", "", "Log file path (truncated each run)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagStory, "story", "", "Story pack to play")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

func runGame(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("Application started.")

	console := terminal.NewConsole(os.Stdin, os.Stdout)
	clearer := terminal.NewCommandClearer(os.Stdout, a.logger)

	err = a.play(cmd.Context(), a.runtime("local"), console, clearer)
	if err != nil && !errors.Is(err, io.EOF) {
		a.logger.Error("Game stopped with an error", "error", err)
		return err
	}

	console.Println(GoodbyeMessage)
	a.logger.Info("Application finished.")
	return nil
}
