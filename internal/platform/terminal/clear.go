package terminal

import (
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/vovakirdan/chimera/internal/logging"
)

// Clearer clears the screen. Clearing is best-effort and never fails.
type Clearer interface {
	Clear()
}

// ClearFunc adapts a function to Clearer.
type ClearFunc func()

// Clear calls f.
func (f ClearFunc) Clear() { f() }

// NopClearer does nothing. Used when output is piped.
type NopClearer struct{}

// Clear does nothing.
func (NopClearer) Clear() {}

// ANSIClearer erases the display with escape sequences. Used for remote
// sessions where no local clear command can reach the client's terminal.
type ANSIClearer struct {
	Out io.Writer
}

// Clear writes erase-screen and cursor-home sequences.
func (c ANSIClearer) Clear() {
	//nolint:errcheck // Best-effort
	io.WriteString(c.Out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
}

// CommandClearer runs the platform clear command (cls on Windows, clear
// elsewhere) against a local terminal.
type CommandClearer struct {
	out    *os.File
	logger *log.Logger
}

// NewCommandClearer creates a clearer for the given terminal file.
func NewCommandClearer(out *os.File, logger *log.Logger) *CommandClearer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CommandClearer{out: out, logger: logger}
}

// Clear runs the clear command. When out is not a terminal nothing is
// written; when the command fails ANSI sequences are written instead.
func (c *CommandClearer) Clear() {
	if !term.IsTerminal(int(c.out.Fd())) {
		c.logger.Debug("Skipping screen clear: output is not a terminal")
		return
	}

	cmd := clearCommand(runtime.GOOS)
	cmd.Stdout = c.out
	if err := cmd.Run(); err != nil {
		c.logger.Debug("Clear command failed, falling back to ANSI", "error", err)
		ANSIClearer{Out: c.out}.Clear()
		return
	}
	c.logger.Debug("Screen cleared", "platform", runtime.GOOS)
}

func clearCommand(goos string) *exec.Cmd {
	if goos == "windows" {
		return exec.Command("cmd", "/c", "cls")
	}
	return exec.Command("clear")
}
